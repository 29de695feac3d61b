package strength

import "testing"

// TestBucketFor tests the threshold ladder at every boundary.
func TestBucketFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits float64
		want Bucket
	}{
		{bits: 0, want: VeryWeak},
		{bits: 29.999, want: VeryWeak},
		{bits: 30, want: Weak},
		{bits: 44.999, want: Weak},
		{bits: 45, want: Fair},
		{bits: 64.999, want: Fair},
		{bits: 65, want: Strong},
		{bits: 84.999, want: Strong},
		{bits: 85, want: Excellent},
		{bits: 200, want: Excellent},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.bits); got != tt.want {
			t.Errorf("BucketFor(%v) = %v, want %v", tt.bits, got, tt.want)
		}
	}
}

// TestBucketString tests labels and keys.
func TestBucketString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bucket Bucket
		label  string
		key    string
	}{
		{bucket: VeryWeak, label: "Very weak", key: "very_weak"},
		{bucket: Weak, label: "Weak", key: "weak"},
		{bucket: Fair, label: "Fair", key: "fair"},
		{bucket: Strong, label: "Strong", key: "strong"},
		{bucket: Excellent, label: "Excellent", key: "excellent"},
		{bucket: Bucket(42), label: "Unknown", key: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := tt.bucket.String(); got != tt.label {
				t.Errorf("expected label %q, got %q", tt.label, got)
			}
			if got := tt.bucket.Key(); got != tt.key {
				t.Errorf("expected key %q, got %q", tt.key, got)
			}
		})
	}

	if int(Excellent) != 4 || int(VeryWeak) != 0 {
		t.Error("expected bucket indices 0..4")
	}
}
