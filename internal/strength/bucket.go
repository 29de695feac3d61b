package strength

// Bucket is a discrete strength tier derived from the bit estimate.
type Bucket int

const (
	// VeryWeak is any estimate below 30 bits.
	VeryWeak Bucket = iota
	// Weak is 30 bits or more.
	Weak
	// Fair is 45 bits or more.
	Fair
	// Strong is 65 bits or more.
	Strong
	// Excellent is 85 bits or more.
	Excellent
)

// Lower bounds of each bucket, inclusive, in ascending order.
const (
	WeakThreshold      = 30.0
	FairThreshold      = 45.0
	StrongThreshold    = 65.0
	ExcellentThreshold = 85.0
)

// Buckets lists every bucket from weakest to strongest.
var Buckets = [...]Bucket{VeryWeak, Weak, Fair, Strong, Excellent}

// BucketFor returns the highest bucket whose threshold bits satisfies.
func BucketFor(bits float64) Bucket {
	switch {
	case bits >= ExcellentThreshold:
		return Excellent
	case bits >= StrongThreshold:
		return Strong
	case bits >= FairThreshold:
		return Fair
	case bits >= WeakThreshold:
		return Weak
	default:
		return VeryWeak
	}
}

// String returns the English label of the bucket.
func (b Bucket) String() string {
	switch b {
	case VeryWeak:
		return "Very weak"
	case Weak:
		return "Weak"
	case Fair:
		return "Fair"
	case Strong:
		return "Strong"
	case Excellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// Key returns a stable identifier for the bucket, used for message IDs
// and report keys.
func (b Bucket) Key() string {
	switch b {
	case VeryWeak:
		return "very_weak"
	case Weak:
		return "weak"
	case Fair:
		return "fair"
	case Strong:
		return "strong"
	case Excellent:
		return "excellent"
	default:
		return "unknown"
	}
}
