package model

// AuditComparison is the difference between two audits of one source.
type AuditComparison struct {
	// Source is the audited list both reports belong to.
	Source string `json:"source"`

	// Previous and Current are the compared reports, oldest first.
	Previous *AuditReport `json:"previous"`
	Current  *AuditReport `json:"current"`

	// CountDelta is Current.Counts minus Previous.Counts.
	CountDelta BucketCounts `json:"count_delta"`

	// TotalDelta is the change in scored candidates.
	TotalDelta int `json:"total_delta"`

	// MeanBitsDelta is the change in mean bits.
	MeanBitsDelta float64 `json:"mean_bits_delta"`

	// WeakDelta is the change in entries below Fair.
	WeakDelta int `json:"weak_delta"`
}

// CompareAudits builds the comparison from previous to current.
func CompareAudits(previous, current *AuditReport) *AuditComparison {
	return &AuditComparison{
		Source:        current.Source,
		Previous:      previous,
		Current:       current,
		CountDelta:    current.Counts.Sub(previous.Counts),
		TotalDelta:    current.Total - previous.Total,
		MeanBitsDelta: current.MeanBits - previous.MeanBits,
		WeakDelta:     current.WeakCount() - previous.WeakCount(),
	}
}

// Improved reports whether the share of weak entries went down.
func (c *AuditComparison) Improved() bool {
	return weakShare(c.Current) < weakShare(c.Previous)
}

func weakShare(r *AuditReport) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.WeakCount()) / float64(r.Total)
}
