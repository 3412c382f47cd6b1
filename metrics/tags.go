package metrics

// Default tagging thresholds.
const (
	DefaultLowCoverage = 0.4
	DefaultLowOverlap  = 0.5
)

// Thresholds configures the rule-based error tagger.
type Thresholds struct {
	// LowCoverage is the keyword coverage below which an answer is
	// tagged low_coverage.
	LowCoverage float64
	// LowOverlap is the context overlap below which an answer is
	// tagged low_overlap.
	LowOverlap float64
}

// DefaultThresholds returns the standard tagging thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LowCoverage: DefaultLowCoverage,
		LowOverlap:  DefaultLowOverlap,
	}
}

// Tags are independent diagnostic flags derived from one bundle. They
// are not mutually exclusive.
type Tags struct {
	NoHitAtK    bool `json:"no_hit_at_k"`
	LowCoverage bool `json:"low_coverage"`
	LowOverlap  bool `json:"low_overlap"`
	NoCitations bool `json:"no_citations"`
}

// TagBundle applies the tagging rules to a bundle.
func TagBundle(b Bundle, t Thresholds) Tags {
	return Tags{
		NoHitAtK:    b.HitAtK < 1.0,
		LowCoverage: b.KeywordCoverage < t.LowCoverage,
		LowOverlap:  b.ContextOverlap < t.LowOverlap,
		NoCitations: b.CitationRecall == 0.0,
	}
}

// Active returns the names of the set tags in a fixed order, for
// reports and persisted run records.
func (t Tags) Active() []string {
	var names []string
	if t.NoHitAtK {
		names = append(names, "no_hit_at_k")
	}
	if t.LowCoverage {
		names = append(names, "low_coverage")
	}
	if t.LowOverlap {
		names = append(names, "low_overlap")
	}
	if t.NoCitations {
		names = append(names, "no_citations")
	}
	return names
}
