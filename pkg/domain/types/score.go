package types

import (
	"github.com/m-mizutani/goerr/v2"
)

const (
	// MinScore is the lowest likelihood, magnitude or effectiveness score
	MinScore = 1
	// MaxScore is the highest likelihood, magnitude or effectiveness score
	MaxScore = 5
	// MaxComposite is the highest possible likelihood x magnitude product
	MaxComposite = MaxScore * MaxScore
)

// Score is a bounded 1-5 rating used for likelihood, magnitude and control effectiveness
type Score int

// Validate checks if the Score is within [MinScore, MaxScore]
func (s Score) Validate() error {
	if s < MinScore || s > MaxScore {
		return goerr.New("score must be between 1 and 5", goerr.V("score", int(s)))
	}
	return nil
}

// Int returns the score as int
func (s Score) Int() int {
	return int(s)
}

// ScorePtr returns a pointer to a Score built from v. It is a helper for optional scores.
func ScorePtr(v int) *Score {
	s := Score(v)
	return &s
}

// Severity is a display bucket for a composite score
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityOf buckets a composite score. 1-4 low, 5-9 medium, 10-16 high, 17-25 critical.
func SeverityOf(composite int) Severity {
	switch {
	case composite >= 17:
		return SeverityCritical
	case composite >= 10:
		return SeverityHigh
	case composite >= 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
