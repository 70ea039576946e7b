package model

import (
	"time"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// Risk is a hazard identified against a registered model.
//
// Composite is set if and only if both Likelihood and Magnitude are set, and
// is always their product. Use SetScores or Recompute to keep it in sync.
type Risk struct {
	ID                int64
	ModelID           int64
	RiskType          string
	HazardDescription string
	Likelihood        *types.Score
	Magnitude         *types.Score
	Composite         *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SetScores overwrites both scores and recomputes the composite
func (r *Risk) SetScores(likelihood, magnitude types.Score) {
	l, m := likelihood, magnitude
	r.Likelihood = &l
	r.Magnitude = &m
	r.Recompute()
}

// Recompute derives Composite from the current scores. It returns false and
// clears Composite when either score is missing.
func (r *Risk) Recompute() bool {
	composite, ok := CompositeScore(r.Likelihood, r.Magnitude)
	if !ok {
		r.Composite = nil
		return false
	}
	r.Composite = &composite
	return true
}

// IsScored reports whether the risk has a composite score
func (r *Risk) IsScored() bool {
	return r.Composite != nil
}

// Copy returns a deep copy of the risk
func (r *Risk) Copy() *Risk {
	copied := *r
	if r.Likelihood != nil {
		l := *r.Likelihood
		copied.Likelihood = &l
	}
	if r.Magnitude != nil {
		m := *r.Magnitude
		copied.Magnitude = &m
	}
	if r.Composite != nil {
		c := *r.Composite
		copied.Composite = &c
	}
	return &copied
}
