package model

import (
	"time"

	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

// Control is a mitigation attached to a risk. Effectiveness and Response are
// assigned together after the control is defined.
type Control struct {
	ID            int64
	RiskID        int64
	Description   string
	Effectiveness *types.Score
	Response      *types.RiskResponse
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SetResponse assigns effectiveness and response in one step
func (c *Control) SetResponse(effectiveness types.Score, response types.RiskResponse) {
	e, r := effectiveness, response
	c.Effectiveness = &e
	c.Response = &r
}

// IsPending reports whether effectiveness or response is still unassigned
func (c *Control) IsPending() bool {
	return c.Effectiveness == nil || c.Response == nil
}

// Copy returns a deep copy of the control
func (c *Control) Copy() *Control {
	copied := *c
	if c.Effectiveness != nil {
		e := *c.Effectiveness
		copied.Effectiveness = &e
	}
	if c.Response != nil {
		r := *c.Response
		copied.Response = &r
	}
	return &copied
}
