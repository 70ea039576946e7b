package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

func TestCompositeScore(t *testing.T) {
	t.Run("product for every valid pair", func(t *testing.T) {
		for l := types.MinScore; l <= types.MaxScore; l++ {
			for m := types.MinScore; m <= types.MaxScore; m++ {
				got, ok := model.CompositeScore(types.ScorePtr(l), types.ScorePtr(m))
				gt.Bool(t, ok).True()
				gt.Value(t, got).Equal(l * m)
			}
		}
	})

	t.Run("missing operand yields no composite", func(t *testing.T) {
		_, ok := model.CompositeScore(nil, types.ScorePtr(3))
		gt.Bool(t, ok).False()
		_, ok = model.CompositeScore(types.ScorePtr(3), nil)
		gt.Bool(t, ok).False()
		_, ok = model.CompositeScore(nil, nil)
		gt.Bool(t, ok).False()
	})
}

func TestRisk_Recompute(t *testing.T) {
	t.Run("set scores derives composite", func(t *testing.T) {
		r := &model.Risk{RiskType: "Data Quality"}
		r.SetScores(3, 4)
		gt.Value(t, r.Composite).NotNil()
		gt.Value(t, *r.Composite).Equal(12)
		gt.Bool(t, r.IsScored()).True()
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		r := &model.Risk{}
		r.SetScores(5, 4)
		gt.Bool(t, r.Recompute()).True()
		gt.Bool(t, r.Recompute()).True()
		gt.Value(t, *r.Composite).Equal(20)
	})

	t.Run("clearing a score clears composite", func(t *testing.T) {
		r := &model.Risk{}
		r.SetScores(2, 2)
		r.Magnitude = nil
		gt.Bool(t, r.Recompute()).False()
		gt.Value(t, r.Composite).Nil()
	})

	t.Run("copy does not share score pointers", func(t *testing.T) {
		r := &model.Risk{}
		r.SetScores(2, 3)
		c := r.Copy()
		*c.Likelihood = 5
		gt.Value(t, *r.Likelihood).Equal(types.Score(2))
	})
}

func TestControl_IsPending(t *testing.T) {
	c := &model.Control{Description: "Retrain quarterly"}
	gt.Bool(t, c.IsPending()).True()

	c.SetResponse(4, types.RiskResponseMitigate)
	gt.Bool(t, c.IsPending()).False()
	gt.Value(t, *c.Response).Equal(types.RiskResponseMitigate)
}
