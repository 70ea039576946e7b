package model

import "github.com/secmon-lab/riskregister/pkg/domain/types"

// CompositeScore returns likelihood x magnitude. The second value is false
// when either operand is missing, in which case no composite exists.
func CompositeScore(likelihood, magnitude *types.Score) (int, bool) {
	if likelihood == nil || magnitude == nil {
		return 0, false
	}
	return int(*likelihood) * int(*magnitude), true
}
