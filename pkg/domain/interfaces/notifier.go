package interfaces

import (
	"context"

	"github.com/secmon-lab/riskregister/pkg/domain/model"
)

// RiskNotifier delivers alerts for risks whose composite score crossed the alert threshold
type RiskNotifier interface {
	NotifyRisk(ctx context.Context, alert *model.RiskAlert) error
}
