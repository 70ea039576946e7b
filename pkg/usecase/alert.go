package usecase

import (
	"context"

	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/async"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
)

// riskAlerter dispatches a notification when a write leaves a risk's
// composite at or above the threshold.
type riskAlerter struct {
	notifier  interfaces.RiskNotifier
	threshold int
}

func newRiskAlerter(notifier interfaces.RiskNotifier, threshold int) *riskAlerter {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}
	return &riskAlerter{notifier: notifier, threshold: threshold}
}

func (a *riskAlerter) enabled() bool {
	return a != nil && a.notifier != nil
}

func (a *riskAlerter) check(ctx context.Context, workspaceID string, m *model.AIModel, risk *model.Risk, source string) {
	if !a.enabled() || risk.Composite == nil || *risk.Composite < a.threshold {
		return
	}

	alert := &model.RiskAlert{
		WorkspaceID: workspaceID,
		Model:       m.Copy(),
		Risk:        risk.Copy(),
		Severity:    types.SeverityOf(*risk.Composite),
		Source:      source,
	}

	logging.From(ctx).Info("dispatching risk alert",
		WorkspaceIDKey, workspaceID,
		RiskIDKey, risk.ID,
		"composite", *risk.Composite,
		"threshold", a.threshold)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return a.notifier.NotifyRisk(ctx, alert)
	})
}
