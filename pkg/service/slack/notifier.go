package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// maxTextBytes is the Block Kit limit for a section text
const maxTextBytes = 3000

// Notifier posts risk alerts to a single Slack channel
type Notifier struct {
	svc       Service
	channelID string
}

var _ interfaces.RiskNotifier = &Notifier{}

func NewNotifier(svc Service, channelID string) *Notifier {
	return &Notifier{svc: svc, channelID: channelID}
}

func (n *Notifier) NotifyRisk(ctx context.Context, alert *model.RiskAlert) error {
	blocks, text := buildAlertMessage(alert)
	ts, err := n.svc.PostMessage(ctx, n.channelID, blocks, text)
	if err != nil {
		return goerr.Wrap(err, "failed to post risk alert",
			goerr.V("workspace_id", alert.WorkspaceID),
			goerr.V("risk_id", alert.Risk.ID))
	}

	logging.From(ctx).Info("risk alert posted",
		"workspace_id", alert.WorkspaceID,
		"risk_id", alert.Risk.ID,
		"channel_id", n.channelID,
		"ts", ts)
	return nil
}

var severityEmoji = map[types.Severity]string{
	types.SeverityLow:      ":large_green_circle:",
	types.SeverityMedium:   ":large_yellow_circle:",
	types.SeverityHigh:     ":large_orange_circle:",
	types.SeverityCritical: ":red_circle:",
}

func buildAlertMessage(alert *model.RiskAlert) ([]slack.Block, string) {
	composite := 0
	if alert.Risk.Composite != nil {
		composite = *alert.Risk.Composite
	}

	text := fmt.Sprintf("%s risk on %s: %s (composite %d/%d)",
		alert.Severity, alert.Model.Name, alert.Risk.RiskType, composite, types.MaxComposite)

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, truncateToMaxBytes(text, 150), false, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Model*\n%s (#%d)", alert.Model.Name, alert.Model.ID), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Status*\n%s", alert.Model.Status), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Risk type*\n%s", alert.Risk.RiskType), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Severity*\n%s %s", severityEmoji[alert.Severity], alert.Severity), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Likelihood x Magnitude*\n%s x %s = %d", scoreText(alert.Risk.Likelihood), scoreText(alert.Risk.Magnitude), composite), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Workspace*\n%s", alert.WorkspaceID), false, false),
	}
	blocks := []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
	}

	if alert.Risk.HazardDescription != "" {
		desc := slack.NewTextBlockObject(slack.MarkdownType, truncateToMaxBytes(alert.Risk.HazardDescription, maxTextBytes), false, false)
		blocks = append(blocks, slack.NewSectionBlock(desc, nil, nil))
	}

	if alert.Source != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("risk #%d via %s", alert.Risk.ID, alert.Source), false, false),
		))
	}

	return blocks, text
}

func scoreText(s *types.Score) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%d", s.Int())
}

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8 sequence
func truncateToMaxBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for i := maxBytes; i > 0; i-- {
		if isRuneStart(s[i]) {
			return s[:i]
		}
	}
	return ""
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
