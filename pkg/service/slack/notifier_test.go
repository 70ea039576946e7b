package slack_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/service/slack"
	goslack "github.com/slack-go/slack"
)

type mockService struct {
	channelID string
	blocks    []goslack.Block
	text      string
}

func (m *mockService) PostMessage(ctx context.Context, channelID string, blocks []goslack.Block, text string) (string, error) {
	m.channelID = channelID
	m.blocks = blocks
	m.text = text
	return "1.0", nil
}

func (m *mockService) GetTeamURL(ctx context.Context) (string, error) {
	return "https://example.slack.com/", nil
}

func newAlert() *model.RiskAlert {
	risk := &model.Risk{
		ID:                4,
		ModelID:           1,
		RiskType:          "Adversarial Attacks",
		HazardDescription: "Evasion by crafted inputs",
	}
	risk.SetScores(5, 4)
	return &model.RiskAlert{
		WorkspaceID: "default",
		Model:       &model.AIModel{ID: 1, Name: "Fraud Detector", Status: types.ModelStatusInProduction},
		Risk:        risk,
		Severity:    types.SeverityOf(*risk.Composite),
		Source:      "assign_scores",
	}
}

func TestNotifier_NotifyRisk(t *testing.T) {
	svc := &mockService{}
	n := slack.NewNotifier(svc, "C-ALERTS")

	gt.NoError(t, n.NotifyRisk(context.Background(), newAlert())).Required()
	gt.Value(t, svc.channelID).Equal("C-ALERTS")
	gt.String(t, svc.text).Contains("Fraud Detector")
	gt.String(t, svc.text).Contains("composite 20/25")
	gt.Array(t, svc.blocks).Length(4)
}

func TestBuildAlertMessage(t *testing.T) {
	t.Run("no description or source", func(t *testing.T) {
		alert := newAlert()
		alert.Risk.HazardDescription = ""
		alert.Source = ""

		blocks, text := slack.BuildAlertMessage(alert)
		gt.Array(t, blocks).Length(2)
		gt.String(t, text).Contains("critical")
	})
}

func TestTruncateToMaxBytes(t *testing.T) {
	gt.Value(t, slack.TruncateToMaxBytes("short", 10)).Equal("short")
	gt.Value(t, slack.TruncateToMaxBytes("abcdef", 3)).Equal("abc")

	// "あ" is three bytes, so a four byte limit must not split the second rune
	got := slack.TruncateToMaxBytes("ああ", 4)
	gt.Value(t, got).Equal("あ")
	gt.Bool(t, strings.HasPrefix("ああ", got)).True()
}
