package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/service/slack"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	BotToken  string `masq:"secret"`
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (enables composite score alerts)",
			Category:    "Slack",
			Destination: &x.BotToken,
			Sources:     cli.EnvVars("RISKREGISTER_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for alerts (overrides [alert] channel in the config file)",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("RISKREGISTER_SLACK_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("bot_token_set", x.BotToken != ""),
		slog.String("channel", x.channelID),
	)
}

// IsConfigured reports whether alerts can be posted
func (x *Slack) IsConfigured() bool {
	return x.BotToken != ""
}

// Configure returns a notifier posting to the flag channel, or to
// fallbackChannel from the config file. It returns nil when no bot token is set.
func (x *Slack) Configure(fallbackChannel string) (interfaces.RiskNotifier, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	channel := x.channelID
	if channel == "" {
		channel = fallbackChannel
	}
	if channel == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "slack channel is required when slack-bot-token is set")
	}

	svc, err := slack.New(x.BotToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	logging.Default().Info("Slack risk alerts enabled", "channel", channel)
	return slack.NewNotifier(svc, channel), nil
}
