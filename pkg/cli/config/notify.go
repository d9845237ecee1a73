package config

import (
	"log/slog"

	"github.com/opsfloor/opevents/pkg/domain/interfaces"
	"github.com/opsfloor/opevents/pkg/service/notify"
	"github.com/opsfloor/opevents/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notify holds CLI flags for the Slack assignment-notice channel
type Notify struct {
	slackToken   string
	slackChannel string
}

// Flags returns CLI flags for notifier configuration
func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for assignment notices",
			Category:    "Notification",
			Sources:     cli.EnvVars("OPEVENTS_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID receiving assignment notices",
			Category:    "Notification",
			Sources:     cli.EnvVars("OPEVENTS_SLACK_CHANNEL_ID"),
			Destination: &x.slackChannel,
		},
	}
}

// LogValue returns the notifier configuration for structured logging,
// masking the token.
func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.slackToken)),
		slog.String("channel", x.slackChannel),
	)
}

// Configure builds the notifier, or returns nil when notification is not
// configured. Notification is optional: captures work without it.
func (x *Notify) Configure() (interfaces.Notifier, error) {
	if x.slackToken == "" || x.slackChannel == "" {
		logging.Default().Info("Slack notification disabled (token or channel not set)")
		return nil, nil
	}

	n, err := notify.NewSlack(x.slackToken, x.slackChannel)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Slack notification enabled", "channel", x.slackChannel)
	return n, nil
}
