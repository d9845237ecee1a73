package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsfloor/opevents/pkg/domain/interfaces"
	"github.com/opsfloor/opevents/pkg/domain/model"
	"github.com/slack-go/slack"
)

// slackAPI is the subset of the Slack client used by the notifier
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts the assignment notice to a Slack channel after a
// successful capture. The validator guarantees the record is fully
// populated, so the notice never renders a missing field.
type SlackNotifier struct {
	api       slackAPI
	channelID string
}

var _ interfaces.Notifier = &SlackNotifier{}

// Option is a functional option for SlackNotifier configuration
type Option func(*SlackNotifier)

// WithAPI overrides the Slack client. Intended for tests.
func WithAPI(api slackAPI) Option {
	return func(n *SlackNotifier) {
		n.api = api
	}
}

// NewSlack creates a notifier posting to the given channel
func NewSlack(token, channelID string, opts ...Option) (*SlackNotifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	n := &SlackNotifier{
		api:       slack.New(token),
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NotifyAssignment sends the assignment notice for a newly captured event
func (n *SlackNotifier) NotifyAssignment(ctx context.Context, e *model.Event) error {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("Nuevo evento operativo #%s", e.ID.String()), false, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Tipo de Impacto:*\n%s", e.ImpactType), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Causa:*\n%s", e.Cause), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Proyecto:*\n%s", e.ProjectNumber), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Número de Parte:*\n%s", e.PartNumber), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Responsable:*\n%s", e.AssignedTo.String()), false, false),
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*Detectado por:*\n%s", e.DetectedBy.String()), false, false),
	}
	section := slack.NewSectionBlock(nil, fields, nil)

	blocks := []slack.Block{header, section}
	if e.Comments != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Comentarios:*\n%s", e.Comments), false, false),
			nil, nil))
	}

	_, _, err := n.api.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fmt.Sprintf("Nuevo evento operativo #%s: %s / %s",
			e.ID.String(), e.ImpactType, e.Cause), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post assignment notice",
			goerr.V("channel_id", n.channelID),
			goerr.V("event_id", e.ID))
	}

	return nil
}
