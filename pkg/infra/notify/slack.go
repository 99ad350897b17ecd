// Package notify posts fetch results to external channels.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// SlackNotifier posts a short summary of a fetch to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
}

// NewSlack creates a notifier for the given incoming webhook URL
func NewSlack(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
	}
}

// Notify posts the result summary. Failures are returned, not retried.
func (x *SlackNotifier) Notify(ctx context.Context, result *model.FetchResult) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Checkpoint set `%s` fetched: %d files, %s into `%s` (%s)",
			result.Set.Name,
			len(result.Files),
			humanize.IBytes(uint64(result.TotalSize)),
			result.Set.Destination,
			result.Duration.Truncate(time.Millisecond),
		),
	}

	if err := slack.PostWebhookContext(ctx, x.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack notification")
	}

	return nil
}
