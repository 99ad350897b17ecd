package config

import "github.com/urfave/cli/v3"

// Notify holds notification configuration
type Notify struct {
	SlackWebhookURL string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified after each fetch",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("CKPTFETCH_SLACK_WEBHOOK_URL"),
		},
	}
}
