package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/aghinsa/IFRNet/pkg/cli/config"
	"github.com/aghinsa/IFRNet/pkg/infra/notify"
	"github.com/aghinsa/IFRNet/pkg/infra/source"
	"github.com/aghinsa/IFRNet/pkg/usecase"
)

func cmdFetch() *cli.Command {
	var (
		srcCfg    config.Source
		notifyCfg config.Notify
	)

	flags := append(srcCfg.Flags(), notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download and extract checkpoint archives",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sets, err := srcCfg.Sets()
			if err != nil {
				return err
			}

			reportUC := usecase.NewReport()

			var fetchOpts []usecase.FetchOption
			if srcCfg.KeepArchive {
				fetchOpts = append(fetchOpts, usecase.WithKeepArchive())
			}

			for i := range sets {
				set := &sets[i]

				client, err := source.New(ctx, set)
				if err != nil {
					return err
				}

				result, err := usecase.NewFetch(client, fetchOpts...).Fetch(ctx, set)
				if err != nil {
					return err
				}

				if err := usecase.PrintTree(os.Stdout, reportUC, set.Destination); err != nil {
					return err
				}

				if notifyCfg.SlackWebhookURL != "" {
					notifier := notify.NewSlack(notifyCfg.SlackWebhookURL)
					if err := notifier.Notify(ctx, result); err != nil {
						// Notification failure should not fail the fetch
						logger.Warn("Failed to notify Slack", "error", err)
					}
				}
			}

			return nil
		},
	}
}
