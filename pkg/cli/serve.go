package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aghinsa/IFRNet/pkg/cli/config"
	controller "github.com/aghinsa/IFRNet/pkg/controller/http"
	"github.com/aghinsa/IFRNet/pkg/infra/source"
	"github.com/aghinsa/IFRNet/pkg/usecase"
	"github.com/aghinsa/IFRNet/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		srcCfg       config.Source
		fetchOnStart bool
	)

	flags := append(serverCfg.Flags(), srcCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "fetch-on-start",
		Usage:       "Fetch configured checkpoint sets in the background on startup",
		Destination: &fetchOnStart,
		Sources:     cli.EnvVars("CKPTFETCH_FETCH_ON_START"),
	})

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve fetched checkpoints over HTTP",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			sets, err := srcCfg.Sets()
			if err != nil {
				return err
			}

			// All sets share the checkpoint root in the common case; serve
			// the first set's destination.
			checkpointDir := sets[0].Destination

			logger.Info("Starting checkpoint server",
				slog.String("addr", serverCfg.Addr),
				slog.String("dir", checkpointDir),
			)

			reportUC := usecase.NewReport()

			server, err := controller.NewServer(
				ctx,
				reportUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithCheckpointDir(checkpointDir),
				controller.WithSets(sets),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			if fetchOnStart {
				async.Dispatch(ctx, func(ctx context.Context) error {
					for i := range sets {
						set := &sets[i]

						client, err := source.New(ctx, set)
						if err != nil {
							return err
						}
						if _, err := usecase.NewFetch(client).Fetch(ctx, set); err != nil {
							return err
						}
					}
					return nil
				})
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
