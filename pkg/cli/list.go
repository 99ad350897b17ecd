package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aghinsa/IFRNet/pkg/domain/types"
	"github.com/aghinsa/IFRNet/pkg/usecase"
)

func cmdList() *cli.Command {
	var dir string

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List fetched checkpoints with file sizes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Checkpoint directory to list",
				Value:       "checkpoints",
				Destination: &dir,
				Sources:     cli.EnvVars("CKPTFETCH_DIR"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if _, err := os.Stat(dir); err != nil {
				return goerr.Wrap(err, "checkpoint directory is not accessible",
					goerr.T(types.ErrTagFilesystem),
					goerr.V("dir", dir),
				)
			}

			return usecase.PrintTree(os.Stdout, usecase.NewReport(), dir)
		},
	}
}
