package config

import (
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/domain/types"
)

// defaultSet mirrors the published IFRNet checkpoint bundle. Used when no
// config file or URL override is given, so a bare `ckptfetch fetch`
// reproduces the original one-shot download.
var defaultSet = model.CheckpointSet{
	Name:        "ifrnet",
	SourceURL:   "https://www.dropbox.com/scl/fo/gvfjc8bq259l4cre2ai0k/AIxkWTcEOcvIIYe7RDlZpag?rlkey=x4lxph520gbt0tjy839gmwoc0&e=1&dl=1",
	Destination: "checkpoints",
}

// Source holds checkpoint source configuration
type Source struct {
	ConfigPath  string
	SetNames    []string
	URL         string
	Dir         string
	Token       string
	KeepArchive bool
}

// sourceFile is the TOML config file layout
type sourceFile struct {
	Sets []model.CheckpointSet `toml:"sets"`
}

// Flags returns CLI flags for checkpoint source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file defining checkpoint sets",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("CKPTFETCH_CONFIG"),
		},
		&cli.StringSliceFlag{
			Name:        "set",
			Usage:       "Checkpoint set name(s) to fetch (default: all configured sets)",
			Destination: &c.SetNames,
			Sources:     cli.EnvVars("CKPTFETCH_SET"),
		},
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Archive URL, overriding the config file and the built-in default",
			Destination: &c.URL,
			Sources:     cli.EnvVars("CKPTFETCH_URL"),
		},
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Destination directory for extracted checkpoints",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("CKPTFETCH_DIR"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer token for private archive hosts",
			Destination: &c.Token,
			Sources:     cli.EnvVars("CKPTFETCH_TOKEN"),
		},
		&cli.BoolFlag{
			Name:        "keep-archive",
			Usage:       "Keep the downloaded archive instead of deleting it after extraction",
			Destination: &c.KeepArchive,
			Sources:     cli.EnvVars("CKPTFETCH_KEEP_ARCHIVE"),
		},
	}
}

// Sets resolves the configured checkpoint sets: an ad hoc set from --url, the
// sets of --config filtered by --set, or the built-in default.
func (c *Source) Sets() ([]model.CheckpointSet, error) {
	if c.URL != "" {
		set := model.CheckpointSet{
			Name:        "adhoc",
			SourceURL:   c.URL,
			Destination: c.dir(),
			Token:       c.Token,
		}
		if err := set.Validate(); err != nil {
			return nil, err
		}
		return []model.CheckpointSet{set}, nil
	}

	if c.ConfigPath != "" {
		return c.loadFile()
	}

	set := defaultSet
	set.Destination = c.dir()
	set.Token = c.Token
	return []model.CheckpointSet{set}, nil
}

func (c *Source) dir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return defaultSet.Destination
}

func (c *Source) loadFile() ([]model.CheckpointSet, error) {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("path", c.ConfigPath),
		)
	}

	var file sourceFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.ConfigPath))
	}
	if len(file.Sets) == 0 {
		return nil, goerr.New("config file defines no checkpoint sets", goerr.V("path", c.ConfigPath))
	}

	for i := range file.Sets {
		if err := file.Sets[i].Validate(); err != nil {
			return nil, err
		}
	}

	if len(c.SetNames) == 0 {
		return file.Sets, nil
	}

	var selected []model.CheckpointSet
	for _, name := range c.SetNames {
		idx := slices.IndexFunc(file.Sets, func(s model.CheckpointSet) bool {
			return s.Name == name
		})
		if idx < 0 {
			return nil, goerr.New("unknown checkpoint set", goerr.V("name", name))
		}
		selected = append(selected, file.Sets[idx])
	}

	return selected, nil
}
