package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CheckpointSet describes one downloadable set of pretrained checkpoints:
// where the archive lives and where its contents should end up.
type CheckpointSet struct {
	Name        string `json:"name" toml:"name"`
	SourceURL   string `json:"source_url" toml:"source_url"`
	Destination string `json:"destination" toml:"destination"`

	// Token is an optional bearer token for private archive hosts
	Token string `json:"-" toml:"token" masq:"secret"`
}

// Validate checks that the set is usable before any filesystem or network
// operation is attempted.
func (x *CheckpointSet) Validate() error {
	if x.Name == "" {
		return goerr.New("checkpoint set name is empty")
	}
	if x.Destination == "" {
		return goerr.New("destination directory is empty", goerr.V("set", x.Name))
	}

	u, err := url.Parse(x.SourceURL)
	if err != nil {
		return goerr.Wrap(err, "invalid source URL", goerr.V("set", x.Name), goerr.V("url", x.SourceURL))
	}

	switch u.Scheme {
	case "http", "https", "gs":
		return nil
	default:
		return goerr.New("unsupported source URL scheme",
			goerr.V("set", x.Name),
			goerr.V("scheme", u.Scheme),
		)
	}
}

// Scheme returns the URL scheme of the source, lowercased. Empty when the
// URL does not parse.
func (x *CheckpointSet) Scheme() string {
	u, err := url.Parse(x.SourceURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}
