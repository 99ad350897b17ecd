// Package source provides clients that retrieve checkpoint archives from
// remote hosts, one client per URL scheme.
package source

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// New returns the source client matching the set's URL scheme
func New(ctx context.Context, set *model.CheckpointSet) (interfaces.SourceClient, error) {
	switch set.Scheme() {
	case "http", "https":
		return NewHTTP(), nil
	case "gs":
		return NewGCS(ctx)
	default:
		return nil, goerr.New("unsupported source URL scheme",
			goerr.V("set", set.Name),
			goerr.V("url", set.SourceURL),
		)
	}
}
