package interfaces

import (
	"context"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// SourceClient defines operations for retrieving checkpoint archives from a
// remote host
type SourceClient interface {
	// Download streams the archive of the given set to destPath, overwriting
	// any existing file. Returns the number of bytes written.
	Download(ctx context.Context, set *model.CheckpointSet, destPath string) (int64, error)
}
