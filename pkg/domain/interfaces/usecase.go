package interfaces

import (
	"context"
	"iter"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// FetchUseCase defines operations for the download-and-extract pipeline
type FetchUseCase interface {
	// Fetch runs the full pipeline for one checkpoint set: ensure the
	// destination directory, download the archive, extract it, and remove
	// the temporary archive.
	Fetch(ctx context.Context, set *model.CheckpointSet) (*model.FetchResult, error)
}

// ReportUseCase defines operations for enumerating fetched checkpoints
type ReportUseCase interface {
	// Tree walks rootDir depth-first. The sequence is lazy and restartable:
	// ranging over it again re-walks the directory.
	Tree(rootDir string) iter.Seq2[model.TreeEntry, error]
}
