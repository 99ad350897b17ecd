package usecase

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/domain/types"
)

type fetchUseCase struct {
	source      interfaces.SourceClient
	keepArchive bool
}

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithKeepArchive disables removal of the temporary archive after a
// successful extraction
func WithKeepArchive() FetchOption {
	return func(uc *fetchUseCase) {
		uc.keepArchive = true
	}
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(source interfaces.SourceClient, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		source: source,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fetch runs the pipeline for one checkpoint set. Steps run strictly in
// order; the first failure aborts the rest. The temporary archive is removed
// only after extraction succeeded, so a corrupt download stays on disk for
// inspection.
func (uc *fetchUseCase) Fetch(ctx context.Context, set *model.CheckpointSet) (*model.FetchResult, error) {
	logger := ctxlog.From(ctx)
	started := time.Now()

	if err := set.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Fetching checkpoint set",
		"set", set.Name,
		"source_url", set.SourceURL,
		"destination", set.Destination,
	)

	if err := ensureDir(set.Destination); err != nil {
		return nil, err
	}

	archivePath := filepath.Join(set.Destination, fmt.Sprintf(".%s-%s.zip", set.Name, uuid.NewString()))

	archiveSize, err := uc.source.Download(ctx, set, archivePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download checkpoint archive",
			goerr.T(types.ErrTagNetwork),
			goerr.V("set", set.Name),
			goerr.V("url", set.SourceURL),
		)
	}

	logger.Info("Downloaded checkpoint archive",
		"set", set.Name,
		"archive_path", archivePath,
		"size_bytes", archiveSize,
	)

	files, totalSize, err := extractArchive(ctx, archivePath, set.Destination)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract checkpoint archive",
			goerr.T(types.ErrTagArchive),
			goerr.V("set", set.Name),
			goerr.V("archive_path", archivePath),
		)
	}

	if !uc.keepArchive {
		if err := os.Remove(archivePath); err != nil {
			return nil, goerr.Wrap(err, "failed to remove temporary archive",
				goerr.T(types.ErrTagFilesystem),
				goerr.V("archive_path", archivePath),
			)
		}
	}

	result := &model.FetchResult{
		Set:         set,
		ArchivePath: archivePath,
		ArchiveSize: archiveSize,
		Files:       files,
		TotalSize:   totalSize,
		Duration:    time.Since(started),
	}

	logger.Info("Extracted checkpoint archive",
		"set", set.Name,
		"destination", set.Destination,
		"file_count", len(files),
		"total_size_bytes", totalSize,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// ensureDir creates the directory and its parents if absent. Idempotent.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return goerr.Wrap(err, "failed to create destination directory",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("path", path),
		)
	}
	return nil
}

// extractArchive unpacks all entries of the ZIP at archivePath into destDir,
// overwriting conflicts and preserving the archive's directory structure.
func extractArchive(ctx context.Context, archivePath, destDir string) ([]string, int64, error) {
	logger := ctxlog.From(ctx)

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to open zip archive")
	}
	defer zr.Close()

	var files []string
	var totalSize int64

	for _, file := range zr.File {
		if err := extractFile(file, destDir); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to extract file", goerr.V("name", file.Name))
		}

		files = append(files, file.Name)
		totalSize += int64(file.UncompressedSize64)
	}

	logger.Debug("Extracted all archive entries",
		"dest_dir", destDir,
		"entry_count", len(files),
	)

	return files, totalSize, nil
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	// Security check: prevent path traversal attacks
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid file path in archive",
			goerr.V("name", file.Name),
			goerr.V("dest", destPath),
		)
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip")
	}
	defer rc.Close()

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.FileInfo().Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories")
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file")
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content")
	}

	return nil
}
