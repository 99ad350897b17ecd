package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/domain/types"
	"github.com/aghinsa/IFRNet/pkg/usecase"
)

// MockSourceClient is a mock implementation of SourceClient that writes
// configured archive bytes to destPath
type MockSourceClient struct {
	data  []byte
	err   error
	calls int
}

func (m *MockSourceClient) Download(ctx context.Context, set *model.CheckpointSet, destPath string) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	if err := os.WriteFile(destPath, m.data, 0644); err != nil {
		return 0, err
	}
	return int64(len(m.data)), nil
}

var testArchiveFiles = map[string]string{
	"IFRNet/IFRNet_Vimeo90K.pth":         "vimeo weights",
	"IFRNet/IFRNet_GoPro.pth":            "gopro weights",
	"IFRNet_large/IFRNet_L_Vimeo90K.pth": "large vimeo weights",
}

func createTestZip(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range testArchiveFiles {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())

	return buf.Bytes()
}

func testSet(t *testing.T) *model.CheckpointSet {
	t.Helper()

	return &model.CheckpointSet{
		Name:        "test",
		SourceURL:   "https://example.com/checkpoints.zip",
		Destination: filepath.Join(t.TempDir(), "checkpoints"),
	}
}

// listArchives returns leftover archive files in the destination directory
func listArchives(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, ".*.zip"))
	gt.NoError(t, err)
	return matches
}

func TestFetch_Success(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{data: createTestZip(t)}
	set := testSet(t)

	result, err := usecase.NewFetch(mock).Fetch(ctx, set)
	gt.NoError(t, err)

	gt.Value(t, result.Set).Equal(set)
	gt.Number(t, result.ArchiveSize).Greater(int64(0))
	gt.Number(t, len(result.Files)).Equal(len(testArchiveFiles))

	// All archive entries extracted with their contents
	var wantSize int64
	for name, content := range testArchiveFiles {
		data, err := os.ReadFile(filepath.Join(set.Destination, filepath.FromSlash(name)))
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal(content)
		wantSize += int64(len(content))
	}
	gt.Number(t, result.TotalSize).Equal(wantSize)

	// Temporary archive removed after successful extraction
	_, err = os.Stat(result.ArchivePath)
	gt.Value(t, os.IsNotExist(err)).Equal(true)
	gt.Number(t, len(listArchives(t, set.Destination))).Equal(0)

	gt.Number(t, mock.calls).Equal(1)
}

func TestFetch_DownloadError(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{err: errors.New("connection refused")}
	set := testSet(t)

	result, err := usecase.NewFetch(mock).Fetch(ctx, set)
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.Value(t, goerr.HasTag(err, types.ErrTagNetwork)).Equal(true)

	// Destination directory was created before the download attempt, but no
	// extraction happened
	info, statErr := os.Stat(set.Destination)
	gt.NoError(t, statErr)
	gt.Value(t, info.IsDir()).Equal(true)

	entries, readErr := os.ReadDir(set.Destination)
	gt.NoError(t, readErr)
	gt.Number(t, len(entries)).Equal(0)
}

func TestFetch_CorruptArchive(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{data: []byte("this is not a zip archive")}
	set := testSet(t)

	result, err := usecase.NewFetch(mock).Fetch(ctx, set)
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.Value(t, goerr.HasTag(err, types.ErrTagArchive)).Equal(true)

	// Deletion is conditioned on extraction success, so the corrupt archive
	// stays on disk
	gt.Number(t, len(listArchives(t, set.Destination))).Equal(1)
}

func TestFetch_Idempotent(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{data: createTestZip(t)}
	set := testSet(t)

	uc := usecase.NewFetch(mock)
	_, err := uc.Fetch(ctx, set)
	gt.NoError(t, err)
	first := snapshotFiles(t, set.Destination)

	_, err = uc.Fetch(ctx, set)
	gt.NoError(t, err)
	second := snapshotFiles(t, set.Destination)

	gt.Value(t, second).Equal(first)
}

func TestFetch_KeepArchive(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{data: createTestZip(t)}
	set := testSet(t)

	result, err := usecase.NewFetch(mock, usecase.WithKeepArchive()).Fetch(ctx, set)
	gt.NoError(t, err)

	_, err = os.Stat(result.ArchivePath)
	gt.NoError(t, err)
}

func TestFetch_PathTraversal(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../escape.pth")
	gt.NoError(t, err)
	_, err = w.Write([]byte("evil"))
	gt.NoError(t, err)
	gt.NoError(t, zw.Close())

	mock := &MockSourceClient{data: buf.Bytes()}
	set := testSet(t)

	result, err := usecase.NewFetch(mock).Fetch(ctx, set)
	gt.Error(t, err)
	gt.Value(t, result).Nil()

	// Nothing escaped the destination directory
	_, err = os.Stat(filepath.Join(filepath.Dir(set.Destination), "escape.pth"))
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestFetch_InvalidSet(t *testing.T) {
	ctx := context.Background()
	mock := &MockSourceClient{data: createTestZip(t)}

	set := &model.CheckpointSet{
		Name:        "bad",
		SourceURL:   "ftp://example.com/checkpoints.zip",
		Destination: t.TempDir(),
	}

	_, err := usecase.NewFetch(mock).Fetch(ctx, set)
	gt.Error(t, err)
	gt.Number(t, mock.calls).Equal(0)
}

// snapshotFiles returns the sorted relative file paths under dir
func snapshotFiles(t *testing.T, dir string) []string {
	t.Helper()

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	gt.NoError(t, err)
	sort.Strings(files)

	return files
}
