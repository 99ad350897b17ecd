package usecase

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/domain/types"
)

type reportUseCase struct{}

// NewReport creates a new instance of ReportUseCase
func NewReport() interfaces.ReportUseCase {
	return &reportUseCase{}
}

// Tree walks rootDir depth-first and yields one entry per file or
// subdirectory. The root itself is not yielded. Each range over the returned
// sequence re-walks the directory, so the listing reflects the state at
// iteration time.
func (uc *reportUseCase) Tree(rootDir string) iter.Seq2[model.TreeEntry, error] {
	return func(yield func(model.TreeEntry, error) bool) {
		err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == rootDir {
				return nil
			}

			rel, err := filepath.Rel(rootDir, path)
			if err != nil {
				return err
			}

			entry := model.TreeEntry{
				Path:  filepath.ToSlash(rel),
				IsDir: d.IsDir(),
			}
			if !d.IsDir() {
				info, err := d.Info()
				if err != nil {
					return err
				}
				entry.Size = info.Size()
			}

			if !yield(entry, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield(model.TreeEntry{}, goerr.Wrap(err, "failed to walk directory",
				goerr.T(types.ErrTagFilesystem),
				goerr.V("root", rootDir),
			))
		}
	}
}

var (
	dirColor  = color.New(color.FgCyan, color.Bold)
	sizeColor = color.New(color.FgHiBlack)
)

// PrintTree renders the listing of rootDir to w, indented by depth, with
// humanized file sizes and a total line. Returns the walk error, if any.
func PrintTree(w io.Writer, uc interfaces.ReportUseCase, rootDir string) error {
	var fileCount int
	var totalSize int64

	for entry, err := range uc.Tree(rootDir) {
		if err != nil {
			return err
		}

		indent := strings.Repeat("  ", strings.Count(entry.Path, "/"))
		name := filepath.Base(entry.Path)

		if entry.IsDir {
			fmt.Fprintf(w, "%s%s\n", indent, dirColor.Sprintf("%s/", name))
			continue
		}

		fileCount++
		totalSize += entry.Size
		fmt.Fprintf(w, "%s%s %s\n", indent, name, sizeColor.Sprintf("(%s)", humanize.IBytes(uint64(entry.Size))))
	}

	fmt.Fprintf(w, "\n%d files, %s total\n", fileCount, humanize.IBytes(uint64(totalSize)))
	return nil
}
