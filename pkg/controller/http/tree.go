package http

import (
	"net/http"
	"os"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

// setsResponse is the payload of GET /api/sets
type setsResponse struct {
	Sets []model.CheckpointSet `json:"sets"`
}

// treeResponse is the payload of GET /api/tree
type treeResponse struct {
	Root      string            `json:"root"`
	Entries   []model.TreeEntry `json:"entries"`
	TotalSize int64             `json:"total_size"`
}

// handleSets returns a handler that lists the configured checkpoint sets.
// Tokens are excluded by the model's JSON tags.
func handleSets(sets []model.CheckpointSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, &setsResponse{Sets: sets})
	}
}

// handleTree returns a handler that walks the checkpoint directory and
// returns its entries with file sizes
func handleTree(reportUC interfaces.ReportUseCase, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(dir); err != nil {
			writeError(w, err, http.StatusNotFound)
			return
		}

		resp := &treeResponse{
			Root:    dir,
			Entries: []model.TreeEntry{},
		}

		for entry, err := range reportUC.Tree(dir) {
			if err != nil {
				writeError(w, err, http.StatusInternalServerError)
				return
			}
			resp.Entries = append(resp.Entries, entry)
			resp.TotalSize += entry.Size
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
