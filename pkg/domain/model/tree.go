package model

// TreeEntry is one entry of a destination directory listing. Paths are
// relative to the walked root, using slashes.
type TreeEntry struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size,omitempty"`
}
