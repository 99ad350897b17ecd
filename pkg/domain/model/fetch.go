package model

import "time"

// FetchResult represents the outcome of one download-and-extract run
type FetchResult struct {
	Set         *CheckpointSet // The set that was fetched
	ArchivePath string         // Temporary archive path (removed unless kept)
	ArchiveSize int64          // Downloaded archive size in bytes
	Files       []string       // Extracted entry names, archive order
	TotalSize   int64          // Total uncompressed size in bytes
	Duration    time.Duration  // Wall time of the whole pipeline
}
