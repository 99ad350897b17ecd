package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify pipeline failures by the resource that failed.
// Every error leaving a usecase or infra layer carries exactly one of them.
var (
	// ErrTagFilesystem marks directory/file creation or deletion failures
	ErrTagFilesystem = goerr.NewTag("filesystem")

	// ErrTagNetwork marks download failures: connection errors, bad status codes
	ErrTagNetwork = goerr.NewTag("network")

	// ErrTagArchive marks corrupt or unreadable archive contents
	ErrTagArchive = goerr.NewTag("archive")
)
