// Package services contains the application services behind the uploader
// REPL: batch uploads with title conflict resolution, page content search,
// and listing management (sort, delete, publish, download) for pages and
// files.
package services

import "errors"

var (
	// ErrEmptySearchTerm is returned before any remote call when the search
	// term is blank.
	ErrEmptySearchTerm = errors.New("search term is empty")

	// ErrNoConflictCheck is returned by targets that never detect title
	// conflicts when asked to overwrite or diff.
	ErrNoConflictCheck = errors.New("target does not check for title conflicts")
)
