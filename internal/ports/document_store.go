package ports

import "github.com/o11c/targets/internal/domain"

// DocumentStore loads parsed target-definition documents by file name (e.g., from the filesystem).
// Loads are memoized: the same name yields the same Document for the lifetime of the store.
type DocumentStore interface {
	LoadDocument(filename string) (domain.Document, error)
	DocumentExists(filename string) bool
}
