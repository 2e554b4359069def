package loader

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets how many models LoadModels parses at once.
//
// Parameters:
//   - n: the worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithImported is an option builder that pre-populates the cache with import data,
// for procedural models or tests that bypass the file system.
//
// Parameters:
//   - key: the cache key, matched against paths passed to Load
//   - imported: the import data
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache option to a loader
func WithImported(key string, imported *model.ImportedModel) LoaderBuilderOption {
	return func(l *loader) {
		l.importCache[key] = cacheEntry{imported: imported}
	}
}
