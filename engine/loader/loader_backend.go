package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// loaderBackend turns one file format into format-neutral import data. The glTF importer is the only one.
type loaderBackend interface {
	// Import reads a model file. With meshOnly set, animation clips are skipped, which is enough for static
	// props such as the backdrop.
	//
	// Parameters:
	//   - path: the model file
	//   - meshOnly: skip animation extraction
	//
	// Returns:
	//   - *model.ImportedModel: the import data
	//   - error: a wrapped parse or extraction error
	Import(path string, meshOnly bool) (*model.ImportedModel, error)

	// ImportReader reads a model from a stream. Relative URIs resolve against baseDir.
	ImportReader(r io.Reader, baseDir, name string) (*model.ImportedModel, error)
}
