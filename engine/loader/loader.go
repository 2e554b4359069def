package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// ErrUnsupportedFormat is returned for files whose extension no backend handles.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Request names one model for LoadModels.
type Request struct {
	// Key identifies the result, usually the region or section name.
	Key string

	// Path is the model file.
	Path string

	// MeshOnly skips animation extraction.
	MeshOnly bool
}

// Result is the outcome of one Request. Exactly one of Model and Err is set.
type Result struct {
	Key   string
	Path  string
	Model model.Model
	Err   error
}

// cacheEntry is one parsed file.
type cacheEntry struct {
	imported *model.ImportedModel
	meshOnly bool
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	importCache map[string]cacheEntry

	backend loaderBackend
	workers int
	pool    worker.DynamicWorkerPool
	poolMu  sync.Mutex
}

// Loader loads models through a format backend and caches the parsed data by path.
// The cache holds import data, not Models: every call returns a fresh Model with its own node transforms
// and live materials, so one file can back several game objects.
type Loader interface {
	// Load imports a model file, or reuses the cached import for that path.
	// The backend is selected from the file extension.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: a new model instance
	//   - error: ErrUnsupportedFormat or a wrapped parse error
	Load(path string) (model.Model, error)

	// LoadMeshOnly is Load without animation extraction, for static props.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: a new model instance
	//   - error: error if loading fails
	LoadMeshOnly(path string) (model.Model, error)

	// LoadReader imports a model from a stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key and fallback model name
	//   - r: the reader providing glTF JSON or GLB data
	//   - baseDir: directory for external buffers and images
	//
	// Returns:
	//   - model.Model: a new model instance
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, baseDir string) (model.Model, error)

	// LoadModels loads every request concurrently on the loader's worker pool and waits for all of them.
	// Requests still queued when ctx is cancelled fail with ctx.Err().
	//
	// Parameters:
	//   - ctx: cancels loads that have not started
	//   - reqs: the models to load
	//
	// Returns:
	//   - []Result: one result per request, in request order
	LoadModels(ctx context.Context, reqs []Request) []Result

	// StreamModels loads every request like LoadModels but delivers each result as soon as it finishes.
	// The channel is closed after the last result.
	//
	// Parameters:
	//   - ctx: cancels loads that have not started
	//   - reqs: the models to load
	//
	// Returns:
	//   - <-chan Result: one result per request, in completion order
	StreamModels(ctx context.Context, reqs []Request) <-chan Result

	// Cached reports whether a path or reader name has been imported.
	//
	// Parameters:
	//   - key: the path or reader name
	//
	// Returns:
	//   - bool: true if the import is cached
	Cached(key string) bool
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		importCache: make(map[string]cacheEntry),
		workers:     4,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFImporter()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	return l.load(path, false)
}

func (l *loader) LoadMeshOnly(path string) (model.Model, error) {
	return l.load(path, true)
}

// load returns a model from the cache or the backend. A full import satisfies a later mesh-only request
// but not the other way round.
func (l *loader) load(path string, meshOnly bool) (model.Model, error) {
	if imp := l.cached(path, meshOnly); imp != nil {
		return model.FromImported(*imp), nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Import(path, meshOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.store(path, imported, meshOnly)
	return model.FromImported(*imported), nil
}

func (l *loader) LoadReader(name string, r io.Reader, baseDir string) (model.Model, error) {
	if imp := l.cached(name, false); imp != nil {
		return model.FromImported(*imp), nil
	}

	imported, err := l.backend.ImportReader(r, baseDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.store(name, imported, false)
	return model.FromImported(*imported), nil
}

func (l *loader) LoadModels(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	l.submit(ctx, reqs, func(idx int, res Result) {
		results[idx] = res
	})
	return results
}

func (l *loader) StreamModels(ctx context.Context, reqs []Request) <-chan Result {
	out := make(chan Result, len(reqs))
	go func() {
		defer close(out)
		l.submit(ctx, reqs, func(_ int, res Result) {
			out <- res
		})
	}()
	return out
}

// submit runs every request on the worker pool, calls done from the worker as each one finishes, and
// returns once all have finished.
func (l *loader) submit(ctx context.Context, reqs []Request, done func(idx int, res Result)) {
	if len(reqs) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pool := l.workerPool()
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		idx, rq := i, req
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				res := l.loadRequest(ctx, rq)
				done(idx, res)
				return res.Model, res.Err
			},
		})
	}
	wg.Wait()
}

// loadRequest loads one request unless ctx is already cancelled.
func (l *loader) loadRequest(ctx context.Context, rq Request) Result {
	res := Result{Key: rq.Key, Path: rq.Path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	if rq.MeshOnly {
		res.Model, res.Err = l.LoadMeshOnly(rq.Path)
	} else {
		res.Model, res.Err = l.Load(rq.Path)
	}
	if res.Err != nil {
		log.Printf("failed to load model %s: %v", rq.Path, res.Err)
	} else {
		log.Printf("loaded model %s (%s) in %v", rq.Key, rq.Path, time.Since(start).Round(time.Millisecond))
	}
	return res
}

func (l *loader) Cached(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.importCache[key]
	return ok
}

// cached returns a usable cache entry. A mesh-only entry does not satisfy a full load.
func (l *loader) cached(key string, meshOnly bool) *model.ImportedModel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.importCache[key]
	if !ok || (entry.meshOnly && !meshOnly) {
		return nil
	}
	return entry.imported
}

// store caches an import. A mesh-only import never replaces a full one.
func (l *loader) store(key string, imp *model.ImportedModel, meshOnly bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.importCache[key]; ok && !prev.meshOnly && meshOnly {
		return
	}
	l.importCache[key] = cacheEntry{imported: imp, meshOnly: meshOnly}
}

// workerPool lazily creates the pool. Idle workers exit after a second, so the pool is cheap to keep.
func (l *loader) workerPool() worker.DynamicWorkerPool {
	l.poolMu.Lock()
	defer l.poolMu.Unlock()
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	}
	return l.pool
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
