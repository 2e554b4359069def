package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
)

type renderer struct {
	mu            *sync.Mutex
	backend       RendererBackend
	backendType   RendererBackendType
	pipelineCache map[string]pipeline.Pipeline

	// providers whose GPU resources were created by this renderer, released with it
	owned []bind_group_provider.BindGroupProvider

	// meshes whose upload failed, skipped instead of retried every frame
	failed map[model.Mesh]struct{}

	// construction options, consumed by NewRenderer
	custom               []pipeline.Pipeline
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           *[4]float64
}

// Renderer draws Frames into a window surface.
// Mesh GPU resources (vertex and index buffers, the per-draw uniform, the base color texture and sampler) are
// created lazily the first time a mesh is drawn and stored on the mesh's MeshProvider.
type Renderer interface {
	// Resize reconfigures the surface and its MSAA and depth attachments.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. A call to Resize is required for it to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	SetClearColor(color [4]float64)

	// Pipeline returns the cached pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: pipelines keyed by PipelineKey
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates GPU pipelines for the given descriptions and caches them by key.
	// Pipelines whose key is already cached are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// RenderFrame uploads the frame's uniforms and draws every Draw in order.
	// Draws are expected to be ordered by SortDraws. A draw whose mesh cannot be uploaded is logged and skipped.
	//
	// Parameters:
	//   - frame: the frame snapshot
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or a pipeline is missing
	RenderFrame(frame Frame) error

	// Release frees the GPU resources this renderer created.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the given window. Pipelines passed through WithPipelines are
// registered alongside the built-in mesh pipelines and replace a built-in with the same key.
// GPU initialization failures panic.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		failed:        make(map[model.Mesh]struct{}),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}

	// Options first so flags such as forceFallbackAdapter are known before the adapter is requested.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}

	r.backend.SetPresentMode(r.presentMode)
	if r.clearColor != nil {
		r.backend.SetClearColor(*r.clearColor)
	}
	r.backend.ConfigureSurface(win.Width(), win.Height())

	if err := r.backend.InitBindGroupLayouts(BindGroupLayouts()); err != nil {
		panic(err)
	}

	// custom pipelines go first so they win over a built-in with the same key
	pending := append(r.custom, DefaultPipelines()...)
	r.custom = nil
	if err := r.RegisterPipelines(pending...); err != nil {
		panic(err)
	}

	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color [4]float64) {
	r.backend.SetClearColor(color)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("failed to register pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) RenderFrame(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUniformProvider(frame.CameraProvider, GroupCamera); err != nil {
		return fmt.Errorf("failed to init camera bind group: %w", err)
	}
	if err := r.ensureUniformProvider(frame.LightProvider, GroupLight); err != nil {
		return fmt.Errorf("failed to init light bind group: %w", err)
	}

	writes := make([]bind_group_provider.BufferWrite, 0, len(frame.Draws)+2)
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: frame.CameraProvider, Binding: 0, Data: frame.Camera.Marshal()},
		bind_group_provider.BufferWrite{Provider: frame.LightProvider, Binding: 0, Data: frame.Light.Marshal()},
	)

	type encoded struct {
		p        pipeline.Pipeline
		provider bind_group_provider.BindGroupProvider
	}
	calls := make([]encoded, 0, len(frame.Draws))
	for _, d := range frame.Draws {
		provider, ok := r.ensureMesh(d.Mesh)
		if !ok {
			continue
		}
		key := PipelineKeyFor(d.Transparent, d.DoubleSided)
		p, exists := r.pipelineCache[key]
		if !exists {
			return fmt.Errorf("render pipeline %q not found in cache", key)
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: provider,
			Binding:  BindingDrawUniform,
			Data:     d.Uniform.Marshal(),
		})
		calls = append(calls, encoded{p: p, provider: provider})
	}

	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	for _, c := range calls {
		r.backend.DrawCall(c.p, c.provider, []bind_group_provider.BindGroupProvider{frame.CameraProvider, frame.LightProvider, c.provider})
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

// ensureUniformProvider creates the bind group for a single-uniform group on first use. Caller must hold mu.
func (r *renderer) ensureUniformProvider(provider bind_group_provider.BindGroupProvider, group int) error {
	if provider == nil {
		return fmt.Errorf("group %d has no provider", group)
	}
	if provider.Initialized() {
		return nil
	}
	if err := r.backend.InitBindGroup(provider, group, BindGroupLayouts()[group]); err != nil {
		return err
	}
	r.owned = append(r.owned, provider)
	return nil
}

// ensureMesh uploads a mesh the first time it is drawn. Caller must hold mu.
func (r *renderer) ensureMesh(m model.Mesh) (bind_group_provider.BindGroupProvider, bool) {
	if _, failed := r.failed[m]; failed {
		return nil, false
	}
	provider := m.MeshProvider()
	if provider != nil && provider.Initialized() {
		return provider, true
	}
	if provider == nil {
		provider = bind_group_provider.NewBindGroupProvider("mesh_" + m.Name())
		m.SetMeshProvider(provider)
	}

	if err := r.uploadMesh(m, provider); err != nil {
		log.Printf("failed to upload mesh %s: %v", m.Name(), err)
		provider.Release()
		r.failed[m] = struct{}{}
		return nil, false
	}
	r.owned = append(r.owned, provider)
	return provider, true
}

func (r *renderer) uploadMesh(m model.Mesh, provider bind_group_provider.BindGroupProvider) error {
	indices := m.Indices()
	if len(indices) == 0 {
		return fmt.Errorf("mesh has no indices")
	}
	if err := r.backend.InitMeshBuffers(provider, common.SliceToBytes(m.Vertices()), common.SliceToBytes(indices), len(indices)); err != nil {
		return fmt.Errorf("failed to create mesh buffers: %w", err)
	}

	staging := whiteTexel()
	var sampler common.SamplerStagingData
	if tex := m.Material().BaseColorTexture(); tex != nil {
		decoded, err := tex.Decode()
		if err != nil {
			// the material still draws with its base color
			log.Printf("failed to decode texture %s of mesh %s: %v", tex.Name, m.Name(), err)
		} else {
			staging = decoded
		}
		if tex.Sampler != nil {
			sampler = *tex.Sampler
		}
	}
	if err := r.backend.InitTextureView(provider, BindingBaseColor, staging); err != nil {
		return fmt.Errorf("failed to create base color texture: %w", err)
	}
	if err := r.backend.InitSampler(provider, BindingSampler, sampler); err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	return r.backend.InitBindGroup(provider, GroupDraw, BindGroupLayouts()[GroupDraw])
}

// whiteTexel is bound when a mesh has no usable texture so the draw layout stays uniform.
func whiteTexel() common.TextureStagingData {
	return common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pipelineCache {
		p.Release()
	}
	for _, p := range r.owned {
		p.Release()
	}
	r.owned = nil
	r.backend.Release()
}
