package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProvider owns the GPU resources behind one bind group: the camera block, the light block, or a
// mesh's draw group together with its vertex and index buffers.
// Providers start empty. The Renderer fills them on first use, writes uniforms into the stored buffers and
// releases them at shutdown. Not safe for concurrent use; only the render goroutine touches the resources.
type BindGroupProvider interface {
	// Label returns the debug label, also used to prefix GPU object labels.
	Label() string

	// Initialized reports whether the bind group has been created.
	Initialized() bool

	// BindGroup returns the bind group, or nil before initialization.
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at binding, or nil.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at binding, or nil.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the mesh vertex buffer, or nil.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer, or nil.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices a draw of the mesh submits.
	IndexCount() int

	// SetBindGroup stores the created bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores the uniform buffer at binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores a texture and its view at binding. The provider takes ownership of both.
	//
	// Parameters:
	//   - binding: the binding index of the view
	//   - tex: the texture
	//   - tv: the view of tex
	SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView)

	// SetSampler stores the sampler at binding.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the mesh vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the mesh index buffer and its index count.
	//
	// Parameters:
	//   - buf: the index buffer (uint32 indices)
	//   - count: the number of indices
	SetIndexBuffer(buf *wgpu.Buffer, count int)

	// Release frees every resource and returns the provider to its empty state, ready to be filled again.
	Release()
}

type texture struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
}

type bindGroupProvider struct {
	label string

	bindGroup *wgpu.BindGroup
	buffers   map[int]*wgpu.Buffer
	textures  map[int]texture
	samplers  map[int]*wgpu.Sampler

	// mesh providers only
	vertices, indices *wgpu.Buffer
	indexCount        int
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{
		label:    label,
		buffers:  make(map[int]*wgpu.Buffer),
		textures: make(map[int]texture),
		samplers: make(map[int]*wgpu.Sampler),
	}
}

func (p *bindGroupProvider) Label() string              { return p.label }
func (p *bindGroupProvider) Initialized() bool          { return p.bindGroup != nil }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup { return p.bindGroup }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer { return p.vertices }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer  { return p.indices }
func (p *bindGroupProvider) IndexCount() int            { return p.indexCount }

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textures[binding].view
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) {
	p.textures[binding] = texture{tex: tex, view: tv}
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertices = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	p.indices, p.indexCount = buf, count
}

// Release drops the bind group before the resources it references.
func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for binding, t := range p.textures {
		if t.view != nil {
			t.view.Release()
		}
		if t.tex != nil {
			t.tex.Release()
		}
		delete(p.textures, binding)
	}
	for binding, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, binding)
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}
	for _, buf := range []*wgpu.Buffer{p.vertices, p.indices} {
		if buf != nil {
			buf.Release()
		}
	}
	p.vertices, p.indices, p.indexCount = nil, nil, 0
}
