package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name             string
	baseColor        [4]float32
	opacity          float32
	transparent      bool
	alphaMode        common.AlphaMode
	alphaCutoff      float32
	doubleSided      bool
	baseColorTexture *common.ImportedTexture
}

// Material defines the interface for a render material.
//
// Surface properties imported from the model file (name, alpha mode, texture) are fixed at load time.
// Opacity, transparency and base color are mutable so that a live copy of a material can be
// highlighted and later reset from its untouched default copy. The tick goroutine writes the
// mutable properties while the render goroutine reads them, so access is synchronized.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Opacity retrieves the opacity multiplier applied on top of the base color alpha.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// Transparent reports whether the material is drawn in the blended pass.
	//
	// Returns:
	//   - bool: true if the material blends with what is behind it
	Transparent() bool

	// AlphaMode retrieves the imported alpha mode.
	//
	// Returns:
	//   - common.AlphaMode: the alpha mode
	AlphaMode() common.AlphaMode

	// AlphaCutoff retrieves the threshold used when AlphaMode is MASK.
	//
	// Returns:
	//   - float32: the alpha cutoff
	AlphaCutoff() float32

	// DoubleSided reports whether back faces are drawn.
	//
	// Returns:
	//   - bool: true if the material is double sided
	DoubleSided() bool

	// BaseColorTexture retrieves the albedo texture, or nil if none is set.
	//
	// Returns:
	//   - *common.ImportedTexture: the texture, or nil
	BaseColorTexture() *common.ImportedTexture

	// SetBaseColor sets the albedo color.
	//
	// Parameters:
	//   - color: RGBA color
	SetBaseColor(color [4]float32)

	// SetOpacity sets the opacity multiplier, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)

	// SetTransparent moves the material in or out of the blended pass.
	//
	// Parameters:
	//   - transparent: true to blend
	SetTransparent(transparent bool)

	// Clone returns an independent copy of the material.
	// The texture reference is shared since imported texture data is never mutated.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material

	// Reset copies every mutable property from src, undoing any changes made to this material.
	//
	// Parameters:
	//   - src: the material to copy from
	Reset(src Material)

	// ResetWith copies every mutable property from src, then replaces opacity and transparency, in a single
	// locked write. Readers never observe the intermediate default state.
	//
	// Parameters:
	//   - src: the material to copy from
	//   - opacity: the opacity to apply, clamped to [0, 1]
	//   - transparent: whether the material draws in the blended pass
	ResetWith(src Material, opacity float32, transparent bool)

	// Uniform returns the GPU representation of the material.
	//
	// Returns:
	//   - GPUMaterialUniform: the uniform data for upload
	Uniform() GPUMaterialUniform
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults are an opaque white material with opacity 1.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:          &sync.Mutex{},
		baseColor:   [4]float32{1, 1, 1, 1},
		opacity:     1,
		alphaMode:   common.AlphaModeOpaque,
		alphaCutoff: 0.5,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// FromImported builds a Material from imported material data.
// BLEND materials start out transparent, matching how glTF viewers treat them.
//
// Parameters:
//   - imp: the imported material
//
// Returns:
//   - Material: the new material
func FromImported(imp common.ImportedMaterial) Material {
	mode := imp.AlphaMode
	if mode == "" {
		mode = common.AlphaModeOpaque
	}
	return NewMaterial(
		WithName(imp.Name),
		WithBaseColor(imp.BaseColor),
		WithAlphaMode(mode, imp.AlphaCutoff),
		WithDoubleSided(imp.DoubleSided),
		WithBaseColorTexture(imp.BaseColorTexture),
		WithTransparent(mode == common.AlphaModeBlend),
	)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseColor
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) Transparent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transparent
}

func (m *material) AlphaMode() common.AlphaMode {
	return m.alphaMode
}

func (m *material) AlphaCutoff() float32 {
	return m.alphaCutoff
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) BaseColorTexture() *common.ImportedTexture {
	return m.baseColorTexture
}

func (m *material) SetBaseColor(color [4]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseColor = color
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = common.Clamp(opacity, 0, 1)
}

func (m *material) SetTransparent(transparent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transparent = transparent
}

func (m *material) Clone() Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m
	c.mu = &sync.Mutex{}
	return &c
}

func (m *material) Reset(src Material) {
	color, opacity, transparent := src.BaseColor(), src.Opacity(), src.Transparent()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseColor = color
	m.opacity = opacity
	m.transparent = transparent
}

func (m *material) ResetWith(src Material, opacity float32, transparent bool) {
	color := src.BaseColor()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseColor = color
	m.opacity = common.Clamp(opacity, 0, 1)
	m.transparent = transparent
}

func (m *material) Uniform() GPUMaterialUniform {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := GPUMaterialUniform{
		BaseColor: m.baseColor,
		Opacity:   m.opacity,
	}
	if m.alphaMode == common.AlphaModeMask {
		u.AlphaCutoff = m.alphaCutoff
	}
	if m.baseColorTexture != nil {
		u.HasTexture = 1
	}
	return u
}
