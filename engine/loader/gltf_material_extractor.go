package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/common"

	"github.com/cogentcore/webgpu/wgpu"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser   gltfParser
	textures map[int]*common.ImportedTexture
}

// gltfMaterialExtractor converts glTF materials into ImportedMaterials, loading base color images.
type gltfMaterialExtractor interface {
	// ExtractAllMaterials extracts every material of the document in index order.
	// Textures referenced by several materials are loaded once and shared.
	//
	// Returns:
	//   - []common.ImportedMaterial: the materials
	//   - error: error if a referenced image cannot be read
	ExtractAllMaterials() ([]common.ImportedMaterial, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{
		parser:   parser,
		textures: make(map[int]*common.ImportedTexture),
	}
}

func (e *gltfMaterialExtractorImpl) ExtractAllMaterials() ([]common.ImportedMaterial, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	out := make([]common.ImportedMaterial, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := e.extractMaterial(&doc.Materials[i])
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		out[i] = mat
	}
	return out, nil
}

// extractMaterial applies the glTF defaults: white base color, OPAQUE, cutoff 0.5, single sided.
func (e *gltfMaterialExtractorImpl) extractMaterial(mat *gltfMaterial) (common.ImportedMaterial, error) {
	result := common.ImportedMaterial{
		Name:        mat.Name,
		BaseColor:   [4]float32{1, 1, 1, 1},
		AlphaMode:   common.AlphaModeOpaque,
		AlphaCutoff: 0.5,
		DoubleSided: mat.DoubleSided,
	}

	switch common.AlphaMode(strings.ToUpper(mat.AlphaMode)) {
	case common.AlphaModeMask:
		result.AlphaMode = common.AlphaModeMask
	case common.AlphaModeBlend:
		result.AlphaMode = common.AlphaModeBlend
	}
	if mat.AlphaCutoff != nil {
		result.AlphaCutoff = *mat.AlphaCutoff
	}

	if pbr := mat.PbrMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			result.BaseColor = *pbr.BaseColorFactor
		}
		if pbr.BaseColorTexture != nil {
			tex, err := e.loadTexture(pbr.BaseColorTexture.Index)
			if err != nil {
				return result, fmt.Errorf("material %q: base color texture: %w", mat.Name, err)
			}
			result.BaseColorTexture = tex
		}
	}
	return result, nil
}

// loadTexture resolves a texture's image bytes from a buffer view, a data URI or a file next to the document.
// A texture without a source yields nil.
func (e *gltfMaterialExtractorImpl) loadTexture(textureIndex int) (*common.ImportedTexture, error) {
	if tex, ok := e.textures[textureIndex]; ok {
		return tex, nil
	}

	doc := e.parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", textureIndex)
	}
	tex := &doc.Textures[textureIndex]
	if tex.Source == nil {
		e.textures[textureIndex] = nil
		return nil, nil
	}
	if *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *tex.Source)
	}
	img := &doc.Images[*tex.Source]

	result := &common.ImportedTexture{
		Name:     common.Coalesce(img.Name, tex.Name, filepath.Base(img.URI)),
		MimeType: img.MimeType,
	}
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(doc.Samplers) {
		result.Sampler = gltfSamplerToStagingData(&doc.Samplers[*tex.Sampler])
	}

	switch {
	case img.BufferView != nil:
		data, err := e.parser.BufferViewData(*img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("failed to read image buffer view: %w", err)
		}
		result.Data = data
	case strings.HasPrefix(img.URI, "data:"):
		data, err := e.parser.LoadURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		result.Data = data
		if result.MimeType == "" {
			result.MimeType = strings.TrimSuffix(img.URI[5:strings.IndexByte(img.URI, ',')], ";base64")
		}
	case img.URI != "":
		data, err := e.parser.LoadURI(img.URI)
		if err != nil {
			return nil, err
		}
		result.Data = data
	default:
		result = nil
	}

	e.textures[textureIndex] = result
	return result, nil
}

// gltfSamplerToStagingData maps a glTF sampler onto wgpu filter and address modes.
// Unset fields keep the glTF defaults of linear filtering and repeat wrapping.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
//
// Parameters:
//   - s: the glTF sampler to convert
//
// Returns:
//   - *common.SamplerStagingData: the converted sampler staging data
func gltfSamplerToStagingData(s *gltfSampler) *common.SamplerStagingData {
	result := &common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}

	if s.MagFilter != nil && *s.MagFilter == gltfFilterNearest {
		result.MagFilter = wgpu.FilterModeNearest
	}
	if s.MinFilter != nil {
		switch *s.MinFilter {
		case gltfFilterNearest, gltfFilterNearestMipmapNearest, gltfFilterNearestMipmapLinear:
			result.MinFilter = wgpu.FilterModeNearest
		}
	}
	if s.WrapS != nil {
		result.AddressModeU = gltfWrapToAddressMode(*s.WrapS)
	}
	if s.WrapT != nil {
		result.AddressModeV = gltfWrapToAddressMode(*s.WrapT)
	}
	return result
}

// gltfWrapToAddressMode converts a glTF wrap mode constant to a wgpu AddressMode.
func gltfWrapToAddressMode(wrap int) wgpu.AddressMode {
	switch wrap {
	case gltfWrapClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gltfWrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}
