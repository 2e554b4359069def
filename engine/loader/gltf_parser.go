package loader

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by the parser.
var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidDataURI     = errors.New("invalid data URI")
	errBufferSizeMismatch = errors.New("buffer size mismatch")
	errAccessorRange      = errors.New("accessor reads past the end of its buffer")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
}

// gltfParser loads a glTF or GLB document, resolves its buffers and reads typed accessor data.
type gltfParser interface {
	// Parse loads a .gltf or .glb file. GLB is detected by extension or magic number.
	//
	// Parameters:
	//   - path: path to the file
	//
	// Returns:
	//   - error: error if reading or decoding fails
	Parse(path string) error

	// ParseReader parses a document from a stream. External URIs resolve against baseDir.
	//
	// Parameters:
	//   - r: reader containing glTF JSON or GLB data
	//   - baseDir: directory for relative URIs, empty for the working directory
	//
	// Returns:
	//   - error: error if parsing fails
	ParseReader(r io.Reader, baseDir string) error

	// Document returns the parsed document, nil before a successful parse.
	Document() *gltfDocument

	// LoadURI resolves a buffer or image URI: data URIs are decoded, everything else is read relative to the base directory.
	//
	// Parameters:
	//   - uri: the URI as written in the document
	//
	// Returns:
	//   - []byte: the decoded bytes
	//   - error: error if the URI cannot be read
	LoadURI(uri string) ([]byte, error)

	// BufferViewData returns the bytes of a buffer view. Used for embedded images.
	//
	// Parameters:
	//   - index: the buffer view index
	//
	// Returns:
	//   - []byte: a slice into the buffer
	//   - error: error if the view is out of range
	BufferViewData(index int) ([]byte, error)

	// ReadFloats reads an accessor of the given element type as float32 components.
	// Normalized integer components are mapped to [0, 1] or [-1, 1] as glTF requires.
	//
	// Parameters:
	//   - accessorIndex: the accessor index
	//   - accessorType: the expected element type (VEC2, VEC3, ...)
	//
	// Returns:
	//   - []float32: Count*components values
	//   - error: error if the accessor is missing, of another type or out of range
	ReadFloats(accessorIndex int, accessorType string) ([]float32, error)

	// ReadIndices reads a SCALAR accessor of unsigned bytes, shorts or ints as uint32.
	//
	// Parameters:
	//   - accessorIndex: the accessor index
	//
	// Returns:
	//   - []uint32: the indices
	//   - error: error if the accessor cannot be read
	ReadIndices(accessorIndex int) ([]uint32, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser instance.
func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	p.baseDir = filepath.Dir(path)
	return p.parse(data)
}

func (p *gltfParserImpl) ParseReader(r io.Reader, baseDir string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	p.baseDir = baseDir
	return p.parse(data)
}

// parse dispatches on the GLB magic number.
func (p *gltfParserImpl) parse(data []byte) error {
	jsonData := data
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == gltfGLBMagic {
		var err error
		if jsonData, p.glbBinaryChunk, err = splitGLB(data); err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	if len(doc.ExtensionsRequired) > 0 {
		return fmt.Errorf("required extensions %v are not supported", doc.ExtensionsRequired)
	}
	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// splitGLB returns the JSON and BIN chunks of a GLB container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func splitGLB(data []byte) ([]byte, []byte, error) {
	if len(data) < gltfGLBHeaderSize {
		return nil, nil, errors.New("GLB file too small")
	}
	if binary.LittleEndian.Uint32(data[0:]) != gltfGLBMagic {
		return nil, nil, errInvalidGLBMagic
	}
	if binary.LittleEndian.Uint32(data[4:]) != gltfGLBVersion {
		return nil, nil, errInvalidGLBVersion
	}
	total := int(binary.LittleEndian.Uint32(data[8:]))
	if total > len(data) {
		return nil, nil, fmt.Errorf("GLB declares %d bytes but only %d are present", total, len(data))
	}

	var jsonData, binData []byte
	for off := gltfGLBHeaderSize; off+gltfGLBChunkSize <= total; {
		length := int(binary.LittleEndian.Uint32(data[off:]))
		kind := binary.LittleEndian.Uint32(data[off+4:])
		start := off + gltfGLBChunkSize
		if start+length > total {
			return nil, nil, fmt.Errorf("GLB chunk at %d overruns the file", off)
		}
		switch kind {
		case gltfGLBChunkJSON:
			jsonData = data[start : start+length]
		case gltfGLBChunkBIN:
			binData = data[start : start+length]
		}
		off = start + length
	}

	if jsonData == nil {
		return nil, nil, errMissingJSONChunk
	}
	return jsonData, binData, nil
}

// loadBuffers fills Data for every buffer from its URI or the GLB BIN chunk.
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]
		switch {
		case buf.URI == "" && i == 0 && p.glbBinaryChunk != nil:
			buf.Data = p.glbBinaryChunk
		case buf.URI == "":
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		default:
			data, err := p.LoadURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		}
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}
	return nil
}

func (p *gltfParserImpl) LoadURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}
	data, err := os.ReadFile(filepath.Join(p.baseDir, filepath.FromSlash(unescapeURI(uri))))
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", uri, err)
	}
	return data, nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, errInvalidDataURI
	}
	if !strings.HasSuffix(uri[5:comma], ";base64") {
		return nil, fmt.Errorf("%w: only base64 payloads are supported", errInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}

// unescapeURI undoes the percent-encoding exporters apply to spaces in file names.
func unescapeURI(uri string) string {
	return strings.ReplaceAll(uri, "%20", " ")
}

func (p *gltfParserImpl) BufferViewData(index int) ([]byte, error) {
	if p.document == nil || index < 0 || index >= len(p.document.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", index)
	}
	bv := p.document.BufferViews[index]
	if bv.Buffer < 0 || bv.Buffer >= len(p.document.Buffers) {
		return nil, fmt.Errorf("buffer view %d references missing buffer %d", index, bv.Buffer)
	}
	data := p.document.Buffers[bv.Buffer].Data
	if bv.ByteOffset+bv.ByteLength > len(data) {
		return nil, errAccessorRange
	}
	return data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], nil
}

// accessor validates an accessor index and returns its element layout.
func (p *gltfParserImpl) accessor(index int) (*gltfAccessor, error) {
	if p.document == nil {
		return nil, errors.New("no document loaded")
	}
	if index < 0 || index >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", index)
	}
	acc := &p.document.Accessors[index]
	if acc.Sparse != nil {
		return nil, fmt.Errorf("accessor %d: sparse accessors are not supported", index)
	}
	return acc, nil
}

// elements calls fn with the raw bytes of every element of an accessor, honouring byteStride.
// Accessors without a buffer view are all zeros per the glTF rules.
func (p *gltfParserImpl) elements(acc *gltfAccessor, fn func(i int, raw []byte)) error {
	size := gltfComponentTypeSize(acc.ComponentType) * gltfAccessorTypeComponentCount(acc.Type)
	if size == 0 {
		return fmt.Errorf("unsupported accessor layout %s/%d", acc.Type, acc.ComponentType)
	}
	if acc.BufferView == nil {
		zero := make([]byte, size)
		for i := 0; i < acc.Count; i++ {
			fn(i, zero)
		}
		return nil
	}

	view, err := p.BufferViewData(*acc.BufferView)
	if err != nil {
		return err
	}
	stride := size
	if bs := p.document.BufferViews[*acc.BufferView].ByteStride; bs != nil && *bs > 0 {
		stride = *bs
	}
	if acc.Count > 0 && acc.ByteOffset+(acc.Count-1)*stride+size > len(view) {
		return errAccessorRange
	}
	for i := 0; i < acc.Count; i++ {
		off := acc.ByteOffset + i*stride
		fn(i, view[off:off+size])
	}
	return nil
}

func (p *gltfParserImpl) ReadFloats(accessorIndex int, accessorType string) ([]float32, error) {
	acc, err := p.accessor(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != accessorType {
		return nil, fmt.Errorf("accessor %d is %s, want %s", accessorIndex, acc.Type, accessorType)
	}
	if acc.ComponentType != gltfComponentTypeFloat && !acc.Normalized {
		return nil, fmt.Errorf("accessor %d: integer components must be normalized", accessorIndex)
	}

	n := gltfAccessorTypeComponentCount(acc.Type)
	csize := gltfComponentTypeSize(acc.ComponentType)
	out := make([]float32, acc.Count*n)
	err = p.elements(acc, func(i int, raw []byte) {
		for c := range n {
			out[i*n+c] = decodeComponent(acc.ComponentType, raw[c*csize:])
		}
	})
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	return out, nil
}

// decodeComponent reads one component, normalizing integers.
func decodeComponent(componentType int, b []byte) float32 {
	switch componentType {
	case gltfComponentTypeFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	case gltfComponentTypeUnsignedByte:
		return float32(b[0]) / 255
	case gltfComponentTypeUnsignedShort:
		return float32(binary.LittleEndian.Uint16(b)) / 65535
	case gltfComponentTypeByte:
		return max(float32(int8(b[0]))/127, -1)
	case gltfComponentTypeShort:
		return max(float32(int16(binary.LittleEndian.Uint16(b)))/32767, -1)
	default:
		return 0
	}
}

func (p *gltfParserImpl) ReadIndices(accessorIndex int) ([]uint32, error) {
	acc, err := p.accessor(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("index accessor %d is %s, want SCALAR", accessorIndex, acc.Type)
	}

	out := make([]uint32, acc.Count)
	var read func(b []byte) uint32
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		read = func(b []byte) uint32 { return uint32(b[0]) }
	case gltfComponentTypeUnsignedShort:
		read = func(b []byte) uint32 { return uint32(binary.LittleEndian.Uint16(b)) }
	case gltfComponentTypeUnsignedInt:
		read = binary.LittleEndian.Uint32
	default:
		return nil, fmt.Errorf("unsupported index component type: %d", acc.ComponentType)
	}
	if err := p.elements(acc, func(i int, raw []byte) { out[i] = read(raw) }); err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	return out, nil
}

// gltfComponentTypeSize returns the byte size of a component type.
func gltfComponentTypeSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

// gltfAccessorTypeComponentCount returns the number of components for an accessor type.
func gltfAccessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4:
		return 4
	case gltfAccessorTypeMat4:
		return 16
	default:
		return 0
	}
}
