package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor converts glTF mesh primitives into ImportedMeshes.
type gltfMeshExtractor interface {
	// ExtractAllMeshes extracts every primitive of every mesh.
	//
	// Returns:
	//   - []model.ImportedMesh: one entry per primitive, in document order
	//   - [][]int: for each glTF mesh, the indices of its primitives in the first result
	//   - error: error if any primitive cannot be read
	ExtractAllMeshes() ([]model.ImportedMesh, [][]int, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractAllMeshes() ([]model.ImportedMesh, [][]int, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, nil, fmt.Errorf("no document loaded")
	}

	var all []model.ImportedMesh
	primitives := make([][]int, len(doc.Meshes))
	for mi := range doc.Meshes {
		mesh := &doc.Meshes[mi]
		for pi := range mesh.Primitives {
			imported, skip, err := e.extractPrimitive(&mesh.Primitives[pi], mesh.Name, pi)
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if skip {
				continue
			}
			primitives[mi] = append(primitives[mi], len(all))
			all = append(all, imported)
		}
	}
	return all, primitives, nil
}

// extractPrimitive reads one primitive. Point and line primitives are skipped, they cannot be picked or lit.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, meshName string, primIndex int) (model.ImportedMesh, bool, error) {
	mode := gltfPrimitiveModeTriangles
	if prim.Mode != nil {
		mode = *prim.Mode
	}
	switch mode {
	case gltfPrimitiveModeTriangles, gltfPrimitiveModeTriangleStrip, gltfPrimitiveModeTriangleFan:
	default:
		return model.ImportedMesh{}, true, nil
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return model.ImportedMesh{}, false, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := e.parser.ReadFloats(posAccessor, gltfAccessorTypeVec3)
	if err != nil {
		return model.ImportedMesh{}, false, fmt.Errorf("failed to read positions: %w", err)
	}

	count := len(positions) / 3
	vertices := make([]model.GPUVertex, count)
	for i := range vertices {
		vertices[i].Position = [3]float32{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}

	hasNormals := false
	if acc, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := e.parser.ReadFloats(acc, gltfAccessorTypeVec3)
		if err != nil {
			return model.ImportedMesh{}, false, fmt.Errorf("failed to read normals: %w", err)
		}
		for i := 0; i < count && i*3+2 < len(normals); i++ {
			vertices[i].Normal = [3]float32{normals[i*3], normals[i*3+1], normals[i*3+2]}
		}
		hasNormals = true
	}

	if acc, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err := e.parser.ReadFloats(acc, gltfAccessorTypeVec2)
		if err != nil {
			return model.ImportedMesh{}, false, fmt.Errorf("failed to read texcoords: %w", err)
		}
		for i := 0; i < count && i*2+1 < len(uvs); i++ {
			vertices[i].TexCoord = [2]float32{uvs[i*2], uvs[i*2+1]}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = e.parser.ReadIndices(*prim.Indices); err != nil {
			return model.ImportedMesh{}, false, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, count)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = triangulate(mode, indices)

	for _, idx := range indices {
		if int(idx) >= count {
			return model.ImportedMesh{}, false, fmt.Errorf("index %d exceeds vertex count %d", idx, count)
		}
	}

	if !hasNormals {
		generateNormals(vertices, indices)
	}

	bmin, bmax := model.ComputeBounds(vertices)

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	name := meshName
	if name == "" {
		name = "mesh"
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}

	return model.ImportedMesh{
		Name:          name,
		Vertices:      vertices,
		Indices:       indices,
		MaterialIndex: materialIndex,
		BoundingMin:   bmin,
		BoundingMax:   bmax,
	}, false, nil
}

// triangulate converts strip and fan index lists to a plain triangle list.
func triangulate(mode int, indices []uint32) []uint32 {
	if len(indices) < 3 {
		return nil
	}
	switch mode {
	case gltfPrimitiveModeTriangleStrip:
		out := make([]uint32, 0, (len(indices)-2)*3)
		for i := 0; i+2 < len(indices); i++ {
			// keep winding consistent on odd triangles
			if i%2 == 0 {
				out = append(out, indices[i], indices[i+1], indices[i+2])
			} else {
				out = append(out, indices[i+1], indices[i], indices[i+2])
			}
		}
		return out
	case gltfPrimitiveModeTriangleFan:
		out := make([]uint32, 0, (len(indices)-2)*3)
		for i := 1; i+1 < len(indices); i++ {
			out = append(out, indices[0], indices[i], indices[i+1])
		}
		return out
	default:
		return indices[:len(indices)-len(indices)%3]
	}
}

// generateNormals writes area-weighted smooth normals when the primitive has no NORMAL attribute.
// Vertices no triangle touches get +Y.
func generateNormals(vertices []model.GPUVertex, indices []uint32) {
	accum := make([][3]float32, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[a].Position
		face := common.Cross3(common.Sub3(vertices[b].Position, p0), common.Sub3(vertices[c].Position, p0))
		for _, idx := range [3]uint32{a, b, c} {
			accum[idx][0] += face[0]
			accum[idx][1] += face[1]
			accum[idx][2] += face[2]
		}
	}

	for i := range vertices {
		if common.Dot3(accum[i], accum[i]) < 1e-12 {
			vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		vertices[i].Normal = common.Normalize3(accum[i])
	}
}
