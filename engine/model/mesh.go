package model

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu           *sync.Mutex
	name         string
	node         int
	vertices     []GPUVertex
	indices      []uint32
	boundingMin  [3]float32
	boundingMax  [3]float32
	defaultMat   material.Material
	liveMat      material.Material
	meshProvider bind_group_provider.BindGroupProvider
}

// Mesh is one drawable primitive of a Model.
// Each mesh keeps the material it was imported with untouched and draws with a live clone of it,
// so transient effects such as hover highlights can be undone with ResetMaterial.
type Mesh interface {
	// Name retrieves the mesh identifier.
	Name() string

	// Node returns the index of the node whose transform places this mesh.
	Node() int

	// Vertices retrieves the CPU copy of the vertex data.
	Vertices() []GPUVertex

	// Indices retrieves the CPU copy of the triangle indices.
	Indices() []uint32

	// Bounds returns the mesh-space axis-aligned bounding box.
	//
	// Returns:
	//   - [3]float32: minimum corner
	//   - [3]float32: maximum corner
	Bounds() ([3]float32, [3]float32)

	// TriangleCount returns the number of triangles in the mesh.
	TriangleCount() int

	// DefaultMaterial retrieves the material as imported. It must not be mutated.
	DefaultMaterial() material.Material

	// Material retrieves the live material used for drawing.
	Material() material.Material

	// ResetMaterial copies the default material's mutable state back onto the live material.
	ResetMaterial()

	// MeshProvider retrieves the BindGroupProvider that holds the mesh's GPU geometry and texture.
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider replaces the mesh's GPU resource holder.
	//
	// Parameters:
	//   - p: the provider, typically filled in by the renderer on first upload
	SetMeshProvider(p bind_group_provider.BindGroupProvider)

	// Intersect tests a mesh-space ray against every triangle of the mesh.
	//
	// Parameters:
	//   - ray: the ray in mesh space
	//
	// Returns:
	//   - float32: the nearest hit distance in multiples of ray.Direction
	//   - bool: true if any triangle was hit
	Intersect(ray common.Ray) (float32, bool)
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from imported geometry and its material.
//
// Parameters:
//   - imp: the imported geometry
//   - node: the index of the node placing this mesh
//   - mat: the material as imported, nil for a plain white opaque material
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(imp ImportedMesh, node int, mat material.Material) Mesh {
	if mat == nil {
		mat = material.NewMaterial(material.WithName("default"))
	}
	return &mesh{
		mu:          &sync.Mutex{},
		name:        imp.Name,
		node:        node,
		vertices:    imp.Vertices,
		indices:     imp.Indices,
		boundingMin: imp.BoundingMin,
		boundingMax: imp.BoundingMax,
		defaultMat:  mat,
		liveMat:     mat.Clone(),
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Node() int {
	return m.node
}

func (m *mesh) Vertices() []GPUVertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) Bounds() ([3]float32, [3]float32) {
	return m.boundingMin, m.boundingMax
}

func (m *mesh) TriangleCount() int {
	if len(m.indices) > 0 {
		return len(m.indices) / 3
	}
	return len(m.vertices) / 3
}

func (m *mesh) DefaultMaterial() material.Material {
	return m.defaultMat
}

func (m *mesh) Material() material.Material {
	return m.liveMat
}

func (m *mesh) ResetMaterial() {
	m.liveMat.Reset(m.defaultMat)
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meshProvider
}

func (m *mesh) SetMeshProvider(p bind_group_provider.BindGroupProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meshProvider = p
}

func (m *mesh) Intersect(ray common.Ray) (float32, bool) {
	if _, ok := ray.IntersectAABB(m.boundingMin, m.boundingMax); !ok {
		return 0, false
	}

	best := float32(math.MaxFloat32)
	hit := false
	test := func(a, b, c uint32) {
		if int(a) >= len(m.vertices) || int(b) >= len(m.vertices) || int(c) >= len(m.vertices) {
			return
		}
		t, ok := ray.IntersectTriangle(m.vertices[a].Position, m.vertices[b].Position, m.vertices[c].Position)
		if ok && t < best {
			best = t
			hit = true
		}
	}

	if len(m.indices) > 0 {
		for i := 0; i+2 < len(m.indices); i += 3 {
			test(m.indices[i], m.indices[i+1], m.indices[i+2])
		}
	} else {
		for i := uint32(0); int(i)+2 < len(m.vertices); i += 3 {
			test(i, i+1, i+2)
		}
	}

	if !hit {
		return 0, false
	}
	return best, true
}

// ComputeBounds returns the axis-aligned bounding box of a vertex list.
//
// Parameters:
//   - vertices: the vertices to enclose
//
// Returns:
//   - [3]float32: minimum corner
//   - [3]float32: maximum corner
func ComputeBounds(vertices []GPUVertex) ([3]float32, [3]float32) {
	if len(vertices) == 0 {
		return [3]float32{}, [3]float32{}
	}
	bmin := vertices[0].Position
	bmax := vertices[0].Position
	for _, v := range vertices[1:] {
		for i := range 3 {
			bmin[i] = min(bmin[i], v.Position[i])
			bmax[i] = max(bmax[i], v.Position[i])
		}
	}
	return bmin, bmax
}
