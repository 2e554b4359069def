package model

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	mu         *sync.RWMutex
	name       string
	nodes      []Node
	meshes     []Mesh
	animations []*AnimationClip
	matrices   [][16]float32
}

// Model defines the interface for a loaded 3D model.
// A Model is a node hierarchy whose nodes place meshes, plus the animation clips that drive those nodes.
// It is produced by the Loader after importing a model file. Each Model backs a single GameObject:
// its live materials and node transforms are not shared between instances.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Nodes returns a snapshot of the node hierarchy with the current local transforms.
	//
	// Returns:
	//   - []Node: copies of the nodes
	Nodes() []Node

	// Meshes retrieves every drawable mesh of the model.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// Animations retrieves all animation clips bundled with this model.
	//
	// Returns:
	//   - []*AnimationClip: the animation clips
	Animations() []*AnimationClip

	// AnimationCount returns the number of available animation clips.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationNames returns the names of all animation clips.
	//
	// Returns:
	//   - []string: the clip names in index order
	AnimationNames() []string

	// AnimationIndex looks up a clip by name.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - int: the clip index, or -1 if no clip has that name
	AnimationIndex(name string) int

	// SetNodeLocal replaces a node's local transform. Call UpdateMatrices afterwards.
	//
	// Parameters:
	//   - index: the node index
	//   - t: the new local transform
	SetNodeLocal(index int, t Transform)

	// UpdateMatrices recomputes every node's model-space matrix from the hierarchy.
	UpdateMatrices()

	// NodeMatrix returns a node's model-space matrix as of the last UpdateMatrices.
	//
	// Parameters:
	//   - index: the node index, -1 for identity
	//
	// Returns:
	//   - [16]float32: column-major node-to-model matrix
	NodeMatrix(index int) [16]float32

	// Bounds returns the model-space bounding box of all meshes.
	//
	// Returns:
	//   - [3]float32: minimum corner
	//   - [3]float32: maximum corner
	//   - bool: false when the model has no meshes
	Bounds() ([3]float32, [3]float32, bool)

	// Pick tests a model-space ray against the model's triangles.
	//
	// Parameters:
	//   - ray: the ray in model space
	//
	// Returns:
	//   - float32: nearest hit distance in multiples of ray.Direction
	//   - bool: true if any triangle was hit
	Pick(ray common.Ray) (float32, bool)

	// TriangleCount returns the total triangle count across meshes.
	TriangleCount() int

	// ResetMaterials restores every mesh's live material to its imported state.
	ResetMaterials()

	// OverrideMaterials restores every mesh's live material to its imported state with the opacity and
	// transparency replaced. Each material is written once.
	//
	// Parameters:
	//   - opacity: the opacity to apply
	//   - transparent: whether the meshes draw in the blended pass
	OverrideMaterials(opacity float32, transparent bool)
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the newly created Model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu: &sync.RWMutex{},
	}
	for _, opt := range options {
		opt(m)
	}
	m.matrices = make([][16]float32, len(m.nodes))
	m.UpdateMatrices()
	return m
}

// FromImported builds a Model from format-neutral import data.
// Meshes referenced by nodes are placed by those nodes, meshes no node references are placed at the origin.
//
// Parameters:
//   - imp: the imported model
//
// Returns:
//   - Model: the new model
func FromImported(imp ImportedModel) Model {
	materials := make([]material.Material, len(imp.Materials))
	for i, im := range imp.Materials {
		materials[i] = material.FromImported(im)
	}

	owner := make([]int, len(imp.Meshes))
	for i := range owner {
		owner[i] = -1
	}
	for ni, n := range imp.Nodes {
		for _, mi := range n.Meshes {
			if mi >= 0 && mi < len(owner) {
				owner[mi] = ni
			}
		}
	}

	meshes := make([]Mesh, len(imp.Meshes))
	for i, im := range imp.Meshes {
		var mat material.Material
		if im.MaterialIndex >= 0 && im.MaterialIndex < len(materials) {
			// each mesh gets its own default so hover effects never bleed between meshes sharing a material
			mat = materials[im.MaterialIndex].Clone()
		}
		meshes[i] = NewMesh(im, owner[i], mat)
	}

	return NewModel(
		WithName(imp.Name),
		WithNodes(imp.Nodes),
		WithMeshes(meshes...),
		WithAnimations(imp.Animations...),
	)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Nodes() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

func (m *model) Meshes() []Mesh {
	return m.meshes
}

func (m *model) Animations() []*AnimationClip {
	return m.animations
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, a := range m.animations {
		names[i] = a.Name
	}
	return names
}

func (m *model) AnimationIndex(name string) int {
	for i, a := range m.animations {
		if a.Name == name {
			return i
		}
	}
	return -1
}

func (m *model) SetNodeLocal(index int, t Transform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.nodes) {
		return
	}
	m.nodes[index].Local = t
	m.nodes[index].Matrix = nil
}

func (m *model) UpdateMatrices() {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity := [16]float32{}
	common.Identity(identity[:])
	for i, n := range m.nodes {
		if n.Parent < 0 {
			m.updateNode(i, identity)
		}
	}
}

// updateNode writes the model-space matrix of a node and recurses into its children.
// The caller must hold the write lock.
func (m *model) updateNode(index int, parent [16]float32) {
	n := &m.nodes[index]
	var local [16]float32
	if n.Matrix != nil {
		local = *n.Matrix
	} else {
		common.ComposeTRS(local[:], n.Local.Translation, n.Local.Rotation, n.Local.Scale)
	}
	var world [16]float32
	common.Mul4(world[:], parent[:], local[:])
	m.matrices[index] = world
	for _, c := range n.Children {
		if c >= 0 && c < len(m.nodes) && c != index {
			m.updateNode(c, world)
		}
	}
}

func (m *model) NodeMatrix(index int) [16]float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodeMatrix(index)
}

// nodeMatrix returns the cached matrix without locking.
func (m *model) nodeMatrix(index int) [16]float32 {
	if index < 0 || index >= len(m.matrices) {
		var id [16]float32
		common.Identity(id[:])
		return id
	}
	return m.matrices[index]
}

func (m *model) Bounds() ([3]float32, [3]float32, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.meshes) == 0 {
		return [3]float32{}, [3]float32{}, false
	}
	bmin := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	bmax := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, mesh := range m.meshes {
		nm := m.nodeMatrix(mesh.Node())
		lo, hi := mesh.Bounds()
		lo, hi = common.TransformAABB(nm[:], lo, hi)
		for i := range 3 {
			bmin[i] = min(bmin[i], lo[i])
			bmax[i] = max(bmax[i], hi[i])
		}
	}
	return bmin, bmax, true
}

func (m *model) Pick(ray common.Ray) (float32, bool) {
	bmin, bmax, ok := m.Bounds()
	if !ok {
		return 0, false
	}
	if _, ok := ray.IntersectAABB(bmin, bmax); !ok {
		return 0, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	best := float32(math.MaxFloat32)
	hit := false
	for _, mesh := range m.meshes {
		nm := m.nodeMatrix(mesh.Node())
		var inv [16]float32
		if !common.Invert4(inv[:], nm[:]) {
			continue
		}
		if t, ok := mesh.Intersect(ray.Transform(inv[:])); ok && t < best {
			best = t
			hit = true
		}
	}
	if !hit {
		return 0, false
	}
	return best, true
}

func (m *model) TriangleCount() int {
	total := 0
	for _, mesh := range m.meshes {
		total += mesh.TriangleCount()
	}
	return total
}

func (m *model) ResetMaterials() {
	for _, mesh := range m.meshes {
		mesh.ResetMaterial()
	}
}

func (m *model) OverrideMaterials(opacity float32, transparent bool) {
	for _, mesh := range m.meshes {
		mesh.Material().ResetWith(mesh.DefaultMaterial(), opacity, transparent)
	}
}
