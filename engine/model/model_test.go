package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad returns a unit square in the z = 0 plane facing +z.
func quad(name string, material int) ImportedMesh {
	v := []GPUVertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}},
	}
	bmin, bmax := ComputeBounds(v)
	return ImportedMesh{
		Name:          name,
		Vertices:      v,
		Indices:       []uint32{0, 1, 2, 0, 2, 3},
		MaterialIndex: material,
		BoundingMin:   bmin,
		BoundingMax:   bmax,
	}
}

func twoNodeModel() Model {
	root := IdentityTransform()
	child := IdentityTransform()
	child.Translation = [3]float32{2, 0, 0}
	return FromImported(ImportedModel{
		Name: "pair",
		Nodes: []Node{
			{Name: "root", Parent: -1, Children: []int{1}, Local: root, Meshes: []int{0}},
			{Name: "child", Parent: 0, Local: child, Meshes: []int{1}},
		},
		Meshes:    []ImportedMesh{quad("a", 0), quad("b", 0)},
		Materials: []common.ImportedMaterial{{Name: "paint", BaseColor: [4]float32{1, 1, 1, 1}}},
	})
}

func TestNodeHierarchyMatrices(t *testing.T) {
	m := twoNodeModel()
	childMat := m.NodeMatrix(1)
	assert.Equal(t, float32(2), childMat[12])

	bmin, bmax, ok := m.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -0.5, bmin[0], 1e-6)
	assert.InDelta(t, 2.5, bmax[0], 1e-6)
}

func TestPickHitsChildMesh(t *testing.T) {
	m := twoNodeModel()

	dist, ok := m.Pick(common.Ray{Origin: [3]float32{2, 0, 5}, Direction: [3]float32{0, 0, -1}})
	require.True(t, ok)
	assert.InDelta(t, 5, dist, 1e-5)

	_, ok = m.Pick(common.Ray{Origin: [3]float32{1, 0, 5}, Direction: [3]float32{0, 0, -1}})
	assert.False(t, ok, "gap between the two quads")
}

func TestMeshesShareNoMaterialState(t *testing.T) {
	m := twoNodeModel()
	meshes := m.Meshes()
	require.Len(t, meshes, 2)

	meshes[0].Material().SetOpacity(0.5)
	assert.Equal(t, float32(1), meshes[1].Material().Opacity())
	assert.Equal(t, float32(1), meshes[0].DefaultMaterial().Opacity())

	m.ResetMaterials()
	assert.Equal(t, float32(1), meshes[0].Material().Opacity())

	meshes[1].Material().SetBaseColor([4]float32{1, 0, 0, 1})
	m.OverrideMaterials(0.4, true)
	for _, mesh := range meshes {
		assert.Equal(t, float32(0.4), mesh.Material().Opacity())
		assert.True(t, mesh.Material().Transparent())
		assert.Equal(t, mesh.DefaultMaterial().BaseColor(), mesh.Material().BaseColor())
	}
}

func TestMeshWithoutMaterialGetsDefault(t *testing.T) {
	mesh := NewMesh(quad("bare", -1), -1, nil)
	assert.Equal(t, "default", mesh.DefaultMaterial().Name())
	assert.Equal(t, 2, mesh.TriangleCount())

	mat := material.NewMaterial(material.WithOpacity(0.9))
	mesh = NewMesh(quad("tinted", -1), -1, mat)
	assert.Equal(t, float32(0.9), mesh.Material().Opacity())
}

func TestMixerLoopsAndSamples(t *testing.T) {
	spin := &AnimationClip{
		Name:     "slide",
		Duration: 1,
		Channels: []AnimationChannel{{
			NodeIndex: 0,
			PositionKeys: []VectorKeyframe{
				{Time: 0, Value: [3]float32{0, 0, 0}},
				{Time: 1, Value: [3]float32{4, 0, 0}},
			},
		}},
	}
	m := NewModel(
		WithNodes([]Node{{Name: "root", Parent: -1, Local: IdentityTransform()}}),
		WithAnimations(spin, nil),
	)
	assert.Equal(t, 0, m.AnimationIndex("slide"))
	assert.Equal(t, -1, m.AnimationIndex("missing"))
	assert.Equal(t, 1, m.AnimationCount(), "nil clips are dropped")

	mixer := NewAnimationMixer(m)
	mixer.Update(0.5)
	assert.Zero(t, m.NodeMatrix(0)[12], "nothing plays before Play")

	mixer.Play(0)
	mixer.Update(0.25)
	assert.InDelta(t, 1, m.NodeMatrix(0)[12], 1e-5)

	mixer.Update(1.0)
	assert.InDelta(t, 0.25, mixer.Time(), 1e-5)
	assert.InDelta(t, 1, m.NodeMatrix(0)[12], 1e-5)

	mixer.Play(5)
	assert.False(t, mixer.Playing())
}

func TestSampleChannelStepAndRest(t *testing.T) {
	rest := IdentityTransform()
	rest.Scale = [3]float32{2, 2, 2}
	ch := AnimationChannel{
		Interpolation: InterpolationStep,
		PositionKeys: []VectorKeyframe{
			{Time: 0, Value: [3]float32{1, 0, 0}},
			{Time: 1, Value: [3]float32{3, 0, 0}},
		},
	}
	out := SampleChannel(ch, rest, 0.9)
	assert.Equal(t, [3]float32{1, 0, 0}, out.Translation)
	assert.Equal(t, [3]float32{2, 2, 2}, out.Scale)

	out = SampleChannel(ch, rest, 7)
	assert.Equal(t, [3]float32{3, 0, 0}, out.Translation)
}

func TestVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}}
	assert.Len(t, v.Marshal(), VertexStride)
	assert.Equal(t, VertexStride, v.Size())

	d := GPUDrawUniform{}
	assert.Equal(t, 96, d.Size())
	assert.Len(t, d.Marshal(), 96)
}
