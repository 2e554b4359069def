package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBuffer packs a triangle, its uint16 indices and a two-key translation track.
func testBuffer() []byte {
	var b bytes.Buffer
	put := func(vs ...float32) {
		for _, v := range vs {
			_ = binary.Write(&b, binary.LittleEndian, math.Float32bits(v))
		}
	}
	// positions, 36 bytes
	put(0, 0, 0, 1, 0, 0, 0, 1, 0)
	// indices plus padding, 8 bytes
	_ = binary.Write(&b, binary.LittleEndian, [4]uint16{0, 1, 2, 0})
	// key times, 8 bytes
	put(0, 1)
	// translations, 24 bytes
	put(0, 0, 0, 0, 2, 0)
	return b.Bytes()
}

const testDocument = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "Sketchfab_Scene", "nodes": [0]}],
  "nodes": [
    {"name": "root", "children": [1], "translation": [1, 0, 0]},
    {"name": "tri", "mesh": 0, "translation": [0, 0, -2]},
    {"name": "orphan", "mesh": 0}
  ],
  "meshes": [{"name": "triangle", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
  "materials": [{"name": "glass", "alphaMode": "BLEND", "doubleSided": true,
                 "pbrMetallicRoughness": {"baseColorFactor": [0.2, 0.4, 0.6, 0.5]}}],
  "animations": [{"name": "bob",
    "channels": [{"sampler": 0, "target": {"node": 1, "path": "translation"}}],
    "samplers": [{"input": 2, "output": 3}]}],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0,0,0], "max": [1,1,0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 2, "componentType": 5126, "count": 2, "type": "SCALAR"},
    {"bufferView": 3, "componentType": 5126, "count": 2, "type": "VEC3"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6},
    {"buffer": 0, "byteOffset": 44, "byteLength": 8},
    {"buffer": 0, "byteOffset": 52, "byteLength": 24}
  ],
  "buffers": [{"byteLength": 76, "uri": "%s"}]
}`

func dataURIDocument() string {
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(testBuffer())
	return fmt.Sprintf(testDocument, uri)
}

func writeModel(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(dataURIDocument()), 0o644))
	return path
}

func TestImportDataURIDocument(t *testing.T) {
	imp, err := newGLTFImporter().ImportReader(strings.NewReader(dataURIDocument()), "", "tri")
	require.NoError(t, err)

	assert.Equal(t, "tri", imp.Name)
	require.Len(t, imp.Meshes, 1)
	mesh := imp.Meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, [3]float32{1, 1, 0}, mesh.BoundingMax)
	assert.InDelta(t, 1, mesh.Vertices[0].Normal[2], 1e-6, "normals are generated facing +z")

	require.Len(t, imp.Nodes, 3)
	assert.Equal(t, 0, imp.Nodes[1].Parent)
	assert.Equal(t, []int{0}, imp.Nodes[1].Meshes)
	assert.Empty(t, imp.Nodes[2].Meshes, "nodes outside the default scene draw nothing")

	require.Len(t, imp.Materials, 1)
	assert.Equal(t, common.AlphaModeBlend, imp.Materials[0].AlphaMode)
	assert.True(t, imp.Materials[0].DoubleSided)
	assert.Equal(t, [4]float32{0.2, 0.4, 0.6, 0.5}, imp.Materials[0].BaseColor)

	require.Len(t, imp.Animations, 1)
	clip := imp.Animations[0]
	assert.Equal(t, "bob", clip.Name)
	assert.Equal(t, float32(1), clip.Duration)
	require.Len(t, clip.Channels, 1)
	assert.Equal(t, 1, clip.Channels[0].NodeIndex)
	assert.Len(t, clip.Channels[0].PositionKeys, 2)
}

func TestLoadedModelIsPlacedAndPickable(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	m, err := l.LoadReader("tri", strings.NewReader(dataURIDocument()), "")
	require.NoError(t, err)

	// triangle sits at x in [1, 2], z = -2 after the node transforms
	dist, ok := m.Pick(common.Ray{Origin: [3]float32{1.2, 0.2, 0}, Direction: [3]float32{0, 0, -1}})
	require.True(t, ok)
	assert.InDelta(t, 2, dist, 1e-5)

	assert.True(t, m.Meshes()[0].Material().Transparent())

	mixer := model.NewAnimationMixer(m)
	mixer.Play(0)
	mixer.Update(0.5)
	mat := m.NodeMatrix(1)
	assert.InDelta(t, 1, mat[12], 1e-5, "root x offset")
	assert.InDelta(t, 1, mat[13], 1e-5, "halfway along the animated y track")
	assert.InDelta(t, 0, mat[14], 1e-5, "the track replaces the rest translation")
}

func TestLoadCachesImportButNotInstances(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "sea/scene.gltf")

	l := NewLoader(BackendTypeGLTF)
	a, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sea", a.Name())
	assert.True(t, l.Cached(path))

	require.NoError(t, os.Remove(path))
	b, err := l.Load(path)
	require.NoError(t, err, "second load is served from the cache")

	a.Meshes()[0].Material().SetOpacity(0.1)
	assert.Equal(t, float32(1), b.Meshes()[0].Material().Opacity())
}

func TestMeshOnlyDoesNotSatisfyFullLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "tech.gltf")

	l := NewLoader(BackendTypeGLTF)
	m, err := l.LoadMeshOnly(path)
	require.NoError(t, err)
	assert.Zero(t, m.AnimationCount())

	m, err = l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.AnimationCount())

	m, err = l.LoadMeshOnly(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.AnimationCount(), "full import is reused")
}

func TestLoadModelsReportsEachResult(t *testing.T) {
	dir := t.TempDir()
	good := writeModel(t, dir, "hand/scene.gltf")

	l := NewLoader(BackendTypeGLTF, WithWorkers(2))
	results := l.LoadModels(context.Background(), []Request{
		{Key: "about", Path: good},
		{Key: "tech", Path: filepath.Join(dir, "missing.gltf")},
		{Key: "contact", Path: filepath.Join(dir, "alien.fbx")},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "about", results[0].Key)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Model)

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Model)

	assert.ErrorIs(t, results[2].Err, ErrUnsupportedFormat)
}

func TestStreamModelsDeliversEachResult(t *testing.T) {
	dir := t.TempDir()
	good := writeModel(t, dir, "hand/scene.gltf")

	l := NewLoader(BackendTypeGLTF, WithWorkers(2))
	byKey := make(map[string]Result)
	for res := range l.StreamModels(context.Background(), []Request{
		{Key: "about", Path: good},
		{Key: "tech", Path: filepath.Join(dir, "missing.gltf")},
		{Key: "contact", Path: good, MeshOnly: true},
	}) {
		byKey[res.Key] = res
	}

	require.Len(t, byKey, 3)
	assert.NoError(t, byKey["about"].Err)
	assert.NotNil(t, byKey["contact"].Model)
	assert.Error(t, byKey["tech"].Err)

	_, open := <-l.StreamModels(context.Background(), nil)
	assert.False(t, open, "an empty batch closes immediately")
}

func TestLoadModelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewLoader(BackendTypeGLTF).LoadModels(ctx, []Request{{Key: "about", Path: "x.gltf"}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestParseGLB(t *testing.T) {
	buf := testBuffer()
	doc := strings.Replace(fmt.Sprintf(testDocument, ""), `, "uri": ""`, "", 1)
	for len(doc)%4 != 0 {
		doc += " "
	}

	var glb bytes.Buffer
	total := gltfGLBHeaderSize + gltfGLBChunkSize + len(doc) + gltfGLBChunkSize + len(buf)
	for _, w := range []uint32{gltfGLBMagic, gltfGLBVersion, uint32(total), uint32(len(doc)), gltfGLBChunkJSON} {
		_ = binary.Write(&glb, binary.LittleEndian, w)
	}
	glb.WriteString(doc)
	_ = binary.Write(&glb, binary.LittleEndian, uint32(len(buf)))
	_ = binary.Write(&glb, binary.LittleEndian, uint32(gltfGLBChunkBIN))
	glb.Write(buf)

	p := newGLTFParser()
	require.NoError(t, p.ParseReader(&glb, ""))
	positions, err := p.ReadFloats(0, gltfAccessorTypeVec3)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, positions)
}

func TestParseRejectsBadInput(t *testing.T) {
	p := newGLTFParser()
	assert.ErrorIs(t, p.ParseReader(strings.NewReader(`{"asset":{"version":"1.0"}}`), ""), errInvalidGLTFVersion)
	assert.Error(t, p.ParseReader(strings.NewReader(`{"asset":{"version":"2.0"},"extensionsRequired":["KHR_draco_mesh_compression"]}`), ""))

	require.NoError(t, p.ParseReader(strings.NewReader(dataURIDocument()), ""))
	_, err := p.ReadFloats(0, gltfAccessorTypeVec2)
	assert.Error(t, err, "type mismatch")
	_, err = p.ReadFloats(9, gltfAccessorTypeVec3)
	assert.Error(t, err, "index out of range")
}

func TestTriangulate(t *testing.T) {
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, triangulate(gltfPrimitiveModeTriangleStrip, []uint32{0, 1, 2, 3}))
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, triangulate(gltfPrimitiveModeTriangleFan, []uint32{0, 1, 2, 3}))
	assert.Equal(t, []uint32{0, 1, 2}, triangulate(gltfPrimitiveModeTriangles, []uint32{0, 1, 2, 3}))
	assert.Nil(t, triangulate(gltfPrimitiveModeTriangles, []uint32{0, 1}))
}

func TestDecodeNormalizedComponents(t *testing.T) {
	assert.Equal(t, float32(1), decodeComponent(gltfComponentTypeUnsignedByte, []byte{255}))
	assert.Equal(t, float32(-1), decodeComponent(gltfComponentTypeByte, []byte{0x80}))
	assert.InDelta(t, 0.5, decodeComponent(gltfComponentTypeUnsignedShort, []byte{0xff, 0x7f}), 1e-4)
}
