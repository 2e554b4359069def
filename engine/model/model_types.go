package model

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
)

// --- Transform & Node Types ---

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}}
}

// Node is one entry of a model's transform hierarchy.
type Node struct {
	// Name is the node identifier from the model file.
	Name string

	// Parent is the index of the parent node, or -1 for roots.
	Parent int

	// Children are the indices of child nodes.
	Children []int

	// Local is the node's transform relative to its parent.
	Local Transform

	// Matrix is set when the file stores a raw matrix instead of TRS. Animations replace it with Local.
	Matrix *[16]float32

	// Meshes are indices into the model's mesh list drawn with this node's transform.
	Meshes []int
}

// --- Animation Types ---

// Interpolation is the keyframe interpolation mode of an animation channel.
type Interpolation int

const (
	// InterpolationLinear blends between neighbouring keyframes (slerp for rotations).
	InterpolationLinear Interpolation = iota
	// InterpolationStep holds each keyframe until the next one.
	InterpolationStep
)

// AnimationClip represents a single named animation over a model's nodes.
type AnimationClip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Channels contains keyframe data for each animated node.
	Channels []AnimationChannel
}

// AnimationChannel contains keyframe data for a single node.
type AnimationChannel struct {
	// NodeIndex is the index of the node this channel animates.
	NodeIndex int

	// Interpolation applies to every key list of the channel.
	Interpolation Interpolation

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value [3]float32
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe (x, y, z, w).
	Value [4]float32
}

// --- Import Types ---

// ImportedModel represents a 3D model loaded from an external format.
// This is the format-neutral result that importers produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Nodes is the transform hierarchy.
	Nodes []Node

	// Meshes contains one entry per drawable primitive.
	Meshes []ImportedMesh

	// Animations are all animation clips bundled with the model.
	Animations []*AnimationClip

	// Materials are referenced by ImportedMesh.MaterialIndex.
	Materials []common.ImportedMaterial
}

// ImportedMesh represents a single drawable primitive within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the mesh vertices.
	Vertices []GPUVertex

	// Indices are the triangle indices.
	Indices []uint32

	// MaterialIndex references ImportedModel.Materials, or -1 for the default material.
	MaterialIndex int

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}
