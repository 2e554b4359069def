package model

// ModelBuilderOption configures a Model inside NewModel.
type ModelBuilderOption func(*model)

// WithName sets the model name shown by `folio info` and used in load logs.
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithNodes sets the node hierarchy. The nodes are copied since animation rewrites their local transforms.
//
// Parameters:
//   - nodes: the nodes, each referencing its parent by index (-1 for roots)
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithNodes(nodes []Node) ModelBuilderOption {
	return func(m *model) {
		m.nodes = append([]Node(nil), nodes...)
	}
}

// WithMeshes appends drawable meshes.
func WithMeshes(meshes ...Mesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = append(m.meshes, meshes...)
	}
}

// WithAnimations appends animation clips. Nil clips are dropped.
//
// Parameters:
//   - clips: the clips, addressed later by index or name
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithAnimations(clips ...*AnimationClip) ModelBuilderOption {
	return func(m *model) {
		for _, c := range clips {
			if c != nil {
				m.animations = append(m.animations, c)
			}
		}
	}
}
