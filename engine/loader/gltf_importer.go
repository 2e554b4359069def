package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/engine/model"
)

// gltfImporterImpl runs the parser and every extractor to produce a complete ImportedModel.
type gltfImporterImpl struct{}

var _ loaderBackend = &gltfImporterImpl{}

func newGLTFImporter() loaderBackend {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string, meshOnly bool) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path, meshOnly)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, baseDir, name string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, baseDir); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importFromParser(parser, name, false)
}

// importFromParser extracts everything from a parsed document.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackName string, meshOnly bool) (*model.ImportedModel, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	meshes, primitives, err := newGLTFMeshExtractor(parser).ExtractAllMeshes()
	if err != nil {
		return nil, fmt.Errorf("mesh extraction failed: %w", err)
	}

	materials, err := newGLTFMaterialExtractor(parser).ExtractAllMaterials()
	if err != nil {
		return nil, fmt.Errorf("material extraction failed: %w", err)
	}

	var animations []*model.AnimationClip
	if !meshOnly {
		if animations, err = newGLTFAnimationExtractor(parser).ExtractAllAnimations(); err != nil {
			return nil, fmt.Errorf("animation extraction failed: %w", err)
		}
	}

	return &model.ImportedModel{
		Name:       gltfExtractModelName(doc, fallbackName),
		Nodes:      gltfExtractNodes(doc, primitives),
		Meshes:     meshes,
		Materials:  materials,
		Animations: animations,
	}, nil
}

// gltfExtractNodes converts the node list, linking parents and mapping each node's mesh to its primitives.
// Nodes outside the default scene keep their transforms but draw nothing.
func gltfExtractNodes(doc *gltfDocument, primitives [][]int) []model.Node {
	nodes := make([]model.Node, len(doc.Nodes))
	for i := range nodes {
		nodes[i].Parent = -1
	}

	for i, n := range doc.Nodes {
		local := model.IdentityTransform()
		if n.Translation != nil {
			local.Translation = *n.Translation
		}
		if n.Rotation != nil {
			local.Rotation = *n.Rotation
		}
		if n.Scale != nil {
			local.Scale = *n.Scale
		}

		out := &nodes[i]
		out.Name = n.Name
		out.Local = local
		if n.Matrix != nil {
			m := *n.Matrix
			out.Matrix = &m
		}
		for _, c := range n.Children {
			// a node may have at most one parent; later claims are ignored
			if c >= 0 && c < len(nodes) && c != i && nodes[c].Parent < 0 {
				nodes[c].Parent = i
				out.Children = append(out.Children, c)
			}
		}
	}

	visible := gltfSceneNodes(doc)
	for i, n := range doc.Nodes {
		if n.Mesh == nil || *n.Mesh < 0 || *n.Mesh >= len(primitives) {
			continue
		}
		if visible != nil && !visible[i] {
			continue
		}
		nodes[i].Meshes = append(nodes[i].Meshes, primitives[*n.Mesh]...)
	}
	return nodes
}

// gltfSceneNodes marks every node reachable from the default scene, or returns nil when the document has no scenes.
func gltfSceneNodes(doc *gltfDocument) map[int]bool {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		scene = *doc.Scene
	}

	seen := make(map[int]bool)
	stack := append([]int(nil), doc.Scenes[scene].Nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n < 0 || n >= len(doc.Nodes) || seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, doc.Nodes[n].Children...)
	}
	return seen
}

// gltfExtractModelName names a model after its file. Exporters that always write "scene.gltf" get the directory name.
// Without a path the default scene's name is used.
func gltfExtractModelName(doc *gltfDocument, fallback string) string {
	if fallback != "" {
		base := filepath.Base(fallback)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name == "scene" {
			if dir := filepath.Base(filepath.Dir(fallback)); dir != "." && dir != string(filepath.Separator) {
				return dir
			}
		}
		return name
	}
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	return "unnamed_model"
}
