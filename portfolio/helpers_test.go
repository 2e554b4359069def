package portfolio

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/stretchr/testify/require"
)

const (
	viewW = 800
	viewH = 600
	// the pixel at the viewport center casts a ray straight down -Z from the home pose
	centerX = viewW / 2
	centerY = viewH / 2
)

// quadModel is a unit quad facing +Z.
func quadModel(name string) model.Model {
	v := []model.GPUVertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}},
	}
	bmin, bmax := model.ComputeBounds(v)
	return model.FromImported(model.ImportedModel{
		Name:  name,
		Nodes: []model.Node{{Name: "root", Parent: -1, Local: model.IdentityTransform(), Meshes: []int{0}}},
		Meshes: []model.ImportedMesh{{
			Name:        name + "_mesh",
			Vertices:    v,
			Indices:     []uint32{0, 1, 2, 0, 2, 3},
			BoundingMin: bmin,
			BoundingMax: bmax,
		}},
		Materials: []common.ImportedMaterial{{Name: name + "_mat", BaseColor: [4]float32{1, 1, 1, 1}, AlphaMode: common.AlphaModeOpaque}},
	})
}

// harness wires a controller with a recorder and a camera whose home pose looks down -Z from the origin.
type harness struct {
	t   *testing.T
	cfg config.Config
	cam camera.Camera
	rec *Recorder
	c   Controller
}

func newHarness(t *testing.T, options ...ControllerBuilderOption) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{0, 0, 0}
	cfg.Camera.Rotation = [3]float32{0, 0, 0}
	// every region sits off to the side until a test moves the one it clicks
	for i := range cfg.Regions {
		cfg.Regions[i].Model.Position = [3]float32{float32(10 + 3*i), 0, -5}
		cfg.Regions[i].Model.Rotation = [3]float32{}
	}

	regions, err := RegionsFromConfig(cfg)
	require.NoError(t, err)

	h := &harness{
		t:   t,
		cfg: cfg,
		cam: camera.NewCamera(camera.WithViewport(viewW, viewH)),
		rec: NewRecorder(),
	}
	h.c = NewController(h.cam, regions, append([]ControllerBuilderOption{
		WithConfig(cfg),
		WithPresenter(h.rec),
		WithViewport(viewW, viewH),
	}, options...)...)
	return h
}

// load delivers a model for section; centered puts it under the viewport center.
func (h *harness) load(section Section, centered bool) {
	h.t.Helper()
	r := h.c.Region(section)
	require.NotNil(h.t, r)
	if centered {
		r.Model.Position = [3]float32{0, 0, -5}
	}
	h.c.Handle(Loaded{Key: section.String(), Model: quadModel(section.String())})
	require.True(h.t, r.Loaded())
}

func (h *harness) clickCenter() {
	h.c.Handle(Click{X: centerX, Y: centerY})
}

// advance sends ticks of step until d has elapsed.
func (h *harness) advance(d, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		h.c.Handle(Tick{DT: step})
	}
}

// reset puts the camera back at the home pose so the center ray hits again.
func (h *harness) reset() {
	h.cam.SetPosition(0, 0, 0)
	h.cam.SetRotation(0, 0, 0)
}
