package portfolio

import (
	"context"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/audio"
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/model"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/schedule"
	"github.com/Carmen-Shannon/oxy-folio/engine/tween"
)

// BackdropKey is the Loaded key of the non-interactive backdrop model.
const BackdropKey = "backdrop"

// Controller owns the interactive state of the portfolio: regions, transitions, timers, tweens and the
// drag controller. Every change goes through Handle, which must be called from a single goroutine
// (the engine tick goroutine).
type Controller interface {
	// Handle applies one event.
	//
	// Parameters:
	//   - ev: the event
	Handle(ev Event)

	// Regions returns the regions in configuration order.
	Regions() []*Region

	// Region returns the region for section, or nil.
	Region(section Section) *Region

	// Interactive reports whether clicks open regions and the mouse may drag the camera:
	// the slider is not held and every region is closed or closing.
	Interactive() bool

	// Readiness returns the load aggregate.
	Readiness() *Readiness

	// Countdown returns the projects countdown.
	Countdown() *Countdown

	// CountdownLatched reports whether the projects countdown has been triggered and not cancelled.
	CountdownLatched() bool

	// Drag returns the camera drag controller.
	Drag() camera.CameraController

	// Slider returns the volume slider.
	Slider() *Slider

	// Scheduler returns the scheduler advanced by Tick events.
	Scheduler() schedule.Scheduler

	// Hovered returns the sections under the pointer as of the last PointerMove.
	Hovered() []Section

	// Shutdown cancels every pending transition.
	Shutdown()
}

type controller struct {
	cfg     config.Config
	regions []*Region

	cam       camera.Camera
	scene     scene.Scene
	presenter Presenter
	player    audio.Player

	scheduler   schedule.Scheduler
	tweens      tween.Group
	drag        camera.CameraController
	highlighter *Highlighter
	countdown   *Countdown
	slider      *Slider
	readiness   *Readiness

	extraKeys []string
	hovered   []Section
	onHover   func(hovering bool)

	width, height int
	easing        tween.EasingFunc
	latched       bool

	root   context.Context
	cancel context.CancelFunc
}

var _ Controller = &controller{}

// NewController creates a controller for regions, viewed through cam.
// Defaults: config.Default timings, a Recorder presenter, a silent audio player, no scene and a 1280x720
// viewport.
//
// Parameters:
//   - cam: the scene camera, tweened on transitions and yawed by drags
//   - regions: the interactive regions, usually from RegionsFromConfig
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the controller
func NewController(cam camera.Camera, regions []*Region, options ...ControllerBuilderOption) Controller {
	if cam == nil {
		panic("portfolio: NewController requires a non-nil Camera")
	}
	c := &controller{
		cfg:       config.Default(),
		regions:   regions,
		cam:       cam,
		scheduler: schedule.NewScheduler(),
		tweens:    tween.NewGroup(),
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(c)
	}
	c.root, c.cancel = context.WithCancel(context.Background())

	if c.presenter == nil {
		c.presenter = NewRecorder()
	}
	if c.player == nil {
		c.player = audio.NewPlayer(audio.WithSilent(true), audio.WithVolume(c.cfg.Audio.Volume))
	}
	c.easing = easingFor(c.cfg.Tween.Easing)

	mode, err := camera.ParseInertiaMode(c.cfg.Drag.Mode)
	if err != nil {
		log.Printf("using hold inertia: %v", err)
	}
	c.drag = camera.NewCameraController(cam, c.scheduler,
		camera.WithDragScale(c.cfg.Drag.Scale),
		camera.WithInertiaDelay(c.cfg.Drag.InertiaDelay.D()),
		camera.WithInertiaMode(mode),
		camera.WithSpring(c.cfg.Drag.SpringFrequency, c.cfg.Drag.SpringDamping),
	)
	c.highlighter = NewHighlighter(regions, c.cfg.Hover.Opacity)
	c.slider = NewSlider(c.player, c.cfg.Audio.Step)

	panel, reveal := "projects", "projectsComein"
	if r := c.Region(SectionProjects); r != nil {
		panel, reveal = r.Panel, r.RevealClass
	}
	c.countdown = NewCountdown(c.presenter, c.scheduler, c.cfg.Countdown, panel, reveal)

	keys := make([]string, 0, len(regions)+len(c.extraKeys))
	for _, r := range regions {
		keys = append(keys, r.Section.String())
	}
	keys = append(keys, c.extraKeys...)
	c.readiness = NewReadiness(keys...)
	c.readiness.Subscribe(c.onReady)

	return c
}

func easingFor(name string) tween.EasingFunc {
	if fn, ok := tween.EasingByName(name); ok {
		return fn
	}
	return tween.QuadraticOut
}

func (c *controller) Regions() []*Region {
	return c.regions
}

func (c *controller) Region(section Section) *Region {
	for _, r := range c.regions {
		if r.Section == section {
			return r
		}
	}
	return nil
}

func (c *controller) Interactive() bool {
	if c.slider.Held() {
		return false
	}
	for _, r := range c.regions {
		if !r.settled() {
			return false
		}
	}
	return true
}

func (c *controller) Readiness() *Readiness {
	return c.readiness
}

func (c *controller) Countdown() *Countdown {
	return c.countdown
}

func (c *controller) CountdownLatched() bool {
	return c.latched
}

func (c *controller) Drag() camera.CameraController {
	return c.drag
}

func (c *controller) Slider() *Slider {
	return c.slider
}

func (c *controller) Scheduler() schedule.Scheduler {
	return c.scheduler
}

func (c *controller) Hovered() []Section {
	return c.hovered
}

func (c *controller) Shutdown() {
	for _, r := range c.regions {
		r.stop()
	}
	c.cancel()
	c.tweens.Clear()
}

func (c *controller) Handle(ev Event) {
	switch e := ev.(type) {
	case PointerMove:
		c.drag.MouseMove(e.X)
		c.hover(c.highlighter.Update(c.pointerRay(e.X, e.Y)))
	case PointerDown:
		c.drag.MouseDown(e.X)
	case PointerUp:
		c.drag.MouseUp()
	case TouchStart:
		c.drag.TouchStart(e.X)
	case TouchMove:
		c.drag.TouchMove(e.X)
	case TouchEnd:
		c.drag.TouchEnd()
	case Click:
		c.click(e.X, e.Y)
	case Close:
		c.closeSection(e.Section)
	case SliderGrab:
		c.slider.Grab()
		c.updateGate()
	case SliderRelease:
		c.slider.Release()
		c.updateGate()
	case VolumeStep:
		c.slider.Step(e.Delta)
	case Tick:
		c.tick(e.DT)
	case Resize:
		if e.Width > 0 && e.Height > 0 {
			c.width, c.height = e.Width, e.Height
		}
	case Loaded:
		c.loaded(e)
	case Reconfigure:
		c.reconfigure(e.Config)
	}
}

// tick advances the scheduler, then the tweens, then the drag, then the model animations.
func (c *controller) tick(dt time.Duration) {
	c.scheduler.Advance(dt)
	c.tweens.Update(c.scheduler.Now())
	c.drag.Update(dt)
	if c.scene != nil && c.cfg.Animation.Step > 0 {
		c.scene.Update(c.cfg.Animation.Step)
	}
}

// hover records the hit sections and reports when the pointer enters or leaves every region.
func (c *controller) hover(hits []Section) {
	was := len(c.hovered) > 0
	c.hovered = hits
	if now := len(hits) > 0; now != was && c.onHover != nil {
		c.onHover(now)
	}
}

func (c *controller) pointerRay(x, y float32) common.Ray {
	nx, ny := common.PointerToNDC(x, y, c.width, c.height)
	return c.cam.PickRay(nx, ny)
}

// click opens the nearest loaded region under the pointer. Ignored unless interactive.
func (c *controller) click(x, y float32) {
	if !c.Interactive() {
		return
	}
	ray := c.pointerRay(x, y)
	var hit *Region
	best := float32(0)
	for _, r := range c.regions {
		if !r.Loaded() {
			continue
		}
		if d, ok := r.Object.Pick(ray); ok && (hit == nil || d < best) {
			hit, best = r, d
		}
	}
	if hit != nil {
		c.open(hit)
	}
}

// open starts the opening transition of r under a fresh token.
func (c *controller) open(r *Region) {
	for _, other := range c.regions {
		other.stop()
		if other.state == StateClosing {
			other.state = StateClosed
		}
	}

	ctx, cancel := context.WithCancel(c.root)
	r.cancel = cancel
	r.state = StateOpening

	c.presenter.AddClass(ElementHeader, ClassHeaderTransition)
	if err := c.player.Play(r.Sound); err != nil {
		log.Printf("failed to play sound %s: %v", r.Sound, err)
	}
	c.updateGate()

	c.tweenCamera(ctx, r.CameraTarget, func() {
		r.state = StateOpen
	})

	if r.Section == SectionProjects {
		c.openProjects(ctx, r)
		return
	}
	c.presenter.Show(r.Panel)
	c.scheduler.After(ctx, r.RevealDelay, func() {
		c.presenter.AddClass(r.Panel, r.RevealClass)
	})
}

// openProjects runs the countdown the first time and reveals the panel directly afterwards.
func (c *controller) openProjects(ctx context.Context, r *Region) {
	cd := c.cfg.Countdown
	if !c.latched {
		c.latched = true
		c.scheduler.After(ctx, cd.AlertDelay.D(), func() {
			c.presenter.AddClass(ElementProjectsAlert, ClassProjectsWarning)
		})
		c.scheduler.After(ctx, cd.StartDelay.D(), func() {
			c.countdown.Start(ctx, cd.From)
		})
		return
	}
	c.presenter.Show(r.Panel)
	c.scheduler.After(ctx, r.RevealDelay, func() {
		c.presenter.AddClass(r.Panel, r.RevealClass)
	})
}

// closeSection closes an opening or open region and tweens the camera home.
func (c *controller) closeSection(section Section) {
	var r *Region
	for _, candidate := range c.regions {
		if (section == SectionAny || candidate.Section == section) &&
			(candidate.state == StateOpening || candidate.state == StateOpen) {
			r = candidate
			break
		}
	}
	if r == nil {
		return
	}

	r.stop()
	r.state = StateClosing

	c.presenter.RemoveClass(r.Panel, r.RevealClass)
	c.presenter.Hide(r.Panel)
	c.presenter.RemoveClass(ElementHeader, ClassHeaderTransition)

	if r.Section == SectionProjects && c.latched && !c.countdown.Done() {
		c.latched = false
		c.presenter.RemoveClass(ElementProjectsAlert, ClassProjectsWarning)
	}
	c.updateGate()

	ctx, cancel := context.WithCancel(c.root)
	r.cancel = cancel
	c.tweenCamera(ctx, c.homePose(), func() {
		r.state = StateClosed
		r.cancel = nil
		cancel()
	})
}

func (c *controller) homePose() Pose {
	rot := c.cfg.Camera.Rotation
	return Pose{Position: c.cfg.Camera.Position, Rotation: [2]float32{rot[1], rot[2]}}
}

// tweenCamera starts the position and rotation tweens towards pose and calls done once both finished.
func (c *controller) tweenCamera(ctx context.Context, pose Pose, done func()) {
	remaining := 2
	finish := func() {
		remaining--
		if remaining == 0 {
			done()
		}
	}
	d := c.cfg.Tween.Duration.D()

	c.tweens.Start(ctx, tween.New(
		func() []float32 {
			p := c.cam.Position()
			return p[:]
		},
		func(v []float32) { c.cam.SetPosition(v[0], v[1], v[2]) },
		pose.Position[:], d,
		tween.WithEasing(c.easing), tween.WithOnComplete(finish),
	))
	c.tweens.Start(ctx, tween.New(
		func() []float32 {
			r := c.cam.Rotation()
			return []float32{r[1], r[2]}
		},
		func(v []float32) {
			r := c.cam.Rotation()
			c.cam.SetRotation(r[0], v[0], v[1])
		},
		pose.Rotation[:], d,
		tween.WithEasing(c.easing), tween.WithOnComplete(finish),
	))
}

// updateGate pushes the interaction state to the mouse gate. The touch gate is left alone.
func (c *controller) updateGate() {
	c.drag.SetMouseEnabled(c.Interactive())
}

// loaded places a loaded model in the scene and reports the result.
func (c *controller) loaded(e Loaded) {
	defer c.readiness.Report(e.Key, e.Err)

	if e.Err != nil {
		log.Printf("failed to load model %s: %v", e.Key, e.Err)
		return
	}
	if e.Model == nil {
		return
	}

	if e.Key == BackdropKey {
		c.place(e.Key, e.Model, c.cfg.Backdrop)
		return
	}
	section, err := ParseSection(e.Key)
	if err != nil {
		log.Printf("ignoring loaded model: %v", err)
		return
	}
	r := c.Region(section)
	if r == nil || r.Loaded() {
		return
	}
	r.Object = c.place(e.Key, e.Model, r.Model)
	c.highlighter.Baseline(r)
}

func (c *controller) place(name string, m model.Model, mc config.ModelConfig) game_object.GameObject {
	scale := mc.Scale
	if scale == [3]float32{} {
		scale = [3]float32{1, 1, 1}
	}
	options := []game_object.GameObjectBuilderOption{
		game_object.WithName(name),
		game_object.WithModel(m),
		game_object.WithPosition(mc.Position[0], mc.Position[1], mc.Position[2]),
		game_object.WithRotation(mc.Rotation[0], mc.Rotation[1], mc.Rotation[2]),
		game_object.WithScale(scale[0], scale[1], scale[2]),
	}
	if mc.Animate && m.AnimationCount() > 0 {
		options = append(options, game_object.WithAnimation(0))
	}
	obj := game_object.NewGameObject(options...)
	if c.scene != nil {
		c.scene.Add(obj)
	}
	return obj
}

// onReady marks the loading indicator done and hides it after the configured delay.
func (c *controller) onReady(state ReadinessState) {
	log.Printf("models %s", state)
	if failed := c.readiness.Failed(); len(failed) > 0 {
		log.Printf("unavailable models: %v", failed)
	}
	c.presenter.AddClass(ElementLoading, ClassLoadingDone)
	c.scheduler.After(c.root, c.cfg.Loading.HideDelay.D(), func() {
		c.presenter.Hide(ElementLoading)
	})
}

// reconfigure applies the settings that can change while running.
func (c *controller) reconfigure(cfg config.Config) {
	c.cfg.Hover = cfg.Hover
	c.cfg.Tween = cfg.Tween
	c.cfg.Drag.Scale = cfg.Drag.Scale
	c.cfg.Audio.Volume = cfg.Audio.Volume
	c.cfg.Audio.Step = cfg.Audio.Step

	c.highlighter.SetOpacity(cfg.Hover.Opacity)
	c.easing = easingFor(cfg.Tween.Easing)
	c.drag.SetDragScale(cfg.Drag.Scale)
	c.player.SetVolume(cfg.Audio.Volume)
	c.slider.SetStep(cfg.Audio.Step)
	log.Printf("applied config: hover opacity %.2f, drag scale %.4f, tween %s, volume %.2f",
		cfg.Hover.Opacity, cfg.Drag.Scale, cfg.Tween.Duration.D(), cfg.Audio.Volume)
}
