package portfolio

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/audio"
	"github.com/Carmen-Shannon/oxy-folio/engine/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 50 * time.Millisecond

type fakePlayer struct {
	audio.Player
	played []string
	err    error
	volume float64
}

func (f *fakePlayer) Play(name string) error {
	f.played = append(f.played, name)
	return f.err
}

func (f *fakePlayer) Volume() float64     { return f.volume }
func (f *fakePlayer) SetVolume(v float64) { f.volume = max(0, min(1, v)) }

func TestUnloadedRegionsIgnoreHoverAndClick(t *testing.T) {
	h := newHarness(t)

	h.c.Handle(PointerMove{X: centerX, Y: centerY})
	h.clickCenter()
	h.advance(time.Second, step)

	assert.Empty(t, h.rec.Mutations())
	assert.True(t, h.c.Interactive())
	assert.True(t, h.c.Drag().MouseEnabled())
	for _, r := range h.c.Regions() {
		assert.Equal(t, StateClosed, r.State(), r.Section.String())
	}
}

func TestClickOpensAndOnlyItsCloseReopensGate(t *testing.T) {
	player := &fakePlayer{}
	h := newHarness(t, WithPlayer(player))
	h.load(SectionAbout, true)
	about := h.c.Region(SectionAbout)

	h.clickCenter()
	assert.Equal(t, StateOpening, about.State())
	assert.False(t, h.c.Drag().MouseEnabled())
	assert.True(t, h.c.Drag().TouchEnabled(), "touch gate is independent")
	assert.True(t, h.rec.HasClass(ElementHeader, ClassHeaderTransition))
	assert.True(t, h.rec.Visible("aboutMeSection"))
	assert.False(t, h.rec.HasClass("aboutMeSection", "aboutZoom"))
	assert.Equal(t, []string{about.Sound}, player.played)

	h.advance(500*time.Millisecond, step)
	assert.True(t, h.rec.HasClass("aboutMeSection", "aboutZoom"))

	h.advance(time.Second, step)
	assert.Equal(t, StateOpen, about.State())

	h.c.Handle(Close{Section: SectionTech})
	assert.False(t, h.c.Drag().MouseEnabled(), "closing another section keeps the gate shut")
	assert.Equal(t, StateOpen, about.State())

	h.c.Handle(Close{Section: SectionAbout})
	assert.Equal(t, StateClosing, about.State())
	assert.True(t, h.c.Drag().MouseEnabled())
	assert.False(t, h.rec.Visible("aboutMeSection"))
	assert.False(t, h.rec.HasClass("aboutMeSection", "aboutZoom"))
	assert.False(t, h.rec.HasClass(ElementHeader, ClassHeaderTransition))

	h.advance(1500*time.Millisecond, step)
	assert.Equal(t, StateClosed, about.State())
	assert.Equal(t, [3]float32{0, 0, 0}, h.cam.Position(), "camera tweened home")
}

func TestMissingSoundStillOpens(t *testing.T) {
	player := &fakePlayer{err: fmt.Errorf("%w: x.mp3", audio.ErrUnknownSound)}
	h := newHarness(t, WithPlayer(player))
	h.load(SectionContact, true)

	h.clickCenter()
	assert.Equal(t, StateOpening, h.c.Region(SectionContact).State())
	assert.True(t, h.rec.Visible("contactMain"))
}

func TestProjectsSequence(t *testing.T) {
	h := newHarness(t)
	h.load(SectionProjects, true)

	h.clickCenter()
	assert.False(t, h.rec.Visible("projects"), "projects waits for the countdown")

	h.advance(750*time.Millisecond, step)
	half := tween.QuadraticOut(0.5)
	pos := h.cam.Position()
	assert.InDelta(t, 0.7*half, pos[0], 1e-4)
	assert.InDelta(t, 1.5*half, pos[1], 1e-4)
	assert.InDelta(t, 1.4*half, pos[2], 1e-4)

	h.advance(750*time.Millisecond, step)
	assert.Equal(t, [3]float32{0.7, 1.5, 1.4}, h.cam.Position())
	rot := h.cam.Rotation()
	assert.Equal(t, float32(0.2), rot[1])
	assert.Equal(t, StateOpen, h.c.Region(SectionProjects).State())
	assert.True(t, h.rec.HasClass(ElementProjectsAlert, ClassProjectsWarning))

	// countdown started at 500ms: terminal text at 5.5s, panel at 6.1s, come-in at 6.2s
	h.advance(5500*time.Millisecond-1500*time.Millisecond, step)
	assert.Equal(t, "Opening Projects!", h.rec.Text(ElementCountdown))
	assert.False(t, h.rec.Visible("projects"))

	h.advance(550*time.Millisecond, step)
	assert.False(t, h.rec.Visible("projects"))
	h.advance(step, step)
	assert.True(t, h.rec.Visible("projects"))
	assert.False(t, h.rec.HasClass(ElementProjectsAlert, ClassProjectsWarning))
	assert.False(t, h.rec.HasClass("projects", "projectsComein"))

	h.advance(100*time.Millisecond, step)
	assert.True(t, h.rec.HasClass("projects", "projectsComein"))
	assert.True(t, h.c.Countdown().Done())
	assert.False(t, h.c.Countdown().Running())
}

func countdownTexts(rec *Recorder) []string {
	var texts []string
	for _, m := range rec.Mutations() {
		if m.Op == "text" && m.ID == ElementCountdown {
			texts = append(texts, m.Value)
		}
	}
	return texts
}

func TestCountdownTerminalAfterFiveTicksAndLatch(t *testing.T) {
	h := newHarness(t)
	h.load(SectionProjects, true)
	h.clickCenter()

	h.advance(500*time.Millisecond, step)
	assert.Equal(t, []string{"5..."}, countdownTexts(h.rec))
	assert.True(t, h.c.Countdown().Running())

	h.advance(4*time.Second, step)
	assert.Equal(t, []string{"5...", "4...", "3...", "2...", "1..."}, countdownTexts(h.rec))

	h.advance(time.Second, step)
	assert.Equal(t, []string{"5...", "4...", "3...", "2...", "1...", "Opening Projects!"}, countdownTexts(h.rec))

	h.advance(time.Second, step)
	require.True(t, h.c.Countdown().Done())

	h.c.Handle(Close{Section: SectionProjects})
	h.advance(1500*time.Millisecond, step)
	require.Equal(t, StateClosed, h.c.Region(SectionProjects).State())
	assert.True(t, h.c.CountdownLatched())

	h.clickCenter()
	assert.True(t, h.rec.Visible("projects"), "a latched countdown reveals directly")
	h.advance(100*time.Millisecond, step)
	assert.True(t, h.rec.HasClass("projects", "projectsComein"))
	h.advance(10*time.Second, step)
	assert.Len(t, countdownTexts(h.rec), 6, "countdown does not restart while latched")
}

func TestCancelledCountdownRestarts(t *testing.T) {
	h := newHarness(t)
	h.load(SectionProjects, true)
	h.clickCenter()

	h.advance(2*time.Second, step)
	require.True(t, h.c.Countdown().Running())

	h.c.Handle(Close{Section: SectionProjects})
	assert.False(t, h.c.CountdownLatched())
	assert.False(t, h.c.Countdown().Running())
	assert.False(t, h.rec.HasClass(ElementProjectsAlert, ClassProjectsWarning))

	h.advance(1500*time.Millisecond, step)
	written := len(countdownTexts(h.rec))
	h.advance(5*time.Second, step)
	assert.Len(t, countdownTexts(h.rec), written, "nothing is written after cancellation")

	h.clickCenter()
	h.advance(500*time.Millisecond, step)
	texts := countdownTexts(h.rec)
	assert.Equal(t, "5...", texts[len(texts)-1])
	assert.True(t, h.c.CountdownLatched())
}

func TestCloseDuringOpeningCancelsReveal(t *testing.T) {
	h := newHarness(t)
	h.load(SectionTech, true)
	tech := h.c.Region(SectionTech)

	h.clickCenter()
	h.advance(200*time.Millisecond, step)
	h.c.Handle(Close{Section: SectionAny})
	assert.Equal(t, StateClosing, tech.State())

	h.advance(2*time.Second, step)
	assert.Equal(t, StateClosed, tech.State())
	for _, m := range h.rec.Mutations() {
		assert.False(t, m.Op == "add" && m.Value == "techopen", "reveal fired after close: %s", m)
	}
}

func TestSecondClickWhileOpenIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.load(SectionAbout, true)
	h.clickCenter()
	h.advance(2*time.Second, step)
	require.Equal(t, StateOpen, h.c.Region(SectionAbout).State())

	h.reset()
	before := len(h.rec.Mutations())
	h.clickCenter()
	assert.Len(t, h.rec.Mutations(), before)
	assert.Equal(t, StateOpen, h.c.Region(SectionAbout).State())
}

func TestClickDuringClosingSnapsToClosed(t *testing.T) {
	h := newHarness(t)
	h.load(SectionAbout, true)
	about := h.c.Region(SectionAbout)

	h.clickCenter()
	h.advance(2*time.Second, step)
	h.c.Handle(Close{Section: SectionAbout})
	h.advance(500*time.Millisecond, step)
	require.Equal(t, StateClosing, about.State())

	h.reset()
	h.clickCenter()
	assert.Equal(t, StateOpening, about.State())

	h.advance(1500*time.Millisecond, step)
	assert.Equal(t, StateOpen, about.State(), "the cancelled closing tween never completes")
}

func TestDragInertia(t *testing.T) {
	h := newHarness(t)
	drag := h.c.Drag()

	h.c.Handle(PointerMove{X: 150, Y: 10})
	assert.Zero(t, drag.Velocity(), "move without a drag start is a no-op")

	h.c.Handle(PointerDown{X: 100, Y: 10})
	h.c.Handle(PointerMove{X: 150, Y: 10})
	assert.InDelta(t, 0.05, drag.Velocity(), 1e-6)

	h.c.Handle(PointerUp{X: 150, Y: 10})
	h.advance(550*time.Millisecond, step)
	assert.InDelta(t, 0.05, drag.Velocity(), 1e-6)
	yaw := h.cam.Rotation()[1]
	assert.InDelta(t, 11*0.05, yaw, 1e-4)

	h.advance(step, step)
	assert.Equal(t, float32(0), drag.Velocity())
	settled := h.cam.Rotation()[1]
	assert.Equal(t, yaw, settled, "the decay tick applies no velocity")

	h.advance(time.Second, step)
	assert.Equal(t, settled, h.cam.Rotation()[1])
}

func TestSliderGatesMouse(t *testing.T) {
	player := &fakePlayer{volume: 1}
	h := newHarness(t, WithPlayer(player))

	h.c.Handle(SliderGrab{})
	assert.False(t, h.c.Drag().MouseEnabled())
	assert.True(t, h.c.Drag().TouchEnabled())
	assert.False(t, h.c.Interactive())

	h.c.Handle(VolumeStep{Delta: -2})
	assert.InDelta(t, 0.9, player.Volume(), 1e-9)
	h.c.Handle(VolumeStep{Delta: 5})
	assert.Equal(t, 1.0, player.Volume())

	h.c.Handle(SliderRelease{})
	assert.True(t, h.c.Drag().MouseEnabled())

	h.load(SectionAbout, true)
	h.clickCenter()
	h.c.Handle(SliderGrab{})
	h.c.Handle(SliderRelease{})
	assert.False(t, h.c.Drag().MouseEnabled(), "release only reopens when the regions allow it")
}

func TestSliderGrabDuringDragStopsSpin(t *testing.T) {
	h := newHarness(t)
	drag := h.c.Drag()

	h.c.Handle(PointerDown{X: 100, Y: 10})
	h.c.Handle(PointerMove{X: 150, Y: 10})
	h.c.Handle(SliderGrab{})
	h.c.Handle(PointerUp{X: 150, Y: 10})
	h.c.Handle(SliderRelease{})

	h.advance(2*time.Second, step)
	assert.False(t, drag.Dragging())
	assert.Equal(t, float32(0), drag.Velocity())
	settled := h.cam.Rotation()[1]
	h.advance(time.Second, step)
	assert.Equal(t, settled, h.cam.Rotation()[1])
}

func TestHoverHighlight(t *testing.T) {
	h := newHarness(t)
	h.load(SectionTech, true)
	mat := h.c.Region(SectionTech).Object.Model().Meshes()[0].Material()
	assert.Equal(t, float32(0.9), mat.Opacity(), "baseline applied on load")
	assert.True(t, mat.Transparent())

	h.c.Handle(PointerMove{X: centerX, Y: centerY})
	assert.Equal(t, float32(0.5), mat.Opacity())
	assert.True(t, mat.Transparent())

	h.c.Handle(PointerMove{X: 0, Y: 0})
	assert.Equal(t, float32(0.9), mat.Opacity())

	cfg := h.cfg
	cfg.Hover.Opacity = 0.3
	h.c.Handle(Reconfigure{Config: cfg})
	h.c.Handle(PointerMove{X: centerX, Y: centerY})
	assert.Equal(t, float32(0.3), mat.Opacity())
}

func TestHoverNeverExposesDefaultOpacity(t *testing.T) {
	h := newHarness(t)
	h.load(SectionTech, true)
	mat := h.c.Region(SectionTech).Object.Model().Meshes()[0].Material()

	done := make(chan struct{})
	seen := make(chan float32, 1)
	go func() {
		defer close(seen)
		for {
			select {
			case <-done:
				return
			default:
			}
			if op := mat.Uniform().Opacity; op != 0.5 && op != 0.9 {
				seen <- op
				return
			}
		}
	}()

	for range 2000 {
		h.c.Handle(PointerMove{X: centerX, Y: centerY})
		h.c.Handle(PointerMove{X: 0, Y: 0})
	}
	close(done)
	for op := range seen {
		t.Fatalf("render read an intermediate opacity %v", op)
	}
}

func TestHoverCallbackOnEnterAndLeave(t *testing.T) {
	var changes []bool
	h := newHarness(t, WithHoverCallback(func(hovering bool) { changes = append(changes, hovering) }))
	h.load(SectionTech, true)

	h.c.Handle(PointerMove{X: centerX, Y: centerY})
	h.c.Handle(PointerMove{X: centerX + 1, Y: centerY})
	assert.Equal(t, []Section{SectionTech}, h.c.Hovered())

	h.c.Handle(PointerMove{X: 0, Y: 0})
	assert.Empty(t, h.c.Hovered())
	assert.Equal(t, []bool{true, false}, changes)
}

func TestHoverRestoresOpaqueBaseline(t *testing.T) {
	h := newHarness(t)
	h.load(SectionAbout, true)
	mat := h.c.Region(SectionAbout).Object.Model().Meshes()[0].Material()

	h.c.Handle(PointerMove{X: centerX, Y: centerY})
	assert.True(t, mat.Transparent())

	h.c.Handle(PointerMove{X: 0, Y: 0})
	assert.Equal(t, float32(1), mat.Opacity())
	assert.False(t, mat.Transparent())
}

func TestReadinessAndLoadingIndicator(t *testing.T) {
	h := newHarness(t, WithLoadKeys(BackdropKey))
	settled := 0
	h.c.Readiness().Subscribe(func(ReadinessState) { settled++ })

	h.load(SectionAbout, false)
	h.load(SectionTech, false)
	h.c.Handle(Loaded{Key: SectionProjects.String(), Err: errors.New("404")})
	h.load(SectionContact, false)
	assert.Equal(t, Loading, h.c.Readiness().State())

	h.c.Handle(Loaded{Key: BackdropKey, Model: quadModel("garage")})
	assert.Equal(t, Degraded, h.c.Readiness().State())
	assert.Equal(t, []string{"projects"}, h.c.Readiness().Failed())
	assert.Nil(t, h.c.Region(SectionProjects).Object)
	assert.True(t, h.rec.HasClass(ElementLoading, ClassLoadingDone))

	h.c.Handle(Loaded{Key: BackdropKey, Model: quadModel("garage")})
	assert.Equal(t, 1, settled)

	h.advance(650*time.Millisecond, step)
	assert.NotContains(t, h.rec.Mutations(), Mutation{Op: "hide", ID: ElementLoading})
	h.advance(step, step)
	assert.Contains(t, h.rec.Mutations(), Mutation{Op: "hide", ID: ElementLoading})
}

func TestOnlyMotionEventsAreDroppable(t *testing.T) {
	droppable := func(ev Event) bool {
		_, ok := ev.(interface{ Droppable() })
		return ok
	}
	assert.True(t, droppable(PointerMove{}))
	assert.True(t, droppable(TouchMove{}))
	for _, ev := range []Event{PointerUp{}, TouchEnd{}, Close{}, Loaded{}, SliderRelease{}, Click{}} {
		assert.False(t, droppable(ev), "%T", ev)
	}
}
