package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickDrainsEventsBeforeCallback(t *testing.T) {
	e := NewEngine().(*engine)

	var order []string
	e.SetEventHandler(func(ev any) { order = append(order, ev.(string)) })
	e.SetTickCallback(func(float32) { order = append(order, "tick") })

	require.True(t, e.Post("down"))
	require.True(t, e.Post("up"))
	e.tick(1.0 / 60)
	e.tick(1.0 / 60)

	assert.Equal(t, []string{"down", "up", "tick", "tick"}, order)
}

type motion int

func (motion) Droppable() {}

func TestPostKeepsStateEventsWhenFull(t *testing.T) {
	e := NewEngine(WithEventQueueSize(1)).(*engine)
	var got []any
	e.SetEventHandler(func(ev any) { got = append(got, ev) })

	assert.True(t, e.Post("down"))
	assert.False(t, e.Post(motion(1)), "motion is dropped when the queue is full")
	assert.True(t, e.Post("loaded"))
	assert.True(t, e.Post("up"))

	e.tick(1.0 / 60)
	assert.Equal(t, []any{"down", "loaded", "up"}, got)

	got = nil
	assert.True(t, e.Post(motion(2)))
	e.tick(1.0 / 60)
	assert.Equal(t, []any{motion(2)}, got)
}

func TestRunOnMainRunsQueuedTasks(t *testing.T) {
	e := NewEngine().(*engine)
	ran := 0
	e.RunOnMain(func() { ran++ })
	e.RunOnMain(func() { ran++ })
	e.drainMain()
	assert.Equal(t, 2, ran)
	e.drainMain()
	assert.Equal(t, 2, ran)
}

func TestActiveScenesInKeyOrder(t *testing.T) {
	ui := scene.NewScene("ui", camera.NewCamera(), scene.WithActive(true))
	world := scene.NewScene("world", camera.NewCamera(), scene.WithActive(true))
	hidden := scene.NewScene("hidden", camera.NewCamera())

	e := NewEngine(WithScene(10, ui), WithScene(0, world)).(*engine)
	e.AddScene(5, hidden)

	active := e.activeScenes()
	require.Len(t, active, 2)
	assert.Equal(t, "world", active[0].Name())
	assert.Equal(t, "ui", active[1].Name())

	e.RemoveScene(10)
	assert.Nil(t, e.Scene(10))
	assert.Len(t, e.Scenes(), 2)
}

func TestResizeUpdatesCameraAspect(t *testing.T) {
	s := scene.NewScene("world", camera.NewCamera())
	e := NewEngine(WithScene(0, s)).(*engine)
	var sizes [][2]int
	e.SetResizeCallback(func(w, h int) { sizes = append(sizes, [2]int{w, h}) })

	e.resize(800, 400)
	assert.InDelta(t, 2, s.Camera().Aspect(), 1e-6)

	e.resize(0, 0)
	assert.InDelta(t, 2, s.Camera().Aspect(), 1e-6, "minimized windows keep the last aspect")
	assert.Equal(t, [][2]int{{800, 400}}, sizes)
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(240))
	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 3 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after Quit")
	}
	assert.GreaterOrEqual(t, ticks, 3)
	e.Quit()
}
