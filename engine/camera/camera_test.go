package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/schedule"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func defaultCamera() Camera {
	return NewCamera(
		WithPose([3]float32{1, 1.5, 3}, [3]float32{0, math32.Pi / 2, 0}),
		WithViewport(1600, 900),
	)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, 75*math32.Pi/180, c.Fov(), tol)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	require.NotNil(t, c.BindGroupProvider())
}

func TestCameraPerspectiveOptions(t *testing.T) {
	c := NewCamera(WithPerspective(90, 0.5, 50), WithAspect(2))
	assert.InDelta(t, math32.Pi/2, c.Fov(), tol)
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(50), c.Far())
	assert.Equal(t, float32(2), c.Aspect())

	bad := NewCamera(WithPerspective(180, 5, 1), WithAspect(-1), WithViewport(0, 10))
	assert.InDelta(t, 75*math32.Pi/180, bad.Fov(), tol)
	assert.Equal(t, float32(0.1), bad.Near())
	assert.Equal(t, float32(1), bad.Aspect())
}

func TestCameraPickRayFollowsYaw(t *testing.T) {
	c := defaultCamera()
	r := c.PickRay(0, 0)

	// Yaw π/2 turns the view direction from -Z to -X.
	assert.InDelta(t, -1, r.Direction[0], tol)
	assert.InDelta(t, 0, r.Direction[1], tol)
	assert.InDelta(t, 0, r.Direction[2], tol)
	assert.InDelta(t, 1.5, r.Origin[1], tol)
}

func TestCameraViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := defaultCamera()
	view := c.ViewMatrix()
	eye := common.TransformPoint(view[:], c.Position())
	for i := range eye {
		assert.InDelta(t, 0, eye[i], tol)
	}
}

func TestCameraUniformCarriesPosition(t *testing.T) {
	c := defaultCamera()
	u := c.Uniform()
	assert.Equal(t, [3]float32{1, 1.5, 3}, u.Eye)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Len(t, u.Marshal(), 80)
}

func TestCameraAddYaw(t *testing.T) {
	c := defaultCamera()
	c.AddYaw(0.25)
	assert.InDelta(t, math32.Pi/2+0.25, c.Rotation()[1], tol)
}

func newController(options ...CameraControllerOption) (CameraController, schedule.Scheduler) {
	sched := schedule.NewScheduler()
	return NewCameraController(defaultCamera(), sched, options...), sched
}

func TestDragVelocityFromPointerDelta(t *testing.T) {
	cc, _ := newController()

	cc.MouseDown(100)
	assert.True(t, cc.Dragging())
	assert.Zero(t, cc.Velocity())

	cc.MouseMove(150)
	assert.InDelta(t, 0.05, cc.Velocity(), 1e-6)

	// Velocity reflects only the latest delta.
	cc.MouseMove(140)
	assert.InDelta(t, -0.01, cc.Velocity(), 1e-6)
}

func TestReleaseHoldsVelocityUntilInertiaDelay(t *testing.T) {
	cc, sched := newController()
	cc.MouseDown(100)
	cc.MouseMove(150)
	cc.MouseUp()
	assert.False(t, cc.Dragging())

	sched.Advance(599 * time.Millisecond)
	assert.InDelta(t, 0.05, cc.Velocity(), 1e-6)

	sched.Advance(time.Millisecond)
	assert.Zero(t, cc.Velocity())

	// No further drift once the velocity is zero.
	before := cc.Camera().Rotation()[1]
	for range 10 {
		cc.Update(time.Second / 60)
	}
	assert.Equal(t, before, cc.Camera().Rotation()[1])
}

func TestUpdateAppliesVelocityPerTick(t *testing.T) {
	cc, _ := newController()
	start := cc.Camera().Rotation()[1]

	cc.MouseDown(0)
	cc.MouseMove(100)
	cc.Update(time.Second / 60)
	cc.Update(time.Second / 60)

	assert.InDelta(t, start+0.2, cc.Camera().Rotation()[1], tol)
}

func TestMoveWithoutPressIsNoop(t *testing.T) {
	cc, _ := newController()
	cc.MouseMove(500)
	assert.Zero(t, cc.Velocity())
}

func TestPressCancelsPendingDecay(t *testing.T) {
	cc, sched := newController()
	cc.MouseDown(0)
	cc.MouseMove(10)
	cc.MouseUp()

	sched.Advance(300 * time.Millisecond)
	cc.MouseDown(0)
	cc.MouseMove(20)
	assert.Zero(t, sched.Pending())

	sched.Advance(time.Second)
	assert.InDelta(t, 0.02, cc.Velocity(), 1e-6, "an old decay must not stop a new drag")
}

func TestClosedMouseGateIgnoresMouseButNotTouch(t *testing.T) {
	cc, _ := newController()
	cc.SetMouseEnabled(false)

	cc.MouseDown(100)
	cc.MouseMove(200)
	assert.False(t, cc.Dragging())
	assert.Zero(t, cc.Velocity())

	cc.TouchStart(100)
	cc.TouchMove(130)
	assert.InDelta(t, 0.03, cc.Velocity(), 1e-6)
	assert.True(t, cc.TouchEnabled())
}

func TestClosingMouseGateMidDragReleases(t *testing.T) {
	cc, sched := newController()
	cc.MouseDown(100)
	cc.MouseMove(150)

	cc.SetMouseEnabled(false)
	assert.False(t, cc.Dragging())
	assert.Equal(t, 1, sched.Pending())

	cc.MouseUp()
	cc.SetMouseEnabled(true)
	for range 120 {
		sched.Advance(time.Second / 60)
		cc.Update(time.Second / 60)
	}
	assert.Zero(t, cc.Velocity())

	before := cc.Camera().Rotation()[1]
	cc.Update(time.Second / 60)
	assert.Equal(t, before, cc.Camera().Rotation()[1])
}

func TestMouseAndTouchReleaseOnlyTheirOwnDrag(t *testing.T) {
	cc, sched := newController()
	cc.TouchStart(0)
	cc.TouchMove(40)
	cc.MouseUp()
	assert.True(t, cc.Dragging(), "mouse up does not end a touch drag")

	cc.SetMouseEnabled(false)
	assert.True(t, cc.Dragging())
	cc.TouchEnd()
	assert.False(t, cc.Dragging())

	sched.Advance(600 * time.Millisecond)
	assert.Zero(t, cc.Velocity())
}

func TestClosedTouchGate(t *testing.T) {
	cc, sched := newController(WithTouchEnabled(false))
	cc.TouchStart(0)
	cc.TouchMove(50)
	cc.TouchEnd()
	assert.Zero(t, cc.Velocity())
	assert.Zero(t, sched.Pending())
}

func TestSpringModeDecaysThenZeroes(t *testing.T) {
	cc, sched := newController(WithInertiaMode(InertiaSpring))
	cc.MouseDown(100)
	cc.MouseMove(150)
	cc.MouseUp()

	tick := time.Second / 60
	for range 10 {
		cc.Update(tick)
		sched.Advance(tick)
	}
	v := cc.Velocity()
	assert.Greater(t, v, float32(0))
	assert.Less(t, v, float32(0.05))

	sched.Advance(time.Second)
	assert.Zero(t, cc.Velocity())
}

func TestParseInertiaMode(t *testing.T) {
	m, err := ParseInertiaMode("spring")
	require.NoError(t, err)
	assert.Equal(t, InertiaSpring, m)
	assert.Equal(t, "spring", m.String())

	m, err = ParseInertiaMode("")
	require.NoError(t, err)
	assert.Equal(t, InertiaHold, m)

	_, err = ParseInertiaMode("glide")
	assert.Error(t, err)
}
