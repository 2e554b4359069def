package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVec3(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v vs %v", i, want, got)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestBuildModelMatrixTranslationOnly(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{1, 2, 3}, [3]float32{}, [3]float32{1, 1, 1})

	assertVec3(t, [3]float32{1, 2, 3}, TransformPoint(m[:], [3]float32{}))
	assertVec3(t, [3]float32{2, 2, 3}, TransformPoint(m[:], [3]float32{1, 0, 0}))
}

func TestBuildModelMatrixYaw(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 1, 1})

	// +90 degrees about Y turns -Z (forward) into -X.
	assertVec3(t, [3]float32{-1, 0, 0}, TransformDirection(m[:], [3]float32{0, 0, -1}))
}

func TestBuildModelMatrixOrderIsXYZ(t *testing.T) {
	rot := [3]float32{0.3, -1.5, 0.4}

	var rx, ry, rz, xy, want, got [16]float32
	BuildModelMatrix(rx[:], [3]float32{}, [3]float32{rot[0], 0, 0}, [3]float32{1, 1, 1})
	BuildModelMatrix(ry[:], [3]float32{}, [3]float32{0, rot[1], 0}, [3]float32{1, 1, 1})
	BuildModelMatrix(rz[:], [3]float32{}, [3]float32{0, 0, rot[2]}, [3]float32{1, 1, 1})
	Mul4(xy[:], rx[:], ry[:])
	Mul4(want[:], xy[:], rz[:])

	BuildModelMatrix(got[:], [3]float32{}, rot, [3]float32{1, 1, 1})
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "element %d", i)
	}
}

func TestComposeTRSMatchesEuler(t *testing.T) {
	// Quaternion for 90 degrees about Y.
	s := math32.Sin(math32.Pi / 4)
	c := math32.Cos(math32.Pi / 4)

	var q, e [16]float32
	ComposeTRS(q[:], [3]float32{1, 0, 0}, [4]float32{0, s, 0, c}, [3]float32{2, 2, 2})
	BuildModelMatrix(e[:], [3]float32{1, 0, 0}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{2, 2, 2})

	for i := range q {
		assert.InDelta(t, e[i], q[i], tol, "element %d", i)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out, id [16]float32
	BuildModelMatrix(m[:], [3]float32{-1.8, 1.5, -0.05}, [3]float32{0, -1.5, 0.4}, [3]float32{1, 2, 3})
	require.True(t, Invert4(inv[:], m[:]))

	Mul4(out[:], m[:], inv[:])
	Identity(id[:])
	for i := range id {
		assert.InDelta(t, id[i], out[i], tol, "element %d", i)
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[0] = 42
	assert.False(t, Invert4(out[:], zero[:]))
	assert.Equal(t, float32(42), out[0], "output must be untouched on failure")
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], math32.Pi/2, 1, 0.1, 1000)

	nearPoint := TransformPoint(p[:], [3]float32{0, 0, -0.1})
	farPoint := TransformPoint(p[:], [3]float32{0, 0, -1000})
	assert.InDelta(t, 0, nearPoint[2], tol)
	assert.InDelta(t, 1, farPoint[2], 1e-3)
}

func TestTransformAABB(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{10, 0, 0}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 1, 1})

	bmin, bmax := TransformAABB(m[:], [3]float32{0, 0, 0}, [3]float32{2, 1, 1})
	assertVec3(t, [3]float32{10, 0, -2}, bmin)
	assertVec3(t, [3]float32{11, 1, 0}, bmax)
}

func TestSlerpQuatEndpoints(t *testing.T) {
	a := [4]float32{0, 0, 0, 1}
	s := math32.Sin(math32.Pi / 4)
	b := [4]float32{0, s, 0, math32.Cos(math32.Pi / 4)}

	start := SlerpQuat(a, b, 0)
	end := SlerpQuat(a, b, 1)
	for i := range a {
		assert.InDelta(t, a[i], start[i], tol)
		assert.InDelta(t, b[i], end[i], tol)
	}

	mid := SlerpQuat(a, b, 0.5)
	want := math32.Sin(math32.Pi / 8)
	assert.InDelta(t, want, mid[1], tol)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0.0, 1.0))
	assert.Equal(t, 1.0, Clamp(2.0, 0.0, 1.0))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))

	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
