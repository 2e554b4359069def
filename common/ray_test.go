package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerToNDC(t *testing.T) {
	x, y := PointerToNDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = PointerToNDC(400, 300, 800, 600)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = PointerToNDC(10, 10, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestRayFromNDCCenterLooksDownMinusZ(t *testing.T) {
	var proj, inv [16]float32
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 100)
	require.True(t, Invert4(inv[:], proj[:]))

	r := RayFromNDC(inv[:], 0, 0)
	assertVec3(t, [3]float32{0, 0, -0.1}, r.Origin)
	assertVec3(t, [3]float32{0, 0, -1}, r.Direction)
}

func TestRayIntersectAABB(t *testing.T) {
	r := Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, -1}}

	dist, ok := r.IntersectAABB([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})
	require.True(t, ok)
	assert.InDelta(t, 4, dist, tol)

	_, ok = r.IntersectAABB([3]float32{2, 2, -1}, [3]float32{3, 3, 1})
	assert.False(t, ok)

	behind := Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, 1}}
	_, ok = behind.IntersectAABB([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})
	assert.False(t, ok)

	inside := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{1, 0, 0}}
	dist, ok = inside.IntersectAABB([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})
	require.True(t, ok)
	assert.Zero(t, dist)
}

func TestRayIntersectTriangle(t *testing.T) {
	a := [3]float32{-1, -1, 0}
	b := [3]float32{1, -1, 0}
	c := [3]float32{0, 1, 0}

	front := Ray{Origin: [3]float32{0, 0, 3}, Direction: [3]float32{0, 0, -1}}
	dist, ok := front.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3, dist, tol)

	back := Ray{Origin: [3]float32{0, 0, -3}, Direction: [3]float32{0, 0, 1}}
	_, ok = back.IntersectTriangle(a, b, c)
	assert.True(t, ok, "back faces count as hits")

	miss := Ray{Origin: [3]float32{5, 5, 3}, Direction: [3]float32{0, 0, -1}}
	_, ok = miss.IntersectTriangle(a, b, c)
	assert.False(t, ok)

	parallel := Ray{Origin: [3]float32{0, 0, 1}, Direction: [3]float32{1, 0, 0}}
	_, ok = parallel.IntersectTriangle(a, b, c)
	assert.False(t, ok)
}

func TestRayTransformIntoLocalSpace(t *testing.T) {
	var world, inv [16]float32
	BuildModelMatrix(world[:], [3]float32{10, 0, 0}, [3]float32{}, [3]float32{2, 2, 2})
	require.True(t, Invert4(inv[:], world[:]))

	r := Ray{Origin: [3]float32{10, 0, 10}, Direction: [3]float32{0, 0, -1}}
	local := r.Transform(inv[:])
	assertVec3(t, [3]float32{0, 0, 5}, local.Origin)
	assertVec3(t, [3]float32{0, 0, -0.5}, local.Direction)

	// Hit distances stay in world units because the direction is not renormalized.
	dist, ok := local.IntersectTriangle([3]float32{-1, -1, 0}, [3]float32{1, -1, 0}, [3]float32{0, 1, 0})
	require.True(t, ok)
	assert.InDelta(t, 10, dist, tol)
	assertVec3(t, [3]float32{10, 0, 0}, r.At(dist))
}

func TestFrustumIntersectsAABB(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 100)
	f := ExtractFrustumFromMatrix(proj[:])

	assert.True(t, f.IntersectsAABB([3]float32{-1, -1, -6}, [3]float32{1, 1, -4}))
	assert.False(t, f.IntersectsAABB([3]float32{-1, -1, 4}, [3]float32{1, 1, 6}), "behind the camera")
	assert.False(t, f.IntersectsAABB([3]float32{50, -1, -6}, [3]float32{52, 1, -4}), "far to the right")
}
