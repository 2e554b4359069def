package common

import (
	"github.com/chewxy/math32"
)

// rayEpsilon is the determinant threshold below which a ray is considered parallel to a triangle.
const rayEpsilon = 1e-7

// Ray is a half-line used for pick tests.
type Ray struct {
	// Origin is the starting point of the ray.
	Origin [3]float32
	// Direction is the ray direction. It is not required to be unit length, hit distances are
	// expressed in multiples of Direction.
	Direction [3]float32
}

// At returns the point Origin + Direction*t.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + r.Direction[0]*t,
		r.Origin[1] + r.Direction[1]*t,
		r.Origin[2] + r.Direction[2]*t,
	}
}

// Transform returns the ray expressed in the space described by m.
// Passing an inverse world matrix moves a world-space ray into an object's local space,
// which keeps hit distances comparable because the direction is not renormalized.
//
// Parameters:
//   - m: the 4x4 column-major matrix to apply
//
// Returns:
//   - Ray: the transformed ray
func (r Ray) Transform(m []float32) Ray {
	return Ray{
		Origin:    TransformPoint(m, r.Origin),
		Direction: TransformDirection(m, r.Direction),
	}
}

// PointerToNDC converts a pointer position in window pixels to normalized device coordinates,
// with +Y up and both axes in [-1, 1].
//
// Parameters:
//   - x, y: pointer position in pixels, origin at the top-left corner
//   - width, height: viewport size in pixels
//
// Returns:
//   - float32: NDC x
//   - float32: NDC y
func PointerToNDC(x, y float32, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return (x/float32(width))*2 - 1, -(y/float32(height))*2 + 1
}

// RayFromNDC builds a world-space pick ray through the given NDC position by unprojecting the near and
// far planes with the inverse view-projection matrix. Depth is in the WebGPU [0, 1] range.
//
// Parameters:
//   - invViewProj: the inverse of projection * view (column-major)
//   - ndcX, ndcY: the normalized device coordinates of the pointer
//
// Returns:
//   - Ray: a ray starting at the near plane with a unit-length direction
func RayFromNDC(invViewProj []float32, ndcX, ndcY float32) Ray {
	near := TransformPoint(invViewProj, [3]float32{ndcX, ndcY, 0})
	far := TransformPoint(invViewProj, [3]float32{ndcX, ndcY, 1})
	return Ray{
		Origin:    near,
		Direction: Normalize3(Sub3(far, near)),
	}
}

// IntersectAABB performs the slab test against an axis-aligned box.
//
// Parameters:
//   - bmin: minimum corner of the box
//   - bmax: maximum corner of the box
//
// Returns:
//   - float32: the entry distance along the ray (0 when the origin is inside the box)
//   - bool: true if the ray hits the box in front of its origin
func (r Ray) IntersectAABB(bmin, bmax [3]float32) (float32, bool) {
	tMin := float32(0)
	tMax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(r.Direction[i]) < rayEpsilon {
			if r.Origin[i] < bmin[i] || r.Origin[i] > bmax[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Direction[i]
		t0 := (bmin[i] - r.Origin[i]) * inv
		t1 := (bmax[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = max(tMin, t0)
		tMax = min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectTriangle runs the Möller-Trumbore test against a triangle. Both faces count as hits.
//
// Parameters:
//   - a, b, c: the triangle corners
//
// Returns:
//   - float32: the hit distance along the ray
//   - bool: true if the ray hits the triangle in front of its origin
func (r Ray) IntersectTriangle(a, b, c [3]float32) (float32, bool) {
	edge1 := Sub3(b, a)
	edge2 := Sub3(c, a)
	p := Cross3(r.Direction, edge2)
	det := Dot3(edge1, p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det

	s := Sub3(r.Origin, a)
	u := Dot3(s, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := Cross3(s, edge1)
	v := Dot3(r.Direction, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := Dot3(edge2, q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
