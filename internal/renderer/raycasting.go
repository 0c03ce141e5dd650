package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // unit length
}

// LookRay is the ray through the center of the view.
func (c *Camera) LookRay() Ray {
	return Ray{Origin: c.Position, Direction: c.front}
}

// IntersectSphere returns the distance along the ray to the nearest hit in
// front of its origin. An origin inside the sphere hits at the far side.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)

	// Direction is unit length, so the quadratic's a term is 1.
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - c
	if discriminant < 0 {
		return 0, false
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	if t := -b - sqrtDisc; t > 0 {
		return t, true
	}
	if t := -b + sqrtDisc; t > 0 {
		return t, true
	}
	return 0, false
}

// Point returns the position at distance t along the ray.
func (r Ray) Point(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
