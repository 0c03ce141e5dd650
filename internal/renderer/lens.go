package renderer

import "github.com/go-gl/mathgl/mgl32"

// Lens turns a camera's zoom into a perspective projection.
type Lens struct {
	Near        float32 `json:"near"`
	Far         float32 `json:"far"`
	AspectRatio float32 `json:"-"`
}

func NewLens(width, height int32, near, far float32) Lens {
	l := Lens{Near: near, Far: far}
	l.SetViewport(width, height)
	return l
}

// SetViewport updates the aspect ratio; zero-sized (minimized) windows keep the old one.
func (l *Lens) SetViewport(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	l.AspectRatio = float32(width) / float32(height)
}

// Projection builds the projection for a vertical field of view in degrees.
func (l Lens) Projection(fovDegrees float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), l.AspectRatio, l.Near, l.Far)
}

// Plane is the set of points p with Normal.Dot(p) + Distance == 0. Points on
// the side Normal faces have positive distance.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

func planeFromRow(row mgl32.Vec4) Plane {
	plane := Plane{Normal: row.Vec3(), Distance: row.W()}
	if length := plane.Normal.Len(); length > 0 {
		plane.Normal = plane.Normal.Mul(1 / length)
		plane.Distance /= length
	}
	return plane
}

const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum holds the six clip planes, normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// CalculateFrustum extracts the clip planes of a view-projection matrix. A
// clip-space point is inside when -w <= x,y,z <= w, so each plane is the
// fourth row plus or minus one of the others.
func CalculateFrustum(vp mgl32.Mat4) Frustum {
	w := vp.Row(3)

	var frustum Frustum
	for axis := 0; axis < 3; axis++ {
		row := vp.Row(axis)
		frustum.Planes[2*axis] = planeFromRow(w.Add(row))
		frustum.Planes[2*axis+1] = planeFromRow(w.Sub(row))
	}
	return frustum
}

func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// IntersectsSphere is false only when the sphere lies entirely behind one plane.
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
