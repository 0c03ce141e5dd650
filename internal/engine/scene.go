package engine

import (
	"math"

	"GopherView/internal/config"
	"GopherView/internal/renderer"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Pillar is a box standing on the floor.
type Pillar struct {
	Position mgl32.Vec3 // center of the base, on the floor
	Width    float32
	Height   float32
	Color    mgl32.Vec3
}

func (p Pillar) ModelMatrix() mgl32.Mat4 {
	center := p.Center()
	return mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.Scale3D(p.Width, p.Height, p.Width))
}

func (p Pillar) Center() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, p.Height / 2, 0})
}

// BoundingRadius is the radius of the sphere enclosing the pillar.
func (p Pillar) BoundingRadius() float32 {
	return float32(math.Sqrt(float64(2*p.Width*p.Width+p.Height*p.Height))) / 2
}

const minPillarHeight = 0.5

var (
	lowColor  = mgl32.Vec3{0.35, 0.55, 0.30}
	highColor = mgl32.Vec3{0.80, 0.78, 0.72}
)

// GenerateScene scatters pillars over a square grid centered on the origin,
// sizing them from Perlin noise. The cells around the origin stay clear so the
// viewer does not start inside a pillar. The same seed always yields the same scene.
func GenerateScene(cfg config.SceneConfig, floorY float32) []Pillar {
	if cfg.GridSize <= 0 {
		return nil
	}

	noise := perlin.NewPerlin(2, 2, 3, cfg.Seed)
	half := float32(cfg.GridSize-1) / 2
	width := cfg.Spacing * 0.6

	pillars := make([]Pillar, 0, cfg.GridSize*cfg.GridSize)
	for i := 0; i < cfg.GridSize; i++ {
		for j := 0; j < cfg.GridSize; j++ {
			x := (float32(i) - half) * cfg.Spacing
			z := (float32(j) - half) * cfg.Spacing
			if mgl32.Vec2{x, z}.Len() < 2*cfg.Spacing {
				continue
			}

			n := noise.Noise2D(float64(i)/7.3, float64(j)/7.3)
			t := mgl32.Clamp(float32((n+1)/2), 0, 1)
			height := t * cfg.MaxHeight
			if height < minPillarHeight {
				continue
			}

			pillars = append(pillars, Pillar{
				Position: mgl32.Vec3{x, floorY, z},
				Width:    width,
				Height:   height,
				Color:    lowColor.Mul(1 - t).Add(highColor.Mul(t)),
			})
		}
	}
	return pillars
}

// Floor is a thin slab whose top face lies at floorY.
func Floor(cfg config.SceneConfig, floorY float32) Pillar {
	extent := float32(cfg.GridSize+4) * cfg.Spacing
	return Pillar{
		Position: mgl32.Vec3{0, floorY - 0.1, 0},
		Width:    extent,
		Height:   0.1,
		Color:    mgl32.Vec3{0.25, 0.28, 0.25},
	}
}

// Pick returns the index of the nearest pillar whose bounding sphere the ray
// hits within maxDistance, or -1.
func Pick(pillars []Pillar, ray renderer.Ray, maxDistance float32) int {
	picked := -1
	nearest := maxDistance
	for i, p := range pillars {
		if dist, hit := ray.IntersectSphere(p.Center(), p.BoundingRadius()); hit && dist < nearest {
			picked, nearest = i, dist
		}
	}
	return picked
}
