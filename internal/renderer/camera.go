// camera.go
package renderer

import (
	"fmt"
	"math"

	"github.com/xlab/linmath"

	"github.com/go-gl/mathgl/mgl32"
)

// MotionState is the state of the vertical-motion state machine.
type MotionState int

const (
	Grounded MotionState = iota
	Airborne
)

func (s MotionState) String() string {
	if s == Airborne {
		return "airborne"
	}
	return "grounded"
}

// Camera is a first-person viewpoint. It owns its pose and the derived basis
// vectors; the basis is recomputed whenever yaw or pitch change and is never
// written from outside.
type Camera struct {
	// HOT DATA - Accessed every frame for view calculations
	Position mgl32.Vec3 // Camera position in world space
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	yaw      float32 // degrees
	pitch    float32 // degrees, within [-PitchLimit, PitchLimit] when constrained
	zoom     float32 // vertical field of view in degrees

	// Vertical motion
	verticalVelocity float32
	airborne         bool

	// COLD DATA - fixed at construction
	worldUp mgl32.Vec3
	motion  MotionConfig
}

// NewCamera places a camera at position looking along yaw/pitch (degrees).
// worldUp is kept for the lifetime of the camera. A camera placed above the
// ground starts airborne and falls; one placed below is lifted onto it.
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32, motion MotionConfig) *Camera {
	camera := Camera{
		Position: position,
		worldUp:  worldUp,
		yaw:      yaw,
		pitch:    pitch,
		zoom:     motion.MaxZoom,
		motion:   motion,
	}
	switch {
	case position[1] > motion.GroundHeight:
		camera.airborne = true
	case position[1] < motion.GroundHeight:
		camera.Position[1] = motion.GroundHeight
	}
	camera.updateCameraVectors()
	return &camera
}

// NewDefaultCamera returns a camera at the origin facing -Z with Y up.
func NewDefaultCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch, DefaultMotionConfig())
}

func (c *Camera) Front() mgl32.Vec3 { return c.front }
func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Up() mgl32.Vec3 { return c.up }
func (c *Camera) WorldUp() mgl32.Vec3 { return c.worldUp }
func (c *Camera) Yaw() float32 { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }
func (c *Camera) Zoom() float32 { return c.zoom }
func (c *Camera) VerticalVelocity() float32 { return c.verticalVelocity }
func (c *Camera) IsAirborne() bool { return c.airborne }
func (c *Camera) Motion() MotionConfig { return c.motion }

func (c *Camera) State() MotionState {
	if c.airborne {
		return Airborne
	}
	return Grounded
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// ViewMatrixLinmath returns the view matrix as a linmath.Mat4x4
// for consumers built on github.com/xlab/linmath.
func (c *Camera) ViewMatrixLinmath() linmath.Mat4x4 {
	return convertMGL32Mat4ToLinMathMat4x4(c.GetViewMatrix())
}

// mgl32 is column-major: m[col*4+row]. linmath indexes [col][row] as well.
func convertMGL32Mat4ToLinMathMat4x4(m mgl32.Mat4) linmath.Mat4x4 {
	var out linmath.Mat4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i*4+j]
		}
	}
	return out
}

// ApplyMovement moves the camera one step in direction over dt seconds.
// Horizontal moves never change altitude; Jump only starts a jump from the ground.
func (c *Camera) ApplyMovement(direction Movement, deltaTime float32) error {
	velocity := c.motion.Speed * deltaTime
	ground := c.groundFront()

	switch direction {
	case Forward:
		c.Position = c.Position.Add(ground.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(ground.Mul(velocity))
	case StrafeLeft:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case StrafeRight:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	case Sprint:
		c.Position = c.Position.Add(ground.Mul(velocity * c.motion.SprintMultiplier))
	case Jump:
		if !c.airborne {
			c.airborne = true
			c.verticalVelocity = c.motion.JumpImpulse
		}
	default:
		return fmt.Errorf("%w: unknown movement %d", ErrInvalidArgument, int(direction))
	}
	return nil
}

// AdvancePhysics integrates one frame of gravity while airborne
// (semi-implicit Euler) and lands the camera on the ground plane.
func (c *Camera) AdvancePhysics(deltaTime float32) {
	if !c.airborne {
		return
	}

	c.verticalVelocity += c.motion.Gravity * deltaTime
	c.Position[1] += c.verticalVelocity * deltaTime

	if c.Position[1] <= c.motion.GroundHeight {
		c.Position[1] = c.motion.GroundHeight
		c.verticalVelocity = 0
		c.airborne = false
	}
}

// ApplyLook turns the camera by cursor offsets already expressed in screen units.
func (c *Camera) ApplyLook(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.motion.Sensitivity
	yoffset *= c.motion.Sensitivity

	c.yaw += xoffset
	c.pitch += yoffset

	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, -c.motion.PitchLimit, c.motion.PitchLimit)
	}
	c.updateCameraVectors()
}

// ApplyZoom narrows the field of view for positive offsets. The result stays
// within the configured zoom range.
func (c *Camera) ApplyZoom(yoffset float32) {
	c.zoom = mgl32.Clamp(c.zoom-yoffset, c.motion.MinZoom, c.motion.MaxZoom)
}

// groundFront is front with its vertical component removed. Looking straight
// up or down leaves nothing to normalize, so the yaw heading is used instead.
func (c *Camera) groundFront() mgl32.Vec3 {
	flat := mgl32.Vec3{c.front.X(), 0, c.front.Z()}
	if flat.Len() < 1e-6 {
		yawRad := float64(mgl32.DegToRad(c.yaw))
		return mgl32.Vec3{float32(math.Cos(yawRad)), 0, float32(math.Sin(yawRad))}
	}
	return flat.Normalize()
}

func (c *Camera) updateCameraVectors() {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	pitchRad := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
