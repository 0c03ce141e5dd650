package renderer

import "errors"

// ErrInvalidArgument is returned for inputs outside a function's documented domain.
var ErrInvalidArgument = errors.New("invalid argument")

// Movement is a discrete movement request fed to Camera.ApplyMovement.
type Movement int

const (
	Forward Movement = iota
	Backward
	StrafeLeft
	StrafeRight
	Sprint
	Jump
)

var movementNames = [...]string{
	Forward:     "forward",
	Backward:    "backward",
	StrafeLeft:  "strafe-left",
	StrafeRight: "strafe-right",
	Sprint:      "sprint",
	Jump:        "jump",
}

func (m Movement) String() string {
	if m < 0 || int(m) >= len(movementNames) {
		return "unknown"
	}
	return movementNames[m]
}

// Default camera values
const (
	DefaultYaw   float32 = -90.0
	DefaultPitch float32 = 0.0
)

// MotionConfig holds the per-session motion parameters of a Camera.
type MotionConfig struct {
	Speed            float32 `json:"speed"`
	SprintMultiplier float32 `json:"sprint_multiplier"`
	Sensitivity      float32 `json:"sensitivity"`
	MinZoom          float32 `json:"min_zoom"`
	MaxZoom          float32 `json:"max_zoom"`
	Gravity          float32 `json:"gravity"`
	JumpImpulse      float32 `json:"jump_impulse"`
	GroundHeight     float32 `json:"ground_height"`
	PitchLimit       float32 `json:"pitch_limit"`
}

func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		Speed:            5.0,
		SprintMultiplier: 1.1,
		Sensitivity:      0.01,
		MinZoom:          1.0,
		MaxZoom:          80.0,
		Gravity:          -9.8,
		JumpImpulse:      4.5,
		GroundHeight:     0.0,
		PitchLimit:       89.0,
	}
}

// JumpApex is the height above ground a jump reaches in continuous time.
func (m MotionConfig) JumpApex() float32 {
	g := m.Gravity
	if g < 0 {
		g = -g
	}
	if g == 0 {
		return 0
	}
	return m.JumpImpulse * m.JumpImpulse / (2 * g)
}
