package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vecTolerance = 1e-5

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera()

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Yaw() != -90 || cam.Pitch() != 0 {
		t.Errorf("Expected yaw -90 pitch 0, got %f %f", cam.Yaw(), cam.Pitch())
	}

	if cam.State() != Grounded {
		t.Errorf("Camera should start grounded, got %v", cam.State())
	}

	if cam.Zoom() != 80 {
		t.Errorf("Expected initial zoom 80, got %f", cam.Zoom())
	}

	// -90 yaw looks down -Z.
	assert.InDelta(t, 0, cam.Front().X(), vecTolerance)
	assert.InDelta(t, 0, cam.Front().Y(), vecTolerance)
	assert.InDelta(t, -1, cam.Front().Z(), vecTolerance)
	assert.InDelta(t, 1, cam.Right().X(), vecTolerance)
	assert.InDelta(t, 1, cam.Up().Y(), vecTolerance)
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{1, 2, 5}, mgl32.Vec3{0, 1, 0}, 30, 20, DefaultMotionConfig())

	view := cam.GetViewMatrix()
	expected := mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Front()), cam.Up())

	if view != expected {
		t.Errorf("View matrix should equal the look-at transform\n%v\n%v", view, expected)
	}

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The eye maps to the origin of view space.
	eye := view.Mul4x1(cam.Position.Vec4(1))
	assert.InDelta(t, 0, eye.X(), 1e-4)
	assert.InDelta(t, 0, eye.Y(), 1e-4)
	assert.InDelta(t, 0, eye.Z(), 1e-4)

	// A point straight ahead lies on -Z in view space.
	ahead := view.Mul4x1(cam.Position.Add(cam.Front().Mul(3)).Vec4(1))
	assert.InDelta(t, -3, ahead.Z(), 1e-4)
}

func TestCameraViewMatrixLinmath(t *testing.T) {
	cam := NewDefaultCamera()
	cam.Position = mgl32.Vec3{3, 1, -2}

	view := cam.GetViewMatrix()
	lm := cam.ViewMatrixLinmath()

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if lm[col][row] != view.At(row, col) {
				t.Fatalf("Mismatch at col %d row %d: %f vs %f", col, row, lm[col][row], view.At(row, col))
			}
		}
	}
}

// assertVecNear compares by absolute distance; mgl32's relative epsilon fails
// for components that cross zero.
func assertVecNear(t *testing.T, expected, actual mgl32.Vec3, delta float64, msg string) {
	t.Helper()
	assert.InDelta(t, 0, actual.Sub(expected).Len(), delta, "%s: expected %v, got %v", msg, expected, actual)
}

func assertBasis(t *testing.T, cam *Camera) {
	t.Helper()
	assert.InDelta(t, 1, cam.Front().Len(), vecTolerance, "front should be unit length")
	assert.InDelta(t, 1, cam.Right().Len(), vecTolerance, "right should be unit length")
	assert.InDelta(t, 1, cam.Up().Len(), vecTolerance, "up should be unit length")

	expectedRight := cam.Front().Cross(cam.WorldUp()).Normalize()
	assertVecNear(t, expectedRight, cam.Right(), vecTolerance, "right = normalize(front x worldUp)")

	expectedUp := cam.Right().Cross(cam.Front()).Normalize()
	assertVecNear(t, expectedUp, cam.Up(), vecTolerance, "up = normalize(right x front)")
}

func TestCameraBasisStaysOrthonormal(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, 12, -33, DefaultMotionConfig())
	assertBasis(t, cam)

	offsets := [][2]float32{{100, 50}, {-2500, 800}, {7000, -12000}, {3, 3}, {-90000, 0}}
	for _, o := range offsets {
		cam.ApplyLook(o[0], o[1], true)
		assertBasis(t, cam)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewDefaultCamera()
	limit := cam.Motion().PitchLimit

	// Sensitivity 0.01: 10000 units is 100 degrees.
	cam.ApplyLook(0, 10000, true)
	if cam.Pitch() != limit {
		t.Fatalf("Expected pitch clamped to %f, got %f", limit, cam.Pitch())
	}

	cam.ApplyLook(0, 500, true)
	if cam.Pitch() != limit {
		t.Errorf("Further upward look should not raise pitch past %f, got %f", limit, cam.Pitch())
	}

	cam.ApplyLook(0, -50000, true)
	if cam.Pitch() != -limit {
		t.Errorf("Expected pitch clamped to %f, got %f", -limit, cam.Pitch())
	}

	for i := 0; i < 200; i++ {
		cam.ApplyLook(float32(i*37%101-50), float32(i*53%211-105)*10, true)
		if cam.Pitch() < -limit || cam.Pitch() > limit {
			t.Fatalf("Pitch escaped clamp: %f", cam.Pitch())
		}
	}
}

func TestCameraLookUnconstrained(t *testing.T) {
	cam := NewDefaultCamera()

	cam.ApplyLook(0, 10000, false)
	assert.InDelta(t, 100, cam.Pitch(), 1e-3)
}

func TestCameraYawWraps(t *testing.T) {
	cam := NewDefaultCamera()
	start := cam.Front()

	// A full turn returns to the same heading.
	cam.ApplyLook(36000, 0, true)
	assert.InDelta(t, 270, cam.Yaw(), 1e-3)
	assertVecNear(t, start, cam.Front(), 1e-4, "a full turn keeps the heading")
}

func TestCameraForwardIgnoresPitch(t *testing.T) {
	cam := NewDefaultCamera()
	cam.ApplyLook(0, 4500, true) // look 45 degrees up

	require.NoError(t, cam.ApplyMovement(Forward, 1))

	assert.InDelta(t, 0, cam.Position.Y(), vecTolerance, "forward must not change altitude")
	assert.InDelta(t, -5, cam.Position.Z(), 1e-4)
	assert.InDelta(t, 0, cam.Position.X(), 1e-4)

	require.NoError(t, cam.ApplyMovement(Backward, 1))
	assertVecNear(t, mgl32.Vec3{}, cam.Position, 1e-4, "backward undoes forward")
}

func TestCameraStrafe(t *testing.T) {
	cam := NewDefaultCamera()

	require.NoError(t, cam.ApplyMovement(StrafeRight, 0.5))
	assert.InDelta(t, 2.5, cam.Position.X(), 1e-4)

	require.NoError(t, cam.ApplyMovement(StrafeLeft, 1))
	assert.InDelta(t, -2.5, cam.Position.X(), 1e-4)
	assert.InDelta(t, 0, cam.Position.Y(), vecTolerance)
}

func TestCameraSprintStacksWithForward(t *testing.T) {
	cam := NewDefaultCamera()

	require.NoError(t, cam.ApplyMovement(Forward, 1))
	require.NoError(t, cam.ApplyMovement(Sprint, 1))

	// 5 from forward plus 5*1.1 from sprint.
	assert.InDelta(t, -10.5, cam.Position.Z(), 1e-4)
}

func TestCameraGroundFrontFallback(t *testing.T) {
	cam := NewDefaultCamera()
	cam.pitch = 90
	cam.updateCameraVectors()

	require.NoError(t, cam.ApplyMovement(Forward, 1))
	for i := 0; i < 3; i++ {
		if math.IsNaN(float64(cam.Position[i])) {
			t.Fatalf("Position became NaN: %v", cam.Position)
		}
	}
	assert.InDelta(t, 0, cam.Position.Y(), vecTolerance)
	assert.InDelta(t, 5, cam.Position.Len(), 1e-3)
}

func TestCameraInvalidMovement(t *testing.T) {
	cam := NewDefaultCamera()
	before := cam.Position

	err := cam.ApplyMovement(Movement(42), 1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument, got %v", err)
	}
	if cam.Position != before {
		t.Error("Invalid movement must not move the camera")
	}

	assert.ErrorIs(t, cam.ApplyMovement(Movement(-1), 1), ErrInvalidArgument)
}

func TestCameraGroundLock(t *testing.T) {
	cam := NewDefaultCamera()
	cam.Position = mgl32.Vec3{4, 0, 4}

	for i := 0; i < 100; i++ {
		cam.AdvancePhysics(0.016)
	}

	if cam.Position.Y() != 0 || cam.VerticalVelocity() != 0 || cam.IsAirborne() {
		t.Errorf("Grounded physics should be a no-op, got y=%f v=%f airborne=%v",
			cam.Position.Y(), cam.VerticalVelocity(), cam.IsAirborne())
	}
}

func TestCameraJumpRoundTrip(t *testing.T) {
	cam := NewDefaultCamera()
	const dt = 0.001

	require.NoError(t, cam.ApplyMovement(Jump, dt))
	require.Equal(t, Airborne, cam.State())
	require.Equal(t, float32(4.5), cam.VerticalVelocity())

	var peak float32
	steps := 0
	for cam.IsAirborne() {
		cam.AdvancePhysics(dt)
		if cam.Position.Y() > peak {
			peak = cam.Position.Y()
		}
		steps++
		require.Less(t, steps, 100000, "jump never landed")
	}

	expected := cam.Motion().JumpApex()
	assert.InDelta(t, 1.033, expected, 1e-3)
	assert.InDelta(t, expected, peak, 0.01)

	assert.Equal(t, float32(0), cam.Position.Y())
	assert.Equal(t, float32(0), cam.VerticalVelocity())
	assert.Equal(t, Grounded, cam.State())

	// Roughly 2*v/g seconds in the air.
	assert.InDelta(t, 2*4.5/9.8, float64(steps)*dt, 0.01)
}

func TestCameraJumpWhileAirborneIsNoop(t *testing.T) {
	cam := NewDefaultCamera()

	require.NoError(t, cam.ApplyMovement(Jump, 0.016))
	for i := 0; i < 10; i++ {
		cam.AdvancePhysics(0.016)
	}
	velocity := cam.VerticalVelocity()
	height := cam.Position.Y()

	require.NoError(t, cam.ApplyMovement(Jump, 0.016))

	assert.True(t, cam.IsAirborne())
	assert.Equal(t, velocity, cam.VerticalVelocity())
	assert.Equal(t, height, cam.Position.Y())
}

func TestCameraLandsOnConfiguredGround(t *testing.T) {
	motion := DefaultMotionConfig()
	motion.GroundHeight = 2
	cam := NewCamera(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch, motion)

	require.NoError(t, cam.ApplyMovement(Jump, 0))
	for i := 0; i < 1000 && cam.IsAirborne(); i++ {
		cam.AdvancePhysics(0.016)
	}

	assert.False(t, cam.IsAirborne())
	assert.Equal(t, float32(2), cam.Position.Y())
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewDefaultCamera()

	cam.ApplyZoom(-10)
	if cam.Zoom() != 80 {
		t.Errorf("Zoom should not exceed 80, got %f", cam.Zoom())
	}

	cam.ApplyZoom(500)
	if cam.Zoom() != 1 {
		t.Errorf("Zoom should not drop below 1, got %f", cam.Zoom())
	}

	cam.ApplyZoom(4.5)
	if cam.Zoom() != 1 {
		t.Errorf("Zoom should stay at 1, got %f", cam.Zoom())
	}

	cam.ApplyZoom(-30)
	assert.InDelta(t, 31, cam.Zoom(), 1e-4)

	for i := 0; i < 100; i++ {
		cam.ApplyZoom(float32(i%13 - 6))
		if cam.Zoom() < 1 || cam.Zoom() > 80 {
			t.Fatalf("Zoom escaped range: %f", cam.Zoom())
		}
	}
}

func TestMovementString(t *testing.T) {
	if Sprint.String() != "sprint" {
		t.Errorf("Unexpected name %q", Sprint.String())
	}
	if Movement(99).String() != "unknown" {
		t.Errorf("Unexpected name %q", Movement(99).String())
	}
}

func TestNewCameraAboveGroundFalls(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch, DefaultMotionConfig())
	require.Equal(t, Airborne, cam.State())

	for i := 0; i < 2000 && cam.IsAirborne(); i++ {
		cam.AdvancePhysics(0.001)
	}
	assert.Equal(t, Grounded, cam.State())
	assert.Equal(t, float32(0), cam.Position.Y())
	assert.Equal(t, float32(0), cam.VerticalVelocity())
}

func TestNewCameraBelowGroundIsLifted(t *testing.T) {
	motion := DefaultMotionConfig()
	motion.GroundHeight = 1
	cam := NewCamera(mgl32.Vec3{4, -2, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch, motion)

	assert.Equal(t, Grounded, cam.State())
	assert.Equal(t, mgl32.Vec3{4, 1, 0}, cam.Position)
}
