// Package input converts raw window input into camera requests. It owns the
// cursor and frame-time bookkeeping so the camera itself holds nothing but its pose.
package input

import (
	"GopherView/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// MouseTracker turns absolute cursor positions into per-event offsets.
type MouseTracker struct {
	lastX, lastY float64
	firstMouse   bool
}

func NewMouseTracker() *MouseTracker {
	return &MouseTracker{firstMouse: true}
}

// Offsets returns the motion since the previous position. The first position
// after construction or Reset only primes the tracker and reports ok=false.
// The y offset is reversed since window y-coordinates go from top to bottom.
func (m *MouseTracker) Offsets(xpos, ypos float64) (xoffset, yoffset float32, ok bool) {
	if m.firstMouse {
		m.lastX = xpos
		m.lastY = ypos
		m.firstMouse = false
		return 0, 0, false
	}

	xoffset = float32(xpos - m.lastX)
	yoffset = float32(m.lastY - ypos)
	m.lastX = xpos
	m.lastY = ypos
	return xoffset, yoffset, true
}

// Reset forgets the last position, e.g. when the cursor is released or re-captured.
func (m *MouseTracker) Reset() {
	m.firstMouse = true
}

// KeySource is satisfied by *glfw.Window.
type KeySource interface {
	GetKey(key glfw.Key) glfw.Action
}

type Binding struct {
	Key      glfw.Key
	Movement renderer.Movement
}

// KeyBindings maps held keys to movement requests, in binding order.
type KeyBindings []Binding

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		{Key: glfw.KeyW, Movement: renderer.Forward},
		{Key: glfw.KeyS, Movement: renderer.Backward},
		{Key: glfw.KeyA, Movement: renderer.StrafeLeft},
		{Key: glfw.KeyD, Movement: renderer.StrafeRight},
		{Key: glfw.KeyLeftShift, Movement: renderer.Sprint},
		{Key: glfw.KeySpace, Movement: renderer.Jump},
	}
}

// Held returns the movements whose keys are currently pressed.
func (b KeyBindings) Held(src KeySource) []renderer.Movement {
	var held []renderer.Movement
	for _, binding := range b {
		if src.GetKey(binding.Key) == glfw.Press {
			held = append(held, binding.Movement)
		}
	}
	return held
}

// FrameClock measures the time between frames.
type FrameClock struct {
	last     float64
	started  bool
	MaxDelta float32 // longer frames (window drags, breakpoints) are clamped to this
}

func NewFrameClock(maxDelta float32) *FrameClock {
	return &FrameClock{MaxDelta: maxDelta}
}

// Tick returns the seconds since the previous Tick; the first call returns 0.
func (c *FrameClock) Tick(now float64) float32 {
	if !c.started {
		c.last = now
		c.started = true
		return 0
	}

	deltaTime := float32(now - c.last)
	c.last = now
	if deltaTime < 0 {
		return 0
	}
	if c.MaxDelta > 0 && deltaTime > c.MaxDelta {
		return c.MaxDelta
	}
	return deltaTime
}
