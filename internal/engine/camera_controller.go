package engine

import (
	"GopherView/internal/input"
	"GopherView/internal/logger"
	"GopherView/internal/renderer"

	"go.uber.org/zap"
)

// CameraController feeds held keys, cursor motion and scrolling into a
// Camera and advances its physics once per frame.
type CameraController struct {
	Camera   *renderer.Camera
	Keys     input.KeySource
	Bindings input.KeyBindings
	Mouse    *input.MouseTracker

	// Enabled gates user input only; gravity keeps running while disabled.
	Enabled bool
}

func NewCameraController(camera *renderer.Camera, keys input.KeySource) *CameraController {
	return &CameraController{
		Camera:   camera,
		Keys:     keys,
		Bindings: input.DefaultKeyBindings(),
		Mouse:    input.NewMouseTracker(),
		Enabled:  true,
	}
}

func (c *CameraController) Start() {
	logger.Log.Info("Camera controller started",
		zap.Float32("yaw", c.Camera.Yaw()),
		zap.Float32("pitch", c.Camera.Pitch()),
		zap.Stringer("state", c.Camera.State()))
}

func (c *CameraController) Update(deltaTime float32) {
	if c.Enabled && c.Keys != nil {
		for _, movement := range c.Bindings.Held(c.Keys) {
			if err := c.Camera.ApplyMovement(movement, deltaTime); err != nil {
				logger.Log.Error("Camera movement rejected", zap.Stringer("movement", movement), zap.Error(err))
			}
		}
	}
	c.Camera.AdvancePhysics(deltaTime)
}

// HandleCursor turns the camera while looking is true. Releasing the look
// resets the tracker so the next grab does not jump.
func (c *CameraController) HandleCursor(xpos, ypos float64, looking bool) {
	if !c.Enabled || !looking {
		c.Mouse.Reset()
		return
	}
	if xoffset, yoffset, ok := c.Mouse.Offsets(xpos, ypos); ok {
		c.Camera.ApplyLook(xoffset, yoffset, true)
	}
}

func (c *CameraController) HandleScroll(yoffset float64) {
	if c.Enabled {
		c.Camera.ApplyZoom(float32(yoffset))
	}
}
