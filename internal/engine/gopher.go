package engine

import (
	"fmt"

	"GopherView/internal/behaviour"
	"GopherView/internal/config"
	"GopherView/internal/input"
	"GopherView/internal/logger"
	"GopherView/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	maxFrameDelta = 0.1 // seconds
	pickDistance  = 30
	ambientLight  = 0.25
)

var (
	skyColor = mgl32.Vec3{0.62, 0.74, 0.86}
	lightDir = mgl32.Vec3{-0.4, -1.0, -0.3}
)

// Viewer owns the window, the navigable camera and the demo scene.
type Viewer struct {
	Config     config.Config
	Camera     *renderer.Camera
	Controller *CameraController
	Behaviours *behaviour.BehaviourManager

	window  *glfw.Window
	shader  *renderer.Shader
	cube    *renderer.Mesh
	lens    renderer.Lens
	clock   *input.FrameClock
	pillars []Pillar
	floor   Pillar
	picked  int

	// Frustum culling stats from the last frame.
	drawn, culled int
}

func NewViewer(cfg config.Config) *Viewer {
	camera := renderer.NewCamera(
		mgl32.Vec3{0, cfg.Motion.GroundHeight, 0},
		mgl32.Vec3{0, 1, 0},
		renderer.DefaultYaw,
		renderer.DefaultPitch,
		cfg.Motion,
	)
	return &Viewer{
		Config:     cfg,
		Camera:     camera,
		Behaviours: behaviour.NewBehaviourManager(),
		lens:       renderer.NewLens(cfg.Window.Width, cfg.Window.Height, cfg.Lens.Near, cfg.Lens.Far),
		clock:      input.NewFrameClock(maxFrameDelta),
		pillars:    GenerateScene(cfg.Scene, cfg.FloorY()),
		floor:      Floor(cfg.Scene, cfg.FloorY()),
		picked:     -1,
	}
}

// Run opens the window and blocks until it is closed. It must be called on
// the main OS thread, locked from the program's init.
func (v *Viewer) Run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w := v.Config.Window
	window, err := glfw.CreateWindow(int(w.Width), int(w.Height), w.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	v.window = window
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	if w.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int32("width", w.Width),
		zap.Int32("height", w.Height))

	styleWindow(window, skyColor)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	fbWidth, fbHeight := window.GetFramebufferSize()
	v.resize(int32(fbWidth), int32(fbHeight))

	defer v.attachController(window)()

	window.SetCursorPosCallback(v.cursorCallback)
	window.SetScrollCallback(v.scrollCallback)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		v.resize(int32(width), int32(height))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	v.shader = v.loadShader()
	defer v.shader.Delete()

	v.cube = renderer.NewMesh(renderer.CubeVertices())
	defer v.cube.Delete()

	logger.Log.Info("Scene generated",
		zap.Int64("seed", v.Config.Scene.Seed),
		zap.Int("pillars", len(v.pillars)))

	v.renderLoop()
	return nil
}

// attachController drives the camera from keys until the returned detach is called.
func (v *Viewer) attachController(keys input.KeySource) (detach func()) {
	controller := NewCameraController(v.Camera, keys)
	v.Controller = controller
	v.Behaviours.Add(controller)
	return func() {
		v.Behaviours.Remove(controller)
		if v.Controller == controller {
			v.Controller = nil
		}
	}
}

func (v *Viewer) loadShader() *renderer.Shader {
	paths := v.Config.Shaders
	var (
		shader *renderer.Shader
		err    error
	)
	if paths.VertexPath != "" {
		shader, err = renderer.LoadShader(renderer.DefaultDriver(), paths.VertexPath, paths.FragmentPath)
		if shader == nil {
			logger.Log.Error("Could not load shader files, using built-in shader", zap.Error(err))
		}
	}
	if shader == nil {
		shader, err = renderer.NewShader(renderer.DefaultVertexShaderSource, renderer.DefaultFragmentShaderSource)
	}
	if !shader.IsValid() {
		logger.Log.Warn("Shader program is invalid, the scene will not render correctly", zap.Error(err))
	}
	return shader
}

func (v *Viewer) renderLoop() {
	for !v.window.ShouldClose() {
		deltaTime := v.clock.Tick(glfw.GetTime())

		v.Behaviours.UpdateAll(deltaTime)
		v.picked = Pick(v.pillars, v.Camera.LookRay(), pickDistance)

		v.render()

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
	logger.Log.Debug("Render loop finished",
		zap.Int("drawn", v.drawn),
		zap.Int("culled", v.culled))
}

func (v *Viewer) render() {
	gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := v.Camera.GetViewMatrix()
	projection := v.lens.Projection(v.Camera.Zoom())
	frustum := renderer.CalculateFrustum(projection.Mul4(view))

	s := v.shader
	s.Use()
	s.SetMat4("view", view)
	s.SetMat4("projection", projection)
	s.SetVec3("lightDir", lightDir)
	s.SetVec3("skyColor", skyColor)
	s.SetFloat("ambient", ambientLight)
	s.SetBool("fogEnabled", v.Config.Scene.FogEnabled)
	s.SetFloat("fogDensity", v.Config.Scene.FogDensity)

	v.drawPillar(v.floor, false)

	v.drawn, v.culled = 0, 0
	for i, p := range v.pillars {
		if v.Config.Scene.CullEnabled && !frustum.IntersectsSphere(p.Center(), p.BoundingRadius()) {
			v.culled++
			continue
		}
		v.drawPillar(p, i == v.picked)
		v.drawn++
	}
}

func (v *Viewer) drawPillar(p Pillar, highlight bool) {
	v.shader.SetMat4("model", p.ModelMatrix())
	v.shader.SetVec3("objectColor", p.Color)
	var h int32
	if highlight {
		h = 1
	}
	v.shader.SetInt("highlight", h)
	v.cube.Draw()
}

// resize follows the framebuffer; a minimized window reports 0x0 and is ignored.
func (v *Viewer) resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, width, height)
	v.lens.SetViewport(width, height)
}

func (v *Viewer) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	looking := w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
	v.Controller.HandleCursor(xpos, ypos, looking)
}

func (v *Viewer) scrollCallback(_ *glfw.Window, _, yoffset float64) {
	v.Controller.HandleScroll(yoffset)
}
