package renderer

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Driver is the slice of the GPU API used to build and feed shader programs.
// All calls must come from the thread that owns the GL context.
type Driver interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)

	// UseProgram makes program the one active program of the context.
	UseProgram(program uint32)
	CurrentProgram() uint32

	// UniformLocation returns -1 when program has no active uniform called name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, value int32)
	Uniform1f(location int32, value float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, value mgl32.Mat4)
}

// openGLDriver implements Driver on the current OpenGL 4.1 core context.
type openGLDriver struct {
	currentProgram uint32 // Track currently bound program to avoid unnecessary switches
}

// NewOpenGLDriver returns a Driver for the current context. gl.Init must have
// been called on this thread.
func NewOpenGLDriver() Driver {
	return &openGLDriver{}
}

var defaultDriver = NewOpenGLDriver()

// DefaultDriver returns the process-wide OpenGL driver.
func DefaultDriver() Driver {
	return defaultDriver
}

func glStage(stage ShaderStage) uint32 {
	if stage == StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *openGLDriver) CreateShader(stage ShaderStage) uint32 {
	return gl.CreateShader(glStage(stage))
}

func (d *openGLDriver) ShaderSource(shader uint32, source string) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
}

func (d *openGLDriver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *openGLDriver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *openGLDriver) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *openGLDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *openGLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *openGLDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *openGLDriver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *openGLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *openGLDriver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *openGLDriver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *openGLDriver) DeleteProgram(program uint32) {
	if d.currentProgram == program {
		d.currentProgram = 0
	}
	gl.DeleteProgram(program)
}

func (d *openGLDriver) UseProgram(program uint32) {
	if d.currentProgram == program {
		return
	}
	gl.UseProgram(program)
	d.currentProgram = program
}

func (d *openGLDriver) CurrentProgram() uint32 {
	return d.currentProgram
}

func (d *openGLDriver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *openGLDriver) Uniform1i(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (d *openGLDriver) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (d *openGLDriver) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (d *openGLDriver) UniformMatrix4fv(location int32, value mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}
