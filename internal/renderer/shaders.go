package renderer

import (
	"GopherView/internal/logger"
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================

// Shader owns one linked GPU program. Build failures do not prevent
// construction: the program is kept, the diagnostics are logged and returned,
// and IsValid reports false. The program lives until Delete is called.
type Shader struct {
	driver   Driver
	program  uint32
	valid    bool
	deleted  bool
	errs     []*ShaderBuildError
	uniforms *UniformCache
}

// NewShader builds a program from in-memory sources on the OpenGL driver.
func NewShader(vertexSource, fragmentSource string) (*Shader, error) {
	return CompileShader(DefaultDriver(), vertexSource, fragmentSource)
}

// CompileShader compiles both stages, links them and releases the stage
// objects on every path. The returned Shader is never nil; the error, when
// present, combines one *ShaderBuildError per failed step.
func CompileShader(driver Driver, vertexSource, fragmentSource string) (*Shader, error) {
	var cleanup Unwind
	defer cleanup.Unwind()

	vertex, vertexErr := genShader(driver, StageVertex, vertexSource)
	cleanup.Add(func() { driver.DeleteShader(vertex) })

	fragment, fragmentErr := genShader(driver, StageFragment, fragmentSource)
	cleanup.Add(func() { driver.DeleteShader(fragment) })

	program := driver.CreateProgram()
	driver.AttachShader(program, vertex)
	cleanup.Add(func() { driver.DetachShader(program, vertex) })
	driver.AttachShader(program, fragment)
	cleanup.Add(func() { driver.DetachShader(program, fragment) })

	driver.LinkProgram(program)

	var linkErr *ShaderBuildError
	if !driver.ProgramLinked(program) {
		linkErr = &ShaderBuildError{Stage: StageProgram, Log: driver.ProgramInfoLog(program)}
		logger.Log.Error("Failed to link program",
			zap.Uint32("program", program),
			zap.String("log", linkErr.Log))
	}

	shader := &Shader{
		driver:   driver,
		program:  program,
		uniforms: NewUniformCache(driver, program),
	}

	var err error
	for _, buildErr := range []*ShaderBuildError{vertexErr, fragmentErr, linkErr} {
		if buildErr != nil {
			shader.errs = append(shader.errs, buildErr)
			err = multierr.Append(err, buildErr)
		}
	}
	shader.valid = err == nil

	if shader.valid {
		logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	}
	return shader, err
}

func genShader(driver Driver, stage ShaderStage, source string) (uint32, *ShaderBuildError) {
	shader := driver.CreateShader(stage)
	driver.ShaderSource(shader, source)
	driver.CompileShader(shader)

	if driver.ShaderCompiled(shader) {
		return shader, nil
	}

	buildErr := &ShaderBuildError{Stage: stage, Log: driver.ShaderInfoLog(shader)}
	logger.Log.Error("Failed to compile",
		zap.Stringer("stage", stage),
		zap.String("log", buildErr.Log))
	return shader, buildErr
}

// ID returns the program handle. It is 0 after Delete.
func (shader *Shader) ID() uint32 {
	if shader.deleted {
		return 0
	}
	return shader.program
}

// IsValid reports whether both stages compiled and the program linked.
func (shader *Shader) IsValid() bool {
	return shader.valid && !shader.deleted
}

// Errors returns the build diagnostics in stage order.
func (shader *Shader) Errors() []*ShaderBuildError {
	return shader.errs
}

// Err returns the first diagnostic for stage, if any.
func (shader *Shader) Err(stage ShaderStage) error {
	for _, e := range shader.errs {
		if e.Stage == stage {
			return e
		}
	}
	return nil
}

// Log returns a human-readable report of all build diagnostics.
func (shader *Shader) Log() string {
	lines := make([]string, 0, len(shader.errs))
	for _, e := range shader.errs {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// Use makes this the active program of the rendering context. An invalid
// program is still bound; checking IsValid first is up to the caller.
func (shader *Shader) Use() {
	if shader.deleted {
		logger.Log.Warn("Use called on deleted shader")
		return
	}
	shader.driver.UseProgram(shader.program)
}

// IsActive reports whether this program is the context's active program.
func (shader *Shader) IsActive() bool {
	return !shader.deleted && shader.driver.CurrentProgram() == shader.program
}

// Uniform setters resolve name in this program. Values only reach the GPU for
// the active program, so Use must come first.

func (shader *Shader) SetBool(name string, value bool) {
	if !shader.deleted {
		shader.uniforms.SetBool(name, value)
	}
}

func (shader *Shader) SetInt(name string, value int32) {
	if !shader.deleted {
		shader.uniforms.SetInt(name, value)
	}
}

func (shader *Shader) SetFloat(name string, value float32) {
	if !shader.deleted {
		shader.uniforms.SetFloat(name, value)
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	if !shader.deleted {
		shader.uniforms.SetVec3(name, value)
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if !shader.deleted {
		shader.uniforms.SetMat4(name, value)
	}
}

// Delete releases the program. Further calls are no-ops.
func (shader *Shader) Delete() {
	if shader.deleted {
		return
	}
	shader.driver.DeleteProgram(shader.program)
	shader.uniforms.Clear()
	shader.deleted = true
}

// IsShaderBuildError reports whether err contains a diagnostic for stage.
func IsShaderBuildError(err error, stage ShaderStage) bool {
	for _, e := range multierr.Errors(err) {
		var buildErr *ShaderBuildError
		if errors.As(e, &buildErr) && buildErr.Stage == stage {
			return true
		}
	}
	return false
}

// DefaultVertexShaderSource transforms cube geometry by model, view and projection.
var DefaultVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 Normal;
out vec3 FragPos;
out float ViewDepth;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    FragPos = worldPos.xyz;
    Normal = mat3(model) * inNormal;

    vec4 viewPos = view * worldPos;
    ViewDepth = -viewPos.z;

    gl_Position = projection * viewPos;
}
`

// DefaultFragmentShaderSource applies one directional light and optional fog.
var DefaultFragmentShaderSource = `#version 410 core

in vec3 Normal;
in vec3 FragPos;
in float ViewDepth;

uniform vec3 objectColor;
uniform vec3 lightDir;
uniform vec3 skyColor;
uniform float ambient;
uniform bool fogEnabled;
uniform float fogDensity;
uniform int highlight;

out vec4 FragColor;

void main() {
    vec3 norm = normalize(Normal);
    float diff = max(dot(norm, normalize(-lightDir)), 0.0);
    vec3 color = (ambient + diff) * objectColor;

    if (highlight == 1) {
        color = mix(color, vec3(1.0, 0.9, 0.4), 0.35);
    }

    if (fogEnabled) {
        float fog = exp(-pow(ViewDepth * fogDensity, 2.0));
        color = mix(skyColor, color, clamp(fog, 0.0, 1.0));
    }

    FragColor = vec4(color, 1.0);
}
`
