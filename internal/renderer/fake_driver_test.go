package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeDriver is an in-memory Driver. A stage compiles when its source has a
// #version line and a main function; a program links when both attached
// stages compiled. Active uniforms are the `uniform <type> <name>;`
// declarations of the attached sources.
type fakeDriver struct {
	nextID       uint32
	nextLocation int32

	shaders  map[uint32]*fakeStage
	programs map[uint32]*fakeProgram
	current  uint32

	compiled       []ShaderStage
	deletedShaders []uint32
	deletedProgs   []uint32
	useCalls       int
	lookups        int
	strayWrites    int
	values         map[int32]interface{}
}

type fakeStage struct {
	stage    ShaderStage
	source   string
	compiled bool
}

type fakeProgram struct {
	attached map[uint32]bool
	linked   bool
	uniforms map[string]int32
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:  make(map[uint32]*fakeStage),
		programs: make(map[uint32]*fakeProgram),
		values:   make(map[int32]interface{}),
	}
}

func (d *fakeDriver) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDriver) CreateShader(stage ShaderStage) uint32 {
	id := d.id()
	d.shaders[id] = &fakeStage{stage: stage}
	return id
}

func (d *fakeDriver) ShaderSource(shader uint32, source string) {
	d.shaders[shader].source = source
}

func (d *fakeDriver) CompileShader(shader uint32) {
	s := d.shaders[shader]
	s.compiled = strings.Contains(s.source, "#version") && strings.Contains(s.source, "void main()")
	d.compiled = append(d.compiled, s.stage)
}

func (d *fakeDriver) ShaderCompiled(shader uint32) bool {
	return d.shaders[shader].compiled
}

func (d *fakeDriver) ShaderInfoLog(shader uint32) string {
	if d.shaders[shader].compiled {
		return ""
	}
	return "0:1(1): error: syntax error, unexpected IDENTIFIER"
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
	d.deletedShaders = append(d.deletedShaders, shader)
}

func (d *fakeDriver) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &fakeProgram{attached: make(map[uint32]bool), uniforms: make(map[string]int32)}
	return id
}

func (d *fakeDriver) AttachShader(program, shader uint32) {
	d.programs[program].attached[shader] = true
}

func (d *fakeDriver) DetachShader(program, shader uint32) {
	if _, ok := d.shaders[shader]; !ok {
		panic(fmt.Sprintf("detach of already deleted shader %d", shader))
	}
	delete(d.programs[program].attached, shader)
}

func (d *fakeDriver) LinkProgram(program uint32) {
	p := d.programs[program]
	p.linked = len(p.attached) == 2
	for shader := range p.attached {
		s := d.shaders[shader]
		if !s.compiled {
			p.linked = false
		}
	}
	if !p.linked {
		return
	}
	for shader := range p.attached {
		for _, m := range uniformDecl.FindAllStringSubmatch(d.shaders[shader].source, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = d.nextLocation
				d.nextLocation++
			}
		}
	}
}

func (d *fakeDriver) ProgramLinked(program uint32) bool {
	return d.programs[program].linked
}

func (d *fakeDriver) ProgramInfoLog(program uint32) string {
	if d.programs[program].linked {
		return ""
	}
	return "error: linking with uncompiled/unspecialized shader"
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	delete(d.programs, program)
	d.deletedProgs = append(d.deletedProgs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *fakeDriver) UseProgram(program uint32) {
	d.useCalls++
	d.current = program
}

func (d *fakeDriver) CurrentProgram() uint32 {
	return d.current
}

func (d *fakeDriver) UniformLocation(program uint32, name string) int32 {
	d.lookups++
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDriver) write(location int32, value interface{}) {
	if location == -1 {
		d.strayWrites++
		return
	}
	d.values[location] = value
}

func (d *fakeDriver) Uniform1i(location int32, value int32) {
	d.write(location, value)
}

func (d *fakeDriver) Uniform1f(location int32, value float32) {
	d.write(location, value)
}

func (d *fakeDriver) Uniform3f(location int32, x, y, z float32) {
	d.write(location, mgl32.Vec3{x, y, z})
}

func (d *fakeDriver) UniformMatrix4fv(location int32, value mgl32.Mat4) {
	d.write(location, value)
}

// valueOf returns the last value written to the uniform name of program.
func (d *fakeDriver) valueOf(program uint32, name string) (interface{}, bool) {
	p, ok := d.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := d.values[loc]
	return v, ok
}
