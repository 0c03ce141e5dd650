package renderer

import "fmt"

// ShaderStage identifies which step of a program build a diagnostic belongs to.
type ShaderStage string

const (
	StageVertex   ShaderStage = "VERTEX"
	StageFragment ShaderStage = "FRAGMENT"
	StageProgram  ShaderStage = "PROGRAM"
)

func (s ShaderStage) String() string {
	return string(s)
}

// ShaderBuildError carries the driver's diagnostic for a failed compile or link.
type ShaderBuildError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderBuildError) Error() string {
	if e.Stage == StageProgram {
		return fmt.Sprintf("program linking failed: %s", e.Log)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}
