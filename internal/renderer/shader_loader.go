package renderer

import (
	"fmt"
	"os"
)

// ReadShaderSources reads a vertex and fragment shader source file.
func ReadShaderSources(vertexPath, fragmentPath string) (string, string, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("could not read fragment shader file: %w", err)
	}

	return string(vertexSource), string(fragmentSource), nil
}

// LoadShader reads both source files and compiles them on driver. Read
// failures return a nil Shader; build failures behave as in CompileShader.
func LoadShader(driver Driver, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, fragmentSource, err := ReadShaderSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return CompileShader(driver, vertexSource, fragmentSource)
}
