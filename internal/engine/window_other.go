//go:build !windows

package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func styleWindow(*glfw.Window, mgl32.Vec3) {}
