package renderer

import (
	"GopherView/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// UniformCache caches uniform locations to avoid repeated location lookups.
//
// A name the program does not use resolves to -1 and every setter for it is a
// silent no-op. A misspelt name or a uniform the GLSL compiler optimized away
// therefore shows up only as a value that never changes on screen; the miss is
// logged once at debug level.
type UniformCache struct {
	driver    Driver
	program   uint32
	locations map[string]int32
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(driver Driver, program uint32) *UniformCache {
	return &UniformCache{
		driver:    driver,
		program:   program,
		locations: make(map[string]int32),
	}
}

// GetLocation returns the cached uniform location or fetches and caches it
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := uc.driver.UniformLocation(uc.program, name)
	uc.locations[name] = loc
	if loc == -1 {
		logger.Log.Debug("Uniform not active in program",
			zap.String("uniform", name),
			zap.Uint32("program", uc.program))
	}
	return loc
}

func (uc *UniformCache) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	uc.SetInt(name, intValue)
}

func (uc *UniformCache) SetInt(name string, value int32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.driver.Uniform1i(loc, value)
	}
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.driver.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.driver.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.driver.UniformMatrix4fv(loc, value)
	}
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
