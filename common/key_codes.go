package common

// Virtual key codes handled by the engine.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32 // Spacebar (ASCII), pauses animation
	KeyD     = 68 // D key (ASCII), dumps the scene graph
	KeyP     = 80 // P key (ASCII), toggles the profiler
)
