package renderer

import (
	"github.com/Carmen-Shannon/sunlit/engine/model"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/material"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel of the colour target.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
)

// Backend is the opaque GPU service the renderer draws through. The draw-state calls
// (UseProgram, BindGeometry, SetUniforms, BindTextures, BindShadowMap, Draw) are only valid
// between a Begin and End pair of the same pass.
//
// UploadTexture may be called from any goroutine. Every other method is called from the
// render goroutine only.
type Backend interface {
	material.Uploader

	// CompileProgram builds the GPU objects of a program description. On failure it still
	// returns a handle whose Valid is false, together with the error.
	//
	// Parameters:
	//   - p: the program description
	//
	// Returns:
	//   - gpu.Program: the compiled program, never nil
	//   - error: the compilation error, if any
	CompileProgram(p pipeline.Pipeline) (gpu.Program, error)

	// UploadGeometry interleaves and uploads a DrawInfo's vertices and indices.
	//
	// Parameters:
	//   - label: debug label for the buffers
	//   - d: the vertex data
	//
	// Returns:
	//   - gpu.Geometry: the uploaded geometry
	//   - error: error if the buffers could not be created
	UploadGeometry(label string, d model.DrawInfo) (gpu.Geometry, error)

	// CreateDepthTarget creates a square sampleable depth texture and its render target.
	//
	// Parameters:
	//   - size: width and height in texels
	//
	// Returns:
	//   - gpu.DepthTarget: the depth target
	//   - error: wraps ErrDepthTextureUnsupported when depth textures are unavailable
	CreateDepthTarget(size int) (gpu.DepthTarget, error)

	// BeginDepthPass binds target, sets the viewport to its size and clears it.
	//
	// Parameters:
	//   - target: the shadow depth target
	//
	// Returns:
	//   - error: error if the pass could not start
	BeginDepthPass(target gpu.DepthTarget) error

	// EndDepthPass finishes the depth pass and restores the default target and viewport.
	EndDepthPass()

	// BeginColorPass binds the default target at the window size and clears colour and depth.
	//
	// Parameters:
	//   - clear: the clear colour
	//
	// Returns:
	//   - error: error if the frame could not be acquired
	BeginColorPass(clear mgl32.Vec4) error

	// EndColorPass finishes the colour pass.
	EndColorPass()

	// UseProgram selects the program for subsequent draws.
	//
	// Parameters:
	//   - p: the program
	UseProgram(p gpu.Program)

	// BindGeometry selects the vertex and index buffers for subsequent draws.
	//
	// Parameters:
	//   - g: the geometry
	BindGeometry(g gpu.Geometry)

	// SetUniforms stages the uniform block of the next draw. data must match the current
	// program's UniformSize.
	//
	// Parameters:
	//   - data: the marshalled uniform block
	SetUniforms(data []byte)

	// BindTextures binds one texture per texture slot of the current program, in order.
	//
	// Parameters:
	//   - textures: the textures in slot order
	BindTextures(textures []gpu.Texture)

	// BindShadowMap binds the depth texture sampled by shadowed programs. Nil binds a fully
	// lit fallback.
	//
	// Parameters:
	//   - target: the shadow depth target, or nil
	BindShadowMap(target gpu.DepthTarget)

	// Draw issues one draw of the bound geometry with the staged uniforms.
	Draw()

	// Resize reconfigures the default target for a new window size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Present displays the finished frame.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}
