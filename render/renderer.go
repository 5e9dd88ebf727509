// Package render defines the renderer the engine draws through, the display-list
// primitives it submits and a recording implementation for headless runs
package render

import "github.com/go-gl/mathgl/mgl64"

// MaxLightUnits is the number of hardware-style light units a renderer exposes
const MaxLightUnits = 8

// LightParams describes an enabled light unit
type LightParams struct {
	Ambient  Color
	Diffuse  Color
	Specular Color
	// Position is homogeneous: W=0 marks a directional light
	Position      mgl64.Vec4
	SpotDirection mgl64.Vec3
}

// Renderer is the immediate-mode drawing surface used by the render pass
// Matrix operations follow the fixed-function convention: MultMatrix post-multiplies the top of the stack
type Renderer interface {
	// BeginFrame clears colour and depth and resets the matrix stack
	BeginFrame()

	// CompileList stores primitives for repeated drawing
	CompileList(prims []Primitive) ListID
	// CallList draws a compiled list with the current matrix and colour
	CallList(id ListID)
	// DeleteList releases a compiled list. Unknown ids are ignored
	DeleteList(id ListID)

	PushMatrix()
	PopMatrix()
	MultMatrix(m mgl64.Mat4)
	SetColor(c Color)

	// EnableLight activates unit with p; the position is transformed by the current matrix
	EnableLight(unit int, p LightParams)
	DisableLight(unit int)
}
