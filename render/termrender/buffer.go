package termrender

import (
	"github.com/chewxy/math32"
)

// depthBuffer holds the nearest fragment depth per cell, row-major
type depthBuffer struct {
	depth  []float32
	width  int
	height int
}

func newDepthBuffer(width, height int) *depthBuffer {
	b := &depthBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient, and clears
func (b *depthBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.depth) < size {
		b.depth = make([]float32, size)
	} else {
		b.depth = b.depth[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets every cell to infinitely far using exponential copy
func (b *depthBuffer) Clear() {
	if len(b.depth) == 0 {
		return
	}
	b.depth[0] = math32.Inf(1)
	for filled := 1; filled < len(b.depth); filled *= 2 {
		copy(b.depth[filled:], b.depth[:filled])
	}
}

func (b *depthBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Test stores z at (x, y) and reports true when it is nearer than what is there
func (b *depthBuffer) Test(x, y int, z float32) bool {
	if !b.inBounds(x, y) {
		return false
	}
	i := y*b.width + x
	if z >= b.depth[i] {
		return false
	}
	b.depth[i] = z
	return true
}

// At returns the stored depth, +Inf when empty or out of bounds
func (b *depthBuffer) At(x, y int) float32 {
	if !b.inBounds(x, y) {
		return math32.Inf(1)
	}
	return b.depth[y*b.width+x]
}
