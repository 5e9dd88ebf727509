package render

import "github.com/go-gl/mathgl/mgl64"

// MatrixStack is a push/pop model-view stack, the top starts as identity
type MatrixStack struct {
	stack []mgl64.Mat4
}

// NewMatrixStack creates a stack holding the identity matrix
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []mgl64.Mat4{mgl64.Ident4()}}
}

// Reset drops every pushed level and restores identity
func (s *MatrixStack) Reset() {
	s.stack = append(s.stack[:0], mgl64.Ident4())
}

// Push duplicates the top
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop discards the top; popping the last level restores identity instead of underflowing
func (s *MatrixStack) Pop() {
	if len(s.stack) <= 1 {
		s.Reset()
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Mult post-multiplies the top by m
func (s *MatrixStack) Mult(m mgl64.Mat4) {
	if len(s.stack) == 0 {
		s.Reset()
	}
	i := len(s.stack) - 1
	s.stack[i] = s.stack[i].Mul4(m)
}

// Top returns the current matrix
func (s *MatrixStack) Top() mgl64.Mat4 {
	if len(s.stack) == 0 {
		return mgl64.Ident4()
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of levels, 1 when nothing is pushed
func (s *MatrixStack) Depth() int {
	return len(s.stack)
}
