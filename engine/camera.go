package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/render"
)

// Camera views the scene from its entity's position
// It orbits that position at Distance, turned by Orientation (Euler degrees about X, Y, Z)
type Camera struct {
	BaseComponent

	Distance    float64
	Orientation mgl64.Vec3
}

func NewCamera(distance float64, orientation mgl64.Vec3) *Camera {
	return &Camera{Distance: distance, Orientation: orientation}
}

// Active reports whether this camera is the scene's active camera
func (c *Camera) Active() bool {
	s := c.Scene()
	return s != nil && s.Camera() == c
}

// View returns the view matrix
func (c *Camera) View() mgl64.Mat4 {
	var pos mgl64.Vec3
	if t := c.Transform(); t != nil {
		pos = t.Position()
	}
	o := c.Orientation
	return mgl64.Translate3D(0, 0, -c.Distance).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(-o.X()))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(-o.Y()))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-o.Z()))).
		Mul4(mgl64.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))
}

// Push applies the view transform on a new matrix level
func (c *Camera) Push(r render.Renderer) {
	r.PushMatrix()
	r.MultMatrix(c.View())
}

// Pop restores the level saved by Push
func (c *Camera) Pop(r render.Renderer) {
	r.PopMatrix()
}
