package termrender

import (
	"github.com/chewxy/math32"
)

// vertex is a projected point: x, y in cells, z in normalized depth [-1, 1]
type vertex struct {
	x, y, z float32
}

// edge is twice the signed area of (a, b, p)
func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// rasterize depth-tests every cell whose centre lies inside the triangle and calls
// plot for the ones that pass. Both windings are filled. Returns the plotted count
func rasterize(b *depthBuffer, t [3]vertex, plot func(x, y int)) int {
	area := edge(t[0], t[1], t[2].x, t[2].y)
	if area == 0 {
		return 0
	}

	minX := max(int(math32.Floor(min(t[0].x, t[1].x, t[2].x))), 0)
	maxX := min(int(math32.Ceil(max(t[0].x, t[1].x, t[2].x))), b.width-1)
	minY := max(int(math32.Floor(min(t[0].y, t[1].y, t[2].y))), 0)
	maxY := min(int(math32.Ceil(max(t[0].y, t[1].y, t[2].y))), b.height-1)

	inv := 1 / area
	n := 0
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(t[1], t[2], px, py) * inv
			w1 := edge(t[2], t[0], px, py) * inv
			w2 := edge(t[0], t[1], px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*t[0].z + w1*t[1].z + w2*t[2].z
			if z < -1 || z > 1 {
				continue
			}
			if b.Test(x, y, z) {
				plot(x, y)
				n++
			}
		}
	}
	return n
}

// normalize3 returns the unit vector of (x, y, z) or zero for a null vector
func normalize3(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, z / l
}
