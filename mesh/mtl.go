package mesh

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path"

	_ "golang.org/x/image/bmp"

	"github.com/lixenwraith/ngine/render"
)

// ParseMaterials reads an MTL library; map_Kd textures are opened from fsys relative to dir
func ParseMaterials(r io.Reader, fsys fs.FS, dir string) (map[string]*Material, error) {
	mats := make(map[string]*Material)
	var cur *Material

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := statement(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w", line, ErrSyntax)
			}
			cur = newMaterial(fields[1])
			mats[cur.Name] = cur
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("line %d: %w", line, ErrMissingNewmtl)
		}

		var err error
		switch fields[0] {
		case "Kd":
			cur.Diffuse, err = parseColor(fields[1:])
		case "Ka":
			cur.Ambient, err = parseColor(fields[1:])
		case "Ks":
			cur.Specular, err = parseColor(fields[1:])
		case "Ns":
			var f []float64
			if f, err = parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = f[0]
			}
		case "d":
			var f []float64
			if f, err = parseFloats(fields[1:], 1); err == nil {
				cur.Dissolve = f[0]
			}
		case "map_Kd":
			if len(fields) < 2 {
				err = ErrSyntax
				break
			}
			err = cur.loadTexture(fsys, path.Join(dir, fields[len(fields)-1]))
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return mats, nil
}

func parseColor(fields []string) (render.Color, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return render.Color{}, err
	}
	return render.RGBA(f[0], f[1], f[2], 1), nil
}

// loadTexture decodes the texture and keeps its average colour
func (m *Material) loadTexture(fsys fs.FS, name string) error {
	if fsys == nil {
		return fmt.Errorf("%w: %s", ErrTextureNotFound, name)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTextureNotFound, name)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode texture %s: %w", name, err)
	}
	avg := averageColor(img)
	m.Texture = name
	m.TextureColor = &avg
	return nil
}

func averageColor(img image.Image) render.Color {
	b := img.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return render.White
	}
	var r, g, bl, a float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			r += float64(cr)
			g += float64(cg)
			bl += float64(cb)
			a += float64(ca)
		}
	}
	const full = 0xffff
	return render.RGBA(r/n/full, g/n/full, bl/n/full, a/n/full)
}
