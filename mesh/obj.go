package mesh

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Load reads an OBJ file from disk, resolving material libraries next to it
func Load(file string) (*Model, error) {
	return LoadFS(os.DirFS(filepath.Dir(file)), filepath.Base(file))
}

// LoadFS reads the OBJ file name from fsys
// mtllib and map_Kd references are resolved relative to the referring file
func LoadFS(fsys fs.FS, name string) (*Model, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, fsys, path.Dir(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Parse reads OBJ statements from r
// Referenced material libraries are opened from fsys relative to dir; a nil fsys rejects mtllib
func Parse(r io.Reader, fsys fs.FS, dir string) (*Model, error) {
	m := &Model{Materials: make(map[string]*Material)}
	var material string

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := statement(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v mgl64.Vec3
			v, err = parseVec3(fields[1:])
			m.Vertices = append(m.Vertices, v)
		case "vn":
			var v mgl64.Vec3
			v, err = parseVec3(fields[1:])
			m.Normals = append(m.Normals, v)
		case "vt":
			var v mgl64.Vec2
			v, err = parseVec2(fields[1:])
			m.TexCoords = append(m.TexCoords, v)
		case "usemtl", "usemat":
			if len(fields) < 2 {
				err = ErrSyntax
				break
			}
			material = fields[1]
		case "mtllib":
			if len(fields) < 2 {
				err = ErrSyntax
				break
			}
			err = m.loadLibrary(fsys, path.Join(dir, fields[1]))
		case "f":
			var f Face
			f, err = m.parseFace(fields[1:])
			f.Material = material
			m.Faces = append(m.Faces, f)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, f := range m.Faces {
		if f.Material == "" {
			continue
		}
		if _, ok := m.Materials[f.Material]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, f.Material)
		}
	}
	return m, nil
}

func (m *Model) loadLibrary(fsys fs.FS, name string) error {
	if fsys == nil {
		return fmt.Errorf("mtllib %s: %w", name, fs.ErrNotExist)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("mtllib: %w", err)
	}
	defer f.Close()

	mats, err := ParseMaterials(f, fsys, path.Dir(name))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for k, v := range mats {
		m.Materials[k] = v
	}
	return nil
}

// parseFace resolves v, v/t, v//n and v/t/n references; negative indices count from the end
func (m *Model) parseFace(refs []string) (Face, error) {
	if len(refs) < 3 {
		return Face{}, fmt.Errorf("%w: face with %d vertices", ErrSyntax, len(refs))
	}
	f := Face{
		Vertices:  make([]int, len(refs)),
		TexCoords: make([]int, len(refs)),
		Normals:   make([]int, len(refs)),
	}
	for i, ref := range refs {
		parts := strings.Split(ref, "/")
		if len(parts) > 3 {
			return Face{}, fmt.Errorf("%w: %q", ErrSyntax, ref)
		}
		var err error
		if f.Vertices[i], err = resolve(parts, 0, len(m.Vertices)); err != nil {
			return Face{}, err
		}
		if f.Vertices[i] < 0 {
			return Face{}, fmt.Errorf("%w: %q has no vertex", ErrSyntax, ref)
		}
		if f.TexCoords[i], err = resolve(parts, 1, len(m.TexCoords)); err != nil {
			return Face{}, err
		}
		if f.Normals[i], err = resolve(parts, 2, len(m.Normals)); err != nil {
			return Face{}, err
		}
	}
	return f, nil
}

// resolve converts the k-th part of a face reference into a zero-based index, -1 when absent
func resolve(parts []string, k, n int) (int, error) {
	if k >= len(parts) || parts[k] == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(parts[k])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, parts[k])
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("%w: %d of %d", ErrBadIndex, i, n)
}

// statement splits a line into fields, dropping comments
func statement(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrSyntax, want, len(fields))
	}
	out := make([]float64, want)
	for i := range want {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(fields []string) (mgl64.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{f[0], f[1], f[2]}, nil
}

func parseVec2(fields []string) (mgl64.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return mgl64.Vec2{}, err
	}
	return mgl64.Vec2{f[0], f[1]}, nil
}
