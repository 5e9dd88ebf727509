package render

import "github.com/go-gl/mathgl/mgl64"

// Op names a recorded renderer call
type Op uint8

const (
	OpBeginFrame Op = iota
	OpCompileList
	OpCallList
	OpDeleteList
	OpPushMatrix
	OpPopMatrix
	OpMultMatrix
	OpSetColor
	OpEnableLight
	OpDisableLight
)

var opNames = [...]string{
	OpBeginFrame:   "BeginFrame",
	OpCompileList:  "CompileList",
	OpCallList:     "CallList",
	OpDeleteList:   "DeleteList",
	OpPushMatrix:   "PushMatrix",
	OpPopMatrix:    "PopMatrix",
	OpMultMatrix:   "MultMatrix",
	OpSetColor:     "SetColor",
	OpEnableLight:  "EnableLight",
	OpDisableLight: "DisableLight",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op?"
}

// Call is one recorded renderer invocation
type Call struct {
	Op     Op
	List   ListID
	Matrix mgl64.Mat4
	Color  Color
	Unit   int
	Light  LightParams
}

// Draw is a resolved CallList: the list plus the matrix and colour in effect
type Draw struct {
	List  ListID
	Model mgl64.Mat4
	Color Color
}

// Recorder is a Renderer that draws nothing and remembers everything
// It backs headless runs and tests
type Recorder struct {
	calls  []Call
	draws  []Draw
	lists  map[ListID][]Primitive
	next   ListID
	stack  *MatrixStack
	color  Color
	lights map[int]LightParams
	frames int
}

var _ Renderer = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		lists:  make(map[ListID][]Primitive),
		stack:  NewMatrixStack(),
		color:  White,
		lights: make(map[int]LightParams),
	}
}

func (r *Recorder) BeginFrame() {
	r.frames++
	r.stack.Reset()
	r.draws = r.draws[:0]
	r.calls = append(r.calls, Call{Op: OpBeginFrame})
}

func (r *Recorder) CompileList(prims []Primitive) ListID {
	r.next++
	cp := make([]Primitive, len(prims))
	for i, p := range prims {
		cp[i] = p.Clone()
	}
	r.lists[r.next] = cp
	r.calls = append(r.calls, Call{Op: OpCompileList, List: r.next})
	return r.next
}

func (r *Recorder) CallList(id ListID) {
	r.calls = append(r.calls, Call{Op: OpCallList, List: id, Matrix: r.stack.Top(), Color: r.color})
	if _, ok := r.lists[id]; ok {
		r.draws = append(r.draws, Draw{List: id, Model: r.stack.Top(), Color: r.color})
	}
}

func (r *Recorder) DeleteList(id ListID) {
	delete(r.lists, id)
	r.calls = append(r.calls, Call{Op: OpDeleteList, List: id})
}

func (r *Recorder) PushMatrix() {
	r.stack.Push()
	r.calls = append(r.calls, Call{Op: OpPushMatrix})
}

func (r *Recorder) PopMatrix() {
	r.stack.Pop()
	r.calls = append(r.calls, Call{Op: OpPopMatrix})
}

func (r *Recorder) MultMatrix(m mgl64.Mat4) {
	r.stack.Mult(m)
	r.calls = append(r.calls, Call{Op: OpMultMatrix, Matrix: m})
}

func (r *Recorder) SetColor(c Color) {
	r.color = c
	r.calls = append(r.calls, Call{Op: OpSetColor, Color: c})
}

func (r *Recorder) EnableLight(unit int, p LightParams) {
	p.Position = r.stack.Top().Mul4x1(p.Position)
	r.lights[unit] = p
	r.calls = append(r.calls, Call{Op: OpEnableLight, Unit: unit, Light: p})
}

func (r *Recorder) DisableLight(unit int) {
	delete(r.lights, unit)
	r.calls = append(r.calls, Call{Op: OpDisableLight, Unit: unit})
}

// Calls returns every recorded call since the last Reset
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// Draws returns the lists drawn in the current frame, in order
func (r *Recorder) Draws() []Draw {
	return append([]Draw(nil), r.draws...)
}

// Count returns how many calls of op were recorded
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// List returns the primitives compiled under id
func (r *Recorder) List(id ListID) ([]Primitive, bool) {
	p, ok := r.lists[id]
	return p, ok
}

// Lists returns the number of live display lists
func (r *Recorder) Lists() int {
	return len(r.lists)
}

// Light returns the parameters of an enabled unit
func (r *Recorder) Light(unit int) (LightParams, bool) {
	p, ok := r.lights[unit]
	return p, ok
}

// Frames returns the number of BeginFrame calls
func (r *Recorder) Frames() int {
	return r.frames
}

// StackDepth exposes the matrix stack depth to check push/pop balance
func (r *Recorder) StackDepth() int {
	return r.stack.Depth()
}

// Reset forgets recorded calls; compiled lists and lights survive
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
	r.draws = r.draws[:0]
}
