package input

// DefaultHoldFrames is how long a key stays down after a press without a release event
const DefaultHoldFrames = 8

// State is the per-game input snapshot, updated once per frame from window events
// Terminals report presses but not releases, so a pressed key stays down for hold frames
// unless an explicit EventKeyUp arrives
type State struct {
	hold    uint64
	frame   uint64
	keys    map[Key]uint64 // key -> last frame it was pressed
	quit    bool
	mouseX  int
	mouseY  int
	buttons uint8
	width   int
	height  int
}

// NewState creates an input state; hold <= 0 uses DefaultHoldFrames
func NewState(hold int) *State {
	if hold <= 0 {
		hold = DefaultHoldFrames
	}
	return &State{
		hold: uint64(hold),
		keys: make(map[Key]uint64),
	}
}

// Update advances one frame and applies events in order
func (s *State) Update(events []Event) {
	s.frame++
	for _, ev := range events {
		switch ev.Type {
		case EventKey:
			s.keys[ev.Key] = s.frame
		case EventKeyUp:
			delete(s.keys, ev.Key)
		case EventMouse:
			s.mouseX, s.mouseY = ev.X, ev.Y
			s.buttons = ev.Buttons
		case EventResize:
			s.width, s.height = ev.X, ev.Y
		case EventQuit:
			s.quit = true
		}
	}
	for k, at := range s.keys {
		if s.frame-at >= s.hold {
			delete(s.keys, k)
		}
	}
}

// Frame returns the number of updates applied
func (s *State) Frame() uint64 { return s.frame }

// Quit raises the quit flag
func (s *State) Quit() { s.quit = true }

// QuitRequested reports whether the quit flag is set
func (s *State) QuitRequested() bool { return s.quit }

// KeyDown reports whether k is currently held
func (s *State) KeyDown(k Key) bool {
	_, ok := s.keys[k]
	return ok
}

// KeyPressed reports whether k was pressed during the latest update
func (s *State) KeyPressed(k Key) bool {
	at, ok := s.keys[k]
	return ok && at == s.frame
}

// MousePosition returns the last reported pointer cell
func (s *State) MousePosition() (int, int) { return s.mouseX, s.mouseY }

// MouseButton reports whether button i (0 left, 1 right, 2 middle) is down
func (s *State) MouseButton(i int) bool {
	if i < 0 || i > 7 {
		return false
	}
	return s.buttons&(1<<i) != 0
}

// Size returns the last reported window size
func (s *State) Size() (int, int) { return s.width, s.height }

// HorizontalAxis is -1 for left (a, arrow), 1 for right (d, arrow), 0 for none or both
func (s *State) HorizontalAxis() float64 {
	return s.axis(Rune('a'), KeyLeft, Rune('d'), KeyRight)
}

// VerticalAxis is -1 for down (s, arrow), 1 for up (w, arrow)
func (s *State) VerticalAxis() float64 {
	return s.axis(Rune('s'), KeyDown, Rune('w'), KeyUp)
}

func (s *State) axis(neg1, neg2, pos1, pos2 Key) float64 {
	var v float64
	if s.KeyDown(neg1) || s.KeyDown(neg2) {
		v--
	}
	if s.KeyDown(pos1) || s.KeyDown(pos2) {
		v++
	}
	return v
}
