package input

import "unicode"

// Key identifies a keyboard key: printable keys are their lowercase rune, special keys sit above the Unicode range
type Key int32

const (
	KeyNone Key = 0
)

const (
	KeyUp Key = iota + 0x110000
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
)

// KeySpace is the space bar
const KeySpace Key = ' '

// Rune returns the key for a printable character, case-folded
func Rune(r rune) Key {
	return Key(unicode.ToLower(r))
}

var specialNames = map[Key]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeySpace:     "space",
}

func (k Key) String() string {
	if name, ok := specialNames[k]; ok {
		return name
	}
	if k > 0 && k < 0x110000 {
		return string(rune(k))
	}
	return "none"
}

// EventType discriminates window events
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventKeyUp
	EventMouse
	EventResize
	EventQuit
)

// Event is a window-system neutral input event
type Event struct {
	Type    EventType
	Key     Key
	X, Y    int // mouse cell or new size
	Buttons uint8
}

// Mouse button bits
const (
	ButtonLeft uint8 = 1 << iota
	ButtonRight
	ButtonMiddle
)
