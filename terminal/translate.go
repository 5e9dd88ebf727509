package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ngine/input"
)

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
}

// Translate converts a tcell event; ok is false for events the engine ignores
func Translate(ev tcell.Event) (input.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev.Key(), ev.Rune(), ev.Modifiers())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return translateMouse(x, y, ev.Buttons()), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return input.Event{Type: input.EventResize, X: w, Y: h}, true
	}
	return input.Event{}, false
}

// translateKey maps Esc, Ctrl-C and Ctrl-Q to quit, printable runes to their lowercase key
func translateKey(k tcell.Key, r rune, mod tcell.ModMask) (input.Event, bool) {
	switch {
	case k == tcell.KeyEscape || k == tcell.KeyCtrlC:
		return input.Event{Type: input.EventQuit}, true
	case k == tcell.KeyRune && (r == 'q' || r == 'Q') && mod&tcell.ModCtrl != 0:
		return input.Event{Type: input.EventQuit}, true
	case k == tcell.KeyRune:
		return input.Event{Type: input.EventKey, Key: input.Rune(r)}, true
	}
	if key, ok := specialKeys[k]; ok {
		return input.Event{Type: input.EventKey, Key: key}, true
	}
	return input.Event{}, false
}

func translateMouse(x, y int, b tcell.ButtonMask) input.Event {
	ev := input.Event{Type: input.EventMouse, X: x, Y: y}
	if b&tcell.Button1 != 0 {
		ev.Buttons |= input.ButtonLeft
	}
	if b&tcell.Button2 != 0 {
		ev.Buttons |= input.ButtonRight
	}
	if b&tcell.Button3 != 0 {
		ev.Buttons |= input.ButtonMiddle
	}
	return ev
}
