// Package core holds process-level crash handling shared by the executables and the terminal event pump
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
)

// Terminal restore sequences for when no screen is registered
var resetSequences = []string{
	"\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1006l", // mouse tracking off
	"\x1b[?25h",   // cursor show
	"\x1b[?1049l", // alt screen exit
	"\x1b[0m",     // SGR reset
	"\x1b[?7h",    // auto wrap on
}

// SetCrashScreen registers the screen finalized by HandleCrash; nil unregisters
func SetCrashScreen(s tcell.Screen) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// EmergencyReset writes the terminal restore sequences to w
func EmergencyReset(w io.Writer) {
	for _, seq := range resetSequences {
		io.WriteString(w, seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

// WriteCrash prints the panic value and stack in the crash report format
func WriteCrash(w io.Writer, r any, stack []byte) {
	fmt.Fprintf(w, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(w, "Stack Trace:\n%s\n", stack)
}

// HandleCrash is the unified panic handler that restores the terminal, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	s := crashScreen
	crashScreen = nil
	crashMu.Unlock()

	if s != nil {
		s.Fini()
	} else {
		EmergencyReset(os.Stdout)
	}

	WriteCrash(os.Stderr, r, debug.Stack())
	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
