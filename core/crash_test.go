package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	out := buf.String()
	assert.Contains(t, out, "\x1b[?25h")
	assert.Contains(t, out, "\x1b[?1049l")
	assert.True(t, strings.HasSuffix(out, "\x1b[?7h"))
}

func TestWriteCrash(t *testing.T) {
	var buf bytes.Buffer
	WriteCrash(&buf, errors.New("boom"), []byte("goroutine 1"))
	assert.Contains(t, buf.String(), "CRASH DETECTED: boom")
	assert.Contains(t, buf.String(), "Stack Trace:\ngoroutine 1")
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	SetCrashScreen(s)
	defer SetCrashScreen(nil)

	HandleCrash(nil)

	crashMu.Lock()
	defer crashMu.Unlock()
	assert.Same(t, s, crashScreen)
}
