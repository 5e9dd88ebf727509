package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNilComponent      = errors.New("nil component")
	ErrComponentAttached = errors.New("component already attached to an entity")
	ErrComponentNotFound = errors.New("component not attached to this entity")
	ErrTransformRequired = errors.New("entity requires a transform")
	ErrEntityDestroyed   = errors.New("entity destroyed")
	ErrNoScene           = errors.New("entity is not part of a scene")
	ErrForeignScene      = errors.New("entity belongs to another scene")
	ErrCycle             = errors.New("entity cannot be its own ancestor")
	ErrNotChild          = errors.New("entity is not a child")
	ErrNotRunning        = errors.New("game is not running")
	ErrGameStopped       = errors.New("game stopped")
)

// Phase names the frame step in which an error occurred
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseUpdate
	PhaseRender
	PhasePhysics
)

var phaseNames = [...]string{"input", "update", "render", "physics"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// FrameError reports a failure that ended the frame loop
type FrameError struct {
	Frame uint64
	Phase Phase
	// Value is the recovered panic value, nil for returned errors
	Value any
	Err   error
	Stack []byte
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frame %d %s: %v", e.Frame, e.Phase, e.Err)
	}
	return fmt.Sprintf("frame %d %s: panic: %v", e.Frame, e.Phase, e.Value)
}

func (e *FrameError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
