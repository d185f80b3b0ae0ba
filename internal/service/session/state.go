// Package session tracks the state of a recognition request session and owns
// its single-shot completion callbacks.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle state of a session.
type State int

const (
	// StateIdle - Session created, recognition not started.
	StateIdle State = iota
	// StateRecognizing - Recognition is running, speech events may be sent.
	StateRecognizing
	// StateStopped - Recognition stopped. Terminal.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRecognizing:
		return "RECOGNIZING"
	case StateStopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the state is terminal.
func (s State) IsTerminal() bool {
	return s == StateStopped
}

// Errors for invalid state transitions.
var (
	ErrAlreadyRecognizing = errors.New("session is already recognizing")
	ErrSessionStopped     = errors.New("session is stopped")
)

// Lifecycle manages the state machine for a single session.
// Thread-safe for concurrent access.
//
// State transitions:
//
//	IDLE → RECOGNIZING → STOPPED
//	  │                    ▲
//	  └──── Stop() ────────┘
type Lifecycle struct {
	mu    sync.RWMutex
	state State
}

// NewLifecycle creates a new lifecycle in IDLE state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateIdle}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsRecognizing returns true while recognition is running.
func (l *Lifecycle) IsRecognizing() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateRecognizing
}

// Begin transitions IDLE to RECOGNIZING.
func (l *Lifecycle) Begin() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateIdle:
		l.state = StateRecognizing
		return nil
	case StateRecognizing:
		return ErrAlreadyRecognizing
	case StateStopped:
		return ErrSessionStopped
	default:
		return fmt.Errorf("unexpected state: %v", l.state)
	}
}

// Stop transitions the session to STOPPED from any state.
// Returns true if the state changed, false if it was already stopped.
func (l *Lifecycle) Stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.IsTerminal() {
		return false
	}
	l.state = StateStopped
	return true
}
