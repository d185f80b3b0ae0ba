package session

import (
	"sync"
	"testing"
)

func TestLifecycle_InitialState(t *testing.T) {
	lc := NewLifecycle()

	if lc.State() != StateIdle {
		t.Errorf("expected StateIdle, got %v", lc.State())
	}
	if lc.IsRecognizing() {
		t.Error("expected IsRecognizing to be false")
	}
}

func TestLifecycle_Begin_TransitionsToRecognizing(t *testing.T) {
	lc := NewLifecycle()

	if err := lc.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lc.State() != StateRecognizing {
		t.Errorf("expected StateRecognizing, got %v", lc.State())
	}
	if !lc.IsRecognizing() {
		t.Error("expected IsRecognizing to be true")
	}
}

func TestLifecycle_Begin_Twice(t *testing.T) {
	lc := NewLifecycle()
	lc.Begin()

	if err := lc.Begin(); err != ErrAlreadyRecognizing {
		t.Errorf("expected ErrAlreadyRecognizing, got %v", err)
	}
}

func TestLifecycle_Begin_AfterStop(t *testing.T) {
	lc := NewLifecycle()
	lc.Stop()

	if err := lc.Begin(); err != ErrSessionStopped {
		t.Errorf("expected ErrSessionStopped, got %v", err)
	}
}

func TestLifecycle_Stop_Idempotent(t *testing.T) {
	lc := NewLifecycle()
	lc.Begin()

	if !lc.Stop() {
		t.Error("expected first Stop to transition")
	}
	if lc.Stop() {
		t.Error("expected second Stop to be a no-op")
	}
	if lc.IsRecognizing() {
		t.Error("expected IsRecognizing to be false after Stop")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "IDLE"},
		{StateRecognizing, "RECOGNIZING"},
		{StateStopped, "STOPPED"},
		{State(99), "UNKNOWN(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	if StateIdle.IsTerminal() || StateRecognizing.IsTerminal() {
		t.Error("expected only StateStopped to be terminal")
	}
	if !StateStopped.IsTerminal() {
		t.Error("expected StateStopped to be terminal")
	}
}

func TestLifecycle_ConcurrentBegin(t *testing.T) {
	lc := NewLifecycle()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := lc.Begin(); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly one Begin to succeed, got %d", successes)
	}
}
