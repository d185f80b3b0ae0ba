package session

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"ai-conversation-transcriber/internal/service/recognition"
)

func TestIDGenerator_Format(t *testing.T) {
	gen := NewIDGenerator()

	id := gen.Next()
	if len(id) != 32 {
		t.Errorf("expected 32 characters, got %d (%s)", len(id), id)
	}
	if strings.Contains(id, "-") {
		t.Errorf("expected no dashes, got %s", id)
	}
	if id != strings.ToUpper(id) {
		t.Errorf("expected upper-case id, got %s", id)
	}
}

func TestIDGenerator_Unique(t *testing.T) {
	gen := NewIDGenerator()
	numGoroutines := 50
	perGoroutine := 20

	var wg sync.WaitGroup
	results := make(chan string, numGoroutines*perGoroutine)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				results <- gen.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		if seen[id] {
			t.Errorf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestIDGenerator_Deterministic(t *testing.T) {
	gen := &IDGenerator{newUUID: func() string { return "0a1b2c3d-aaaa-bbbb-cccc-0123456789ab" }}

	if got := gen.Next(); got != "0A1B2C3DAAAABBBBCCCC0123456789AB" {
		t.Errorf("unexpected id %s", got)
	}
}

func TestRequestSession_New(t *testing.T) {
	s := New(nil)

	if s.SessionID() == "" || s.RequestID() == "" {
		t.Fatal("expected session and request ids to be set")
	}
	if s.SessionID() == s.RequestID() {
		t.Error("expected distinct session and request ids")
	}
	if s.IsRecognizing() {
		t.Error("expected new session to be idle")
	}
}

func TestRequestSession_NewRequest(t *testing.T) {
	s := New(nil)
	before := s.RequestID()

	after := s.NewRequest()
	if after == before {
		t.Error("expected request id to rotate")
	}
	if s.RequestID() != after {
		t.Errorf("expected %s, got %s", after, s.RequestID())
	}
}

func TestRequestSession_TakeCallbacks_ClearsPair(t *testing.T) {
	s := New(nil)
	s.SetCallbacks(
		func(*recognition.Result) error { return nil },
		func(error) {},
	)

	if !s.HasSuccessCallback() {
		t.Fatal("expected success callback to be attached")
	}

	success, failure := s.TakeCallbacks()
	if success == nil || failure == nil {
		t.Fatal("expected first take to return both callbacks")
	}

	success, failure = s.TakeCallbacks()
	if success != nil || failure != nil {
		t.Error("expected second take to return nil callbacks")
	}
	if s.HasSuccessCallback() {
		t.Error("expected success callback to be cleared")
	}
}

func TestRequestSession_TakeCallbacks_SingleWinner(t *testing.T) {
	s := New(nil)

	var invoked int32
	s.SetCallbacks(func(*recognition.Result) error {
		atomic.AddInt32(&invoked, 1)
		return nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if success, _ := s.TakeCallbacks(); success != nil {
				success(nil)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&invoked); got != 1 {
		t.Errorf("expected exactly one invocation, got %d", got)
	}
}

func TestRequestSession_SetCallbacks_Replaces(t *testing.T) {
	s := New(nil)
	errFirst := errors.New("first")
	errSecond := errors.New("second")

	s.SetCallbacks(func(*recognition.Result) error { return errFirst }, nil)
	s.SetCallbacks(func(*recognition.Result) error { return errSecond }, nil)

	success, _ := s.TakeCallbacks()
	if err := success(nil); err != errSecond {
		t.Errorf("expected replacement callback, got %v", err)
	}
}

func TestRequestSession_Status(t *testing.T) {
	s := New(nil)

	st := s.Status()
	if st.SessionID != s.SessionID() || st.RequestID != s.RequestID() {
		t.Errorf("unexpected ids %+v", st)
	}
	if st.State != "IDLE" || st.CallbackPending {
		t.Errorf("unexpected initial status %+v", st)
	}

	s.Lifecycle().Begin()
	s.SetCallbacks(func(*recognition.Result) error { return nil }, nil)

	st = s.Status()
	if st.State != "RECOGNIZING" || !st.CallbackPending {
		t.Errorf("unexpected status %+v", st)
	}
}
