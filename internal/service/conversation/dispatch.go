package conversation

import (
	"time"

	"ai-conversation-transcriber/internal/service/recognition"
)

// OnRecognizing relays a partial result to the recognizing observer.
// Partial results are not terminal and never touch the callbacks.
func (a *Adapter) OnRecognizing(result *recognition.Result, duration time.Duration, sessionID string) {
	a.metrics.RecordRecognitionEvent("recognizing")

	if fn := a.currentObservers().Recognizing; fn != nil {
		args := recognition.TranscriptionEventArgs{
			SessionID: sessionID,
			Offset:    duration,
			Result:    result,
		}
		a.notifySafely("recognizing_observer", func() { fn(args) })
	}
}

// OnRecognized relays a final result to the recognized observer, then
// resolves the outstanding success callback, if any, with the result.
//
// The callback pair is cleared whether or not a success callback was
// attached. An error or panic from the success callback is forwarded to the
// error callback when one is attached.
func (a *Adapter) OnRecognized(result *recognition.Result, offset time.Duration, sessionID string) {
	a.metrics.RecordRecognitionEvent("recognized")

	if fn := a.currentObservers().Recognized; fn != nil {
		args := recognition.TranscriptionEventArgs{
			SessionID: sessionID,
			Offset:    offset,
			Result:    result,
		}
		a.notifySafely("recognized_observer", func() { fn(args) })
	}

	success, failure := a.session.TakeCallbacks()
	if success == nil {
		return
	}

	err := invokeCallback(func() error { return success(result) })
	if err == nil {
		a.metrics.RecordCallback("delivered")
		return
	}

	a.metrics.RecordHandlerFailure("success_callback")
	if failure == nil {
		a.metrics.RecordCallback("error_swallowed")
		a.log.Warn().Err(err).Msg("Success callback failed, no error callback attached")
		return
	}

	a.metrics.RecordCallback("error_forwarded")
	a.notifySafely("error_callback", func() { failure(err) })
}
