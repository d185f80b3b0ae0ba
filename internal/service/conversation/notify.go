package conversation

import "fmt"

// HandlerPanicError wraps a value recovered from a panicking handler.
type HandlerPanicError struct {
	Value any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// notifySafely runs an application handler and discards any panic it raises.
// Handler misbehavior must never reach the protocol machinery.
func (a *Adapter) notifySafely(handler string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.metrics.RecordHandlerFailure(handler)
			a.log.Warn().
				Str("handler", handler).
				Interface("panic", r).
				Msg("Handler failure swallowed")
		}
	}()
	fn()
}

// invokeCallback runs a completion callback and reports its failure,
// converting a panic into a *HandlerPanicError.
func invokeCallback(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{Value: r}
		}
	}()
	return fn()
}
