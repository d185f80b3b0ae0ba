package conversation

import (
	"ai-conversation-transcriber/internal/service/recognition"
)

// Cancel reports a terminal failure or cancellation of the request.
//
// The canceled observer, if attached, receives the reason, error code and
// details. Then the outstanding success callback, if any, receives a result
// with reason Canceled and no content; cancellation completes the request
// through the success channel. Failures from either handler are swallowed.
func (a *Adapter) Cancel(
	sessionID, requestID string,
	reason recognition.CancellationReason,
	errorCode recognition.CancellationErrorCode,
	errorDetails string,
) {
	a.metrics.RecordRecognitionEvent("canceled")
	a.metrics.RecordCancellation(reason.String(), errorCode.String())

	a.log.Info().
		Str("requestId", requestID).
		Str("reason", reason.String()).
		Str("errorCode", errorCode.String()).
		Str("errorDetails", errorDetails).
		Msg("Recognition canceled")

	props := recognition.WithErrorCode(errorCode)

	if fn := a.currentObservers().Canceled; fn != nil {
		args := recognition.CanceledEventArgs{
			SessionID:    sessionID,
			Reason:       reason,
			ErrorCode:    errorCode,
			ErrorDetails: errorDetails,
			Properties:   props.Clone(),
		}
		a.notifySafely("canceled_observer", func() { fn(args) })
	}

	success, _ := a.session.TakeCallbacks()
	if success == nil {
		return
	}

	result := recognition.NewCanceledResult(requestID, errorCode, errorDetails)
	if err := invokeCallback(func() error { return success(result) }); err != nil {
		a.metrics.RecordHandlerFailure("success_callback")
		a.metrics.RecordCallback("error_swallowed")
		a.log.Warn().Err(err).Msg("Success callback failed during cancellation")
		return
	}
	a.metrics.RecordCallback("canceled")
}
