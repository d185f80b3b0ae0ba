package recognition

import "time"

// TranscriptionEventArgs is delivered to recognizing and recognized observers.
type TranscriptionEventArgs struct {
	SessionID string
	// Offset is the offset of the phrase for recognized events and the
	// hypothesis duration for recognizing events, as reported by the driver.
	Offset time.Duration
	Result *Result
}

// CanceledEventArgs is delivered to canceled observers.
type CanceledEventArgs struct {
	SessionID    string
	Reason       CancellationReason
	ErrorCode    CancellationErrorCode
	ErrorDetails string
	Properties   Properties
}
