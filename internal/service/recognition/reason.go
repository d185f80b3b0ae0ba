// Package recognition defines the value types exchanged between the
// conversation adapter and the application: results, reasons and event args.
package recognition

import "fmt"

// ResultReason describes why a result was produced.
type ResultReason int

const (
	// NoMatch indicates speech could not be recognized.
	NoMatch ResultReason = iota
	// Canceled indicates the recognition was canceled.
	Canceled
	// RecognizingSpeech indicates an intermediate (partial) hypothesis.
	RecognizingSpeech
	// RecognizedSpeech indicates a final phrase.
	RecognizedSpeech
)

// String returns the canonical name of the reason.
func (r ResultReason) String() string {
	switch r {
	case NoMatch:
		return "NoMatch"
	case Canceled:
		return "Canceled"
	case RecognizingSpeech:
		return "RecognizingSpeech"
	case RecognizedSpeech:
		return "RecognizedSpeech"
	default:
		return fmt.Sprintf("ResultReason(%d)", int(r))
	}
}

// CancellationReason describes why recognition was canceled.
type CancellationReason int

const (
	// Error indicates a failure during recognition. See the error code and
	// details for more information.
	Error CancellationReason = iota + 1
	// EndOfStream indicates the end of the audio stream was reached.
	EndOfStream
	// CancelledByUser indicates the application stopped recognition.
	CancelledByUser
)

// String returns the canonical name of the reason.
func (r CancellationReason) String() string {
	switch r {
	case Error:
		return "Error"
	case EndOfStream:
		return "EndOfStream"
	case CancelledByUser:
		return "CancelledByUser"
	default:
		return fmt.Sprintf("CancellationReason(%d)", int(r))
	}
}

// CancellationErrorCode classifies the failure behind an Error cancellation.
type CancellationErrorCode int

const (
	NoError CancellationErrorCode = iota
	AuthenticationFailure
	BadRequest
	TooManyRequests
	Forbidden
	ConnectionFailure
	ServiceTimeout
	ServiceError
	ServiceUnavailable
	RuntimeError
)

var errorCodeNames = map[CancellationErrorCode]string{
	NoError:               "NoError",
	AuthenticationFailure: "AuthenticationFailure",
	BadRequest:            "BadRequest",
	TooManyRequests:       "TooManyRequests",
	Forbidden:             "Forbidden",
	ConnectionFailure:     "ConnectionFailure",
	ServiceTimeout:        "ServiceTimeout",
	ServiceError:          "ServiceError",
	ServiceUnavailable:    "ServiceUnavailable",
	RuntimeError:          "RuntimeError",
}

// String returns the canonical name of the code. The name is the encoding
// used when the code travels inside a property bag.
func (c CancellationErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CancellationErrorCode(%d)", int(c))
}

// ParseCancellationErrorCode maps a canonical name back to its code.
func ParseCancellationErrorCode(name string) (CancellationErrorCode, bool) {
	for code, n := range errorCodeNames {
		if n == name {
			return code, true
		}
	}
	return NoError, false
}
