// Package schema validates transcript events before they are published.
package schema

import (
	"errors"
	"fmt"

	"ai-conversation-transcriber/internal/models"
)

// ErrMissingField is returned when a required event field is empty.
var ErrMissingField = errors.New("missing required field")

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate checks the required fields of known transcript events.
// Values of other types are accepted as is.
func (v *Validator) Validate(event any) error {
	switch e := event.(type) {
	case models.TranscriptRecognizing:
		return required(map[string]string{
			"eventType": e.EventType,
			"sessionId": e.SessionID,
		})
	case *models.TranscriptRecognizing:
		return v.Validate(*e)
	case models.TranscriptRecognized:
		return required(map[string]string{
			"eventType": e.EventType,
			"sessionId": e.SessionID,
			"resultId":  e.ResultID,
		})
	case *models.TranscriptRecognized:
		return v.Validate(*e)
	case models.TranscriptCanceled:
		return required(map[string]string{
			"eventType": e.EventType,
			"sessionId": e.SessionID,
			"reason":    e.Reason,
			"errorCode": e.ErrorCode,
		})
	case *models.TranscriptCanceled:
		return v.Validate(*e)
	}
	return nil
}

func required(fields map[string]string) error {
	for _, name := range []string{"eventType", "sessionId", "resultId", "reason", "errorCode"} {
		value, ok := fields[name]
		if ok && value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}
