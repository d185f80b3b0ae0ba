package recognition

import "time"

// ResultOptions carries the fields used to construct a Result.
type ResultOptions struct {
	ResultID                    string
	Reason                      ResultReason
	Text                        string
	Duration                    time.Duration
	Offset                      time.Duration
	Language                    string
	LanguageDetectionConfidence string
	SpeakerID                   string
	ErrorDetails                string
	JSON                        string
	Properties                  Properties
}

// Result describes one recognition outcome. It is immutable once built.
type Result struct {
	resultID                    string
	reason                      ResultReason
	text                        string
	duration                    time.Duration
	offset                      time.Duration
	language                    string
	languageDetectionConfidence string
	speakerID                   string
	errorDetails                string
	json                        string
	properties                  Properties
}

// NewResult builds a Result. The property bag is copied.
func NewResult(opts ResultOptions) *Result {
	return &Result{
		resultID:                    opts.ResultID,
		reason:                      opts.Reason,
		text:                        opts.Text,
		duration:                    opts.Duration,
		offset:                      opts.Offset,
		language:                    opts.Language,
		languageDetectionConfidence: opts.LanguageDetectionConfidence,
		speakerID:                   opts.SpeakerID,
		errorDetails:                opts.ErrorDetails,
		json:                        opts.JSON,
		properties:                  opts.Properties.Clone(),
	}
}

// NewCanceledResult builds the terminal result delivered when a request is
// canceled: every content field is empty and the error code is encoded in
// the property bag.
func NewCanceledResult(requestID string, code CancellationErrorCode, errorDetails string) *Result {
	return NewResult(ResultOptions{
		ResultID:     requestID,
		Reason:       Canceled,
		ErrorDetails: errorDetails,
		Properties:   WithErrorCode(code),
	})
}

func (r *Result) ResultID() string { return r.resultID }
func (r *Result) Reason() ResultReason { return r.reason }
func (r *Result) Text() string { return r.text }
func (r *Result) Duration() time.Duration { return r.duration }
func (r *Result) Offset() time.Duration { return r.offset }
func (r *Result) Language() string { return r.language }
func (r *Result) LanguageDetectionConfidence() string { return r.languageDetectionConfidence }
func (r *Result) SpeakerID() string { return r.speakerID }
func (r *Result) ErrorDetails() string { return r.errorDetails }
func (r *Result) JSON() string { return r.json }

// Properties returns a copy of the result's property bag.
func (r *Result) Properties() Properties {
	return r.properties.Clone()
}
