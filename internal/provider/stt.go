package provider

import (
	"context"
	"io"
)

// TranscriptSegment is one timed span of recognized speech.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptResult is the normalized output of a speech-to-text provider.
type TranscriptResult struct {
	Text       string
	Language   string
	Confidence float64
	Segments   []TranscriptSegment
}

// MediaInput describes the media object handed to a transcriber.
type MediaInput struct {
	Reader   io.Reader
	FileName string
	MimeType string
}

// Transcriber converts stored media into text. Implementations wrap a
// single external speech-to-text service.
type Transcriber interface {
	// Name identifies the provider in logs and persisted records.
	Name() string

	// Configured reports whether the provider has credentials and can
	// be part of the fallback chain.
	Configured() bool

	// Transcribe submits the media and blocks until the provider
	// returns a transcript or an error.
	Transcribe(ctx context.Context, media MediaInput) (*TranscriptResult, error)
}
