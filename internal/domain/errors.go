package domain

import "errors"

// Sentinel errors shared by the pipeline stages and repositories.
var (
	// ErrInvalidTransition is returned when a status update is requested
	// from a state that does not allow it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyTranscript is returned when analysis is requested for a
	// video whose transcript is empty after trimming.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrIncompleteBirthData is returned when chart calculation is
	// requested without the required birth fields.
	ErrIncompleteBirthData = errors.New("incomplete birth data")

	// ErrNoEmbedding is returned when matching is requested for a
	// profile that has no embedding yet.
	ErrNoEmbedding = errors.New("profile has no embedding")
)
