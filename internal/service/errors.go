package service

import "fmt"

// ProviderError marks a failure of an external service after any local
// fallback was exhausted. Handlers map it to a server-side error code.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ValidationError marks a missing or malformed caller-supplied field.
// Never retried; handlers map it to a client error code.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
