package provider

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBase     = time.Second
)

// retryWithBackoff runs fn up to attempts times with exponential backoff
// and up to one second of jitter between tries. The last error is
// returned when all attempts fail.
func retryWithBackoff(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultRetryBase
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		delay := time.Duration(float64(base)*math.Pow(2, float64(attempt))) +
			time.Duration(rand.Int63n(int64(time.Second)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
