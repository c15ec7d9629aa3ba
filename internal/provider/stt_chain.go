package provider

import (
	"fmt"

	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/logger"
)

// NewTranscriberChain builds the ordered transcriber fallback chain from
// configuration. Providers without credentials are logged and skipped
// rather than causing failure; the chain order follows the configured
// priority list.
// Parameters:
//   - cfg: transcription configuration with the priority list and
//     per-provider settings.
// Returns:
//   - []Transcriber: configured providers in fallback order.
//   - error: non-nil when no provider is usable.
func NewTranscriberChain(cfg *config.TranscriptionConfig) ([]Transcriber, error) {
	var chain []Transcriber

	for _, name := range cfg.Providers {
		var t Transcriber
		switch name {
		case "whisper":
			t = NewWhisperTranscriber(&cfg.Whisper)
		case "deepgram":
			t = NewDeepgramTranscriber(&cfg.Deepgram)
		default:
			logger.Warn("Unknown transcription provider, skipping: name=%s", name)
			continue
		}

		if !t.Configured() {
			logger.Warn("Transcription provider not configured, skipping: name=%s", name)
			continue
		}

		chain = append(chain, t)
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no transcription provider configured")
	}

	return chain, nil
}
