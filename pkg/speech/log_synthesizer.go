package speech

import "github.com/rs/zerolog"

// LogSynthesizer is the default backend when no real text-to-speech
// engine is configured: it records utterances in the structured log.
// Browsers normally speak the script client-side, so the server-side
// synthesizer only needs to honour the speak/stop contract.
type LogSynthesizer struct {
	logger zerolog.Logger
}

// NewLogSynthesizer constructs the logging backend.
func NewLogSynthesizer(logger zerolog.Logger) *LogSynthesizer {
	return &LogSynthesizer{logger: logger.With().Str("component", "speech").Logger()}
}

// Speak logs the utterance.
func (s *LogSynthesizer) Speak(text string, options Options) {
	s.logger.Info().
		Float64("rate", options.Rate).
		Float64("pitch", options.Pitch).
		Int("script_len", len(text)).
		Msg("speaking narration script")
}

// Stop logs the cancellation.
func (s *LogSynthesizer) Stop() {
	s.logger.Info().Msg("narration cancelled")
}
