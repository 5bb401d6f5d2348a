// Package speech wraps an external text-to-speech capability behind a
// small interface and enforces the at-most-one-active-utterance rule on
// top of it.
package speech

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options tune how an utterance is spoken.
type Options struct {
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// DefaultOptions matches the narration defaults used by the results page.
var DefaultOptions = Options{Rate: 1, Pitch: 1}

// Synthesizer is the external speech capability. Speak is fire-and-forget;
// no completion callback is available, so callers estimate duration.
type Synthesizer interface {
	Speak(text string, options Options)
	Stop()
}

// DurationPerCharacter is the rough speech-time estimate per character of
// script. The synthesizer exposes no completion event, so the speaking
// flag is cleared on this heuristic instead.
const DurationPerCharacter = 65 * time.Millisecond

// EstimateDuration approximates how long a script takes to speak.
func EstimateDuration(text string) time.Duration {
	return time.Duration(len(text)) * DurationPerCharacter
}

// Narrator drives a Synthesizer while guaranteeing that starting a new
// utterance stops any prior one and that Stop is idempotent.
type Narrator struct {
	synthesizer Synthesizer
	logger      zerolog.Logger

	mu       sync.Mutex
	speaking bool
	timer    *time.Timer

	// newTimer is swapped out in tests for deterministic expiry.
	newTimer func(d time.Duration, f func()) *time.Timer
}

// NewNarrator constructs a narrator around the given synthesizer.
func NewNarrator(synthesizer Synthesizer, logger zerolog.Logger) *Narrator {
	return &Narrator{
		synthesizer: synthesizer,
		logger:      logger.With().Str("component", "narrator").Logger(),
		newTimer:    time.AfterFunc,
	}
}

// Speak starts a new utterance, cancelling any utterance in flight.
// Empty scripts are ignored.
func (n *Narrator) Speak(text string, options Options) {
	if strings.TrimSpace(text) == "" {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.speaking {
		n.synthesizer.Stop()
		n.cancelTimerLocked()
	}

	n.synthesizer.Speak(text, options)
	n.speaking = true
	n.timer = n.newTimer(EstimateDuration(text), n.expire)

	n.logger.Debug().Int("script_len", len(text)).Msg("narration started")
}

// Stop cancels the active utterance. Stopping when nothing is speaking is
// a no-op.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.speaking {
		return
	}

	n.synthesizer.Stop()
	n.cancelTimerLocked()
	n.speaking = false

	n.logger.Debug().Msg("narration stopped")
}

// Speaking reports whether an utterance is believed to be in flight.
func (n *Narrator) Speaking() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speaking
}

func (n *Narrator) expire() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.speaking = false
	n.timer = nil
}

func (n *Narrator) cancelTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
