package speech

import (
	"fmt"
	"sync"
)

// SynthesisProvider is a text-to-speech engine.
//
// Speak starts reading text aloud and calls onDone exactly once when the
// utterance finishes, errors, or is cancelled. Cancel stops any in-flight
// utterance (its onDone still fires) and is a no-op when idle.
type SynthesisProvider interface {
	Supported() bool
	Speak(text string, onDone func(err error)) error
	Cancel()
}

// Speaker reads instruction steps aloud, one utterance at a time.
//
// Speaking while something is already playing cancels it first — the reader
// jumps between steps rather than queueing them.
type Speaker struct {
	provider SynthesisProvider

	mu      sync.Mutex
	current string // text being spoken, "" when idle
	seq     int    // distinguishes re-speaks of identical text
}

// NewSpeaker wraps a synthesis provider.
func NewSpeaker(provider SynthesisProvider) *Speaker {
	return &Speaker{provider: provider}
}

// Supported reports whether speech synthesis is available at all.
func (s *Speaker) Supported() bool {
	return s.provider != nil && s.provider.Supported()
}

// Speak reads text aloud, cancelling any utterance already in flight.
func (s *Speaker) Speak(text string) error {
	if !s.Supported() {
		return fmt.Errorf("speech: synthesis is not supported")
	}
	if text == "" {
		return fmt.Errorf("speech: nothing to speak")
	}

	s.provider.Cancel()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.current = text
	s.mu.Unlock()

	err := s.provider.Speak(text, func(error) {
		// Completion, error, and cancellation all mean "no longer speaking".
		// The seq guard keeps a stale callback from clearing a newer utterance.
		s.mu.Lock()
		if s.seq == seq {
			s.current = ""
		}
		s.mu.Unlock()
	})
	if err != nil {
		s.mu.Lock()
		if s.seq == seq {
			s.current = ""
		}
		s.mu.Unlock()
		return fmt.Errorf("speech: starting synthesis: %w", err)
	}
	return nil
}

// Toggle speaks text, or stops if that exact text is already playing. This is
// the per-step play/stop button.
func (s *Speaker) Toggle(text string) error {
	s.mu.Lock()
	playing := s.current == text && text != ""
	s.mu.Unlock()

	if playing {
		s.Stop()
		return nil
	}
	return s.Speak(text)
}

// Stop cancels the in-flight utterance, if any.
func (s *Speaker) Stop() {
	if s.provider != nil {
		s.provider.Cancel()
	}
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
}

// Speaking returns the text currently being read and whether anything is.
func (s *Speaker) Speaking() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != ""
}

// Close releases the speaker, cancelling anything in flight. Called when the
// kit detail view unmounts so audio never outlives the view.
func (s *Speaker) Close() {
	s.Stop()
}
