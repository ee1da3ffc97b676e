// Package speech models the voice I/O behaviour around the kit-creation form
// and the instruction reader.
//
// The actual engines (microphone capture, audio output) are platform
// capabilities injected as providers; this package owns the rules layered on
// top: how a dictation transcript merges into the prompt buffer, and that at
// most one utterance is ever spoken at a time. Providers that are not
// available simply report unsupported and the features degrade to no-ops the
// caller can hide.
package speech

import (
	"fmt"
	"sync"
)

// RecognitionProvider is a continuous speech-recognition engine.
//
// Start begins a session: the engine calls onTranscript with the full
// accumulated transcript so far (each call replaces the previous one, it is
// not a delta) and onEnd exactly once when the session ends — whether by
// Stop, by the engine giving up, or by error. Stop is idempotent.
type RecognitionProvider interface {
	Supported() bool
	Start(onTranscript func(string), onEnd func()) error
	Stop()
}

// Dictation drives one recognition session at a time and merges its
// transcript into a text buffer.
type Dictation struct {
	provider RecognitionProvider

	mu         sync.Mutex
	listening  bool
	base       string // buffer content frozen when listening started
	transcript string // full transcript of the current/last session
}

// NewDictation wraps a recognition provider.
func NewDictation(provider RecognitionProvider) *Dictation {
	return &Dictation{provider: provider}
}

// Supported reports whether speech recognition is available at all.
func (d *Dictation) Supported() bool {
	return d.provider != nil && d.provider.Supported()
}

// Start begins listening, freezing currentText as the base the transcript is
// appended to. Starting while already listening is an error — the caller
// toggles, it never stacks sessions.
func (d *Dictation) Start(currentText string) error {
	if !d.Supported() {
		return fmt.Errorf("speech: recognition is not supported")
	}

	d.mu.Lock()
	if d.listening {
		d.mu.Unlock()
		return fmt.Errorf("speech: already listening")
	}
	d.listening = true
	d.base = currentText
	d.transcript = ""
	d.mu.Unlock()

	if err := d.provider.Start(d.handleTranscript, d.handleEnd); err != nil {
		d.mu.Lock()
		d.listening = false
		d.mu.Unlock()
		return fmt.Errorf("speech: starting recognition: %w", err)
	}
	return nil
}

// Stop ends the session explicitly. The provider's onEnd also clears the
// listening flag, so engine-initiated endings (silence timeout) behave the
// same as a user-initiated stop.
func (d *Dictation) Stop() {
	if d.provider != nil {
		d.provider.Stop()
	}
	d.handleEnd()
}

// Listening reports whether a session is in flight.
func (d *Dictation) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Text returns the merged buffer: the frozen base plus the current
// transcript, joined by a single space when both are non-empty. Each
// transcript update replaces the previous one, so interim results never
// duplicate.
func (d *Dictation) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.base == "":
		return d.transcript
	case d.transcript == "":
		return d.base
	default:
		return d.base + " " + d.transcript
	}
}

func (d *Dictation) handleTranscript(transcript string) {
	d.mu.Lock()
	d.transcript = transcript
	d.mu.Unlock()
}

func (d *Dictation) handleEnd() {
	d.mu.Lock()
	d.listening = false
	d.mu.Unlock()
}
