package speech

import (
	"errors"
	"testing"
)

// fakeSynthesizer records utterances and lets tests complete or fail them.
type fakeSynthesizer struct {
	supported bool
	speakErr  error
	spoken    []string
	cancels   int
	onDone    func(err error)
}

func (f *fakeSynthesizer) Supported() bool { return f.supported }

func (f *fakeSynthesizer) Speak(text string, onDone func(err error)) error {
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, text)
	f.onDone = onDone
	return nil
}

func (f *fakeSynthesizer) Cancel() {
	f.cancels++
	if f.onDone != nil {
		done := f.onDone
		f.onDone = nil
		done(errors.New("cancelled"))
	}
}

func TestSpeakerUnsupported(t *testing.T) {
	s := NewSpeaker(&fakeSynthesizer{supported: false})

	if s.Supported() {
		t.Error("Supported() = true, want false")
	}
	if err := s.Speak("step one"); err == nil {
		t.Error("Speak() on an unsupported provider should fail")
	}
	if NewSpeaker(nil).Supported() {
		t.Error("Supported() with nil provider = true, want false")
	}
}

func TestSpeakerSpeakAndComplete(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Speak("Cut the plank to length."); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if text, ok := s.Speaking(); !ok || text != "Cut the plank to length." {
		t.Errorf("Speaking() = (%q, %v), want the utterance in flight", text, ok)
	}

	syn.onDone(nil)

	if _, ok := s.Speaking(); ok {
		t.Error("Speaking() still reports in flight after completion")
	}
}

func TestSpeakerCancelsBeforeNextUtterance(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Speak("step one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Speak("step two"); err != nil {
		t.Fatal(err)
	}

	if syn.cancels == 0 {
		t.Error("second Speak() did not cancel the first utterance")
	}
	if text, ok := s.Speaking(); !ok || text != "step two" {
		t.Errorf("Speaking() = (%q, %v), want the second utterance", text, ok)
	}
	if got := len(syn.spoken); got != 2 {
		t.Errorf("provider spoke %d utterances, want 2", got)
	}
}

func TestSpeakerToggle(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Toggle("step one"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Speaking(); !ok {
		t.Fatal("Toggle() did not start speaking")
	}

	// Same text again: stop, don't restart.
	if err := s.Toggle("step one"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Speaking(); ok {
		t.Error("Toggle() with the playing text should stop it")
	}
	if got := len(syn.spoken); got != 1 {
		t.Errorf("provider spoke %d utterances, want 1", got)
	}

	// Different text: jump to the new step.
	if err := s.Toggle("step two"); err != nil {
		t.Fatal(err)
	}
	if text, ok := s.Speaking(); !ok || text != "step two" {
		t.Errorf("Speaking() = (%q, %v), want step two", text, ok)
	}
}

func TestSpeakerErrorClearsState(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Speak("step one"); err != nil {
		t.Fatal(err)
	}
	syn.onDone(errors.New("audio device lost"))

	if _, ok := s.Speaking(); ok {
		t.Error("Speaking() still reports in flight after an engine error")
	}
}

func TestSpeakerSpeakStartFailure(t *testing.T) {
	syn := &fakeSynthesizer{supported: true, speakErr: errors.New("busy")}
	s := NewSpeaker(syn)

	if err := s.Speak("step one"); err == nil {
		t.Fatal("Speak() should surface the provider error")
	}
	if _, ok := s.Speaking(); ok {
		t.Error("Speaking() reports in flight after a failed start")
	}
}

func TestSpeakerStaleCallbackDoesNotClearNewUtterance(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Speak("step one"); err != nil {
		t.Fatal(err)
	}
	first := syn.onDone
	syn.onDone = nil // keep Cancel from consuming it

	if err := s.Speak("step two"); err != nil {
		t.Fatal(err)
	}
	first(errors.New("cancelled")) // late delivery of the first utterance's end

	if text, ok := s.Speaking(); !ok || text != "step two" {
		t.Errorf("Speaking() = (%q, %v), want step two still in flight", text, ok)
	}
}

func TestSpeakerRejectsEmptyText(t *testing.T) {
	s := NewSpeaker(&fakeSynthesizer{supported: true})
	if err := s.Speak(""); err == nil {
		t.Error("Speak(\"\") should fail")
	}
}

func TestSpeakerClose(t *testing.T) {
	syn := &fakeSynthesizer{supported: true}
	s := NewSpeaker(syn)

	if err := s.Speak("step one"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, ok := s.Speaking(); ok {
		t.Error("Speaking() reports in flight after Close")
	}
	if syn.cancels == 0 {
		t.Error("Close() did not cancel the provider")
	}
}
