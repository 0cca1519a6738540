package application

import (
	"context"
	"fmt"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer turns text into sound. Speak blocks until playback completes.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Speaker is what the use cases talk through.
type Speaker interface {
	Say(ctx context.Context, text string)
}

// NoopSTT is a no-op speech-to-text client for text-only sources.
// It returns an error if called with actual audio data.
type NoopSTT struct{}

func (n *NoopSTT) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", fmt.Errorf("speech-to-text not configured: set openai.api_key to enable audio transcription")
}

// NoopSynthesizer keeps the assistant text-only.
type NoopSynthesizer struct{}

func (n *NoopSynthesizer) Speak(_ context.Context, _ string) error {
	return nil
}
