package domain

import "time"

// ListenOptions bounds one listening cycle.
type ListenOptions struct {
	// Timeout is how long to wait for speech to start.
	Timeout time.Duration
	// PhraseTimeLimit caps the length of a single phrase.
	PhraseTimeLimit time.Duration
	// AmbientDuration is spent calibrating against background noise.
	AmbientDuration time.Duration
}

func DefaultListenOptions() ListenOptions {
	return ListenOptions{
		Timeout:         4 * time.Second,
		PhraseTimeLimit: 10 * time.Second,
		AmbientDuration: 600 * time.Millisecond,
	}
}

// SummaryOptions controls an encyclopedia summary request.
type SummaryOptions struct {
	Sentences   int
	AutoSuggest bool
	Redirect    bool
}

func DefaultSummaryOptions(sentences int) SummaryOptions {
	if sentences <= 0 {
		sentences = 2
	}
	return SummaryOptions{
		Sentences:   sentences,
		AutoSuggest: true,
		Redirect:    true,
	}
}
