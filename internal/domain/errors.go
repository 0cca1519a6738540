package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrListenTimeout is returned when no speech started within the listen timeout.
	ErrListenTimeout = errors.New("listening timed out waiting for phrase to start")

	// ErrUnintelligible is returned when audio was captured but could not be understood.
	ErrUnintelligible = errors.New("speech was unintelligible")

	// ErrRecognitionUnavailable is returned when the recognition service cannot be reached.
	ErrRecognitionUnavailable = errors.New("speech recognition service unavailable")

	// ErrPageNotFound is returned when the encyclopedia has no page for a topic.
	ErrPageNotFound = errors.New("page not found")

	ErrWeatherUnavailable = errors.New("weather data unavailable")
	ErrAPIKeyMissing      = errors.New("API key missing")
)

// DisambiguationError means a topic matches several distinct entries.
type DisambiguationError struct {
	Topic   string
	Options []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("%q may refer to: %s", e.Topic, strings.Join(e.Options, ", "))
}
