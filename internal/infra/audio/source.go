package audio

import (
	"log/slog"

	"jarvis/internal/application"
)

const (
	SourceMicrophone = "microphone"
	SourceHTTP       = "http"
	SourceFile       = "file"
)

type SourceConfig struct {
	Kind           string
	HTTPAddr       string
	AuthToken      string
	TrustedProxies []string
	FileDir        string
	SampleRate     int
}

// NewSource builds the configured source. Unknown kinds use the microphone,
// and a microphone request in a build without portaudio falls back to HTTP.
func NewSource(cfg SourceConfig, logger *slog.Logger) application.AudioSource {
	switch resolveKind(cfg.Kind, MicrophoneSupported, logger) {
	case SourceHTTP:
		return NewHTTPSource(cfg.HTTPAddr, cfg.AuthToken, logger, cfg.TrustedProxies...)
	case SourceFile:
		return NewFileSource(cfg.FileDir)
	default:
		return NewMicrophoneSource(cfg.SampleRate, logger)
	}
}

func resolveKind(kind string, micSupported bool, logger *slog.Logger) string {
	switch kind {
	case SourceHTTP, SourceFile:
		return kind
	case SourceMicrophone:
	default:
		logger.Warn("unknown audio source, using microphone", "source", kind)
	}

	if !micSupported {
		logger.Warn("microphone capture needs a build with -tags portaudio, using http source")
		return SourceHTTP
	}
	return SourceMicrophone
}
