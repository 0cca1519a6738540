package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"jarvis/internal/domain"
)

const (
	msgNotCaught         = "Sorry, I didn't catch that."
	msgSpeechUnavailable = "Speech service is unavailable right now."
)

// Listener captures one utterance and turns it into normalized text.
// It never returns an error: every failure becomes an empty utterance.
type Listener struct {
	audio   AudioSource
	stt     SpeechToText
	speaker Speaker
	out     io.Writer
	logger  *slog.Logger
}

func NewListener(audio AudioSource, stt SpeechToText, speaker Speaker, out io.Writer, logger *slog.Logger) *Listener {
	return &Listener{
		audio:   audio,
		stt:     stt,
		speaker: speaker,
		out:     out,
		logger:  logger,
	}
}

func (l *Listener) Listen(ctx context.Context, opts domain.ListenOptions) string {
	l.logger.Debug("listening", "source", l.audio.Name(), "timeout", opts.Timeout)

	data, err := l.audio.NextCommand(ctx, opts)
	if err != nil {
		if !errors.Is(err, domain.ErrListenTimeout) && ctx.Err() == nil {
			l.logger.Error("capturing audio", "error", err)
		}
		return ""
	}

	if len(data) == 0 {
		return ""
	}

	var text string

	if directText, isText := isTextCommand(data); isText {
		l.logger.Info("received text command directly", "text", directText)
		text = directText
	} else {
		l.logger.Debug("recognizing", "bytes", len(data))

		text, err = l.stt.Transcribe(ctx, data)
		if err != nil {
			if ctx.Err() != nil {
				return ""
			}
			if errors.Is(err, domain.ErrUnintelligible) {
				l.speaker.Say(ctx, msgNotCaught)
				return ""
			}
			l.logger.Warn("transcribing", "error", err)
			l.speaker.Say(ctx, msgSpeechUnavailable)
			return ""
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	fmt.Fprintf(l.out, "You: %s\n", text)

	return strings.ToLower(text)
}

func isTextCommand(data []byte) (string, bool) {
	if len(data) > len(domain.TextCommandPrefix) && string(data[:len(domain.TextCommandPrefix)]) == domain.TextCommandPrefix {
		return string(data[len(domain.TextCommandPrefix):]), true
	}
	return "", false
}
