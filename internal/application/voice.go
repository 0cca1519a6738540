package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Voice echoes a line to the console and speaks it.
type Voice struct {
	name   string
	synth  Synthesizer
	out    io.Writer
	logger *slog.Logger
}

func NewVoice(name string, synth Synthesizer, out io.Writer, logger *slog.Logger) *Voice {
	return &Voice{
		name:   name,
		synth:  synth,
		out:    out,
		logger: logger,
	}
}

func (v *Voice) Say(ctx context.Context, text string) {
	fmt.Fprintf(v.out, "%s: %s\n", v.name, text)

	if err := v.synth.Speak(ctx, text); err != nil {
		v.logger.Warn("speaking", "error", err)
	}
}

var _ Speaker = (*Voice)(nil)
