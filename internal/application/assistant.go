package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"jarvis/internal/domain"
)

const msgInterrupted = "Stopping now. Bye!"

// farewellTimeout bounds the last line spoken after an interrupt.
const farewellTimeout = 10 * time.Second

type Options struct {
	Greeting string
	Listen   domain.ListenOptions
	Out      io.Writer
}

type Assistant struct {
	audio      AudioSource
	listener   *Listener
	dispatcher *Dispatcher
	speaker    Speaker
	opts       Options
	logger     *slog.Logger
}

func NewAssistant(
	audio AudioSource,
	listener *Listener,
	dispatcher *Dispatcher,
	speaker Speaker,
	opts Options,
	logger *slog.Logger,
) *Assistant {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Assistant{
		audio:      audio,
		listener:   listener,
		dispatcher: dispatcher,
		speaker:    speaker,
		opts:       opts,
		logger:     logger,
	}
}

// Run greets, then listens and dispatches until an exit intent or until ctx
// is cancelled. Cancellation is a normal shutdown and returns nil.
func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("starting audio source", "source", a.audio.Name())
	if err := a.audio.Start(ctx); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer a.audio.Stop()

	a.speaker.Say(ctx, a.opts.Greeting)

	a.logger.Info("assistant ready, listening for commands")

	for {
		if ctx.Err() != nil {
			a.interrupted()
			return nil
		}

		if !a.turn(ctx) {
			a.logger.Info("exit requested")
			return nil
		}
	}
}

func (a *Assistant) turn(ctx context.Context) bool {
	query := a.listener.Listen(ctx, a.opts.Listen)
	if ctx.Err() != nil {
		return true
	}

	return a.dispatcher.Handle(ctx, query)
}

func (a *Assistant) interrupted() {
	fmt.Fprintln(a.opts.Out, "\n^C")

	ctx, cancel := context.WithTimeout(context.Background(), farewellTimeout)
	defer cancel()
	a.speaker.Say(ctx, msgInterrupted)
}
