package application

import (
	"context"

	"jarvis/internal/domain"
)

type AudioSource interface {
	Start(ctx context.Context) error
	Stop() error
	// NextCommand blocks for one utterance and returns it as WAV bytes or a
	// text command marker. It returns domain.ErrListenTimeout when nothing
	// started within opts.Timeout.
	NextCommand(ctx context.Context, opts domain.ListenOptions) ([]byte, error)
	Name() string
}
