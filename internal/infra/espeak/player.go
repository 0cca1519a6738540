package espeak

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// BeepPlayer plays WAV clips on the default output device. Clips never
// overlap: Play holds the device until its clip is done.
type BeepPlayer struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

func (p *BeepPlayer) Play(ctx context.Context, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding wav: %w", err)
	}
	defer streamer.Close()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sampleRate != format.SampleRate {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("initializing speaker: %w", err)
		}
		p.sampleRate = format.SampleRate
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

var _ Player = (*BeepPlayer)(nil)
