//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gordonklaus/portaudio"

	"jarvis/internal/domain"
)

const framesPerBuffer = 1024

const MicrophoneSupported = true

type MicrophoneSource struct {
	sampleRate int
	logger     *slog.Logger
}

func NewMicrophoneSource(sampleRate int, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	m.logger.Info("microphone ready", "sampleRate", m.sampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	return portaudio.Terminate()
}

// NextCommand opens the default input for one utterance and always closes it
// before returning.
func (m *MicrophoneSource) NextCommand(ctx context.Context, opts domain.ListenOptions) ([]byte, error) {
	buffer := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	frameDur := time.Duration(framesPerBuffer) * time.Second / time.Duration(m.sampleRate)

	ambient, err := m.calibrate(ctx, stream, buffer, frameDur, opts.AmbientDuration)
	if err != nil {
		return nil, err
	}
	threshold := SpeechThreshold(ambient)
	m.logger.Debug("calibrated", "ambient", ambient, "threshold", threshold)

	recorder := newPhraseRecorder(threshold, frameDur, opts)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		done, err := recorder.Feed(append([]int16(nil), buffer...))
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	return EncodeWAV(recorder.Samples(), m.sampleRate)
}

// calibrate returns the mean RMS energy over d of ambient audio.
func (m *MicrophoneSource) calibrate(ctx context.Context, stream *portaudio.Stream, buffer []int16, frameDur, d time.Duration) (float64, error) {
	var total float64
	frames := 0
	for elapsed := time.Duration(0); elapsed < d; elapsed += frameDur {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := stream.Read(); err != nil {
			return 0, fmt.Errorf("reading ambient audio: %w", err)
		}
		total += RMS(buffer)
		frames++
	}
	if frames == 0 {
		return 0, nil
	}
	return total / float64(frames), nil
}
