package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

// EncodeWAV wraps mono 16-bit samples in a WAV container.
// The encoder needs to seek back to patch the header, so it writes to a
// temporary file first.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "jarvis-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating temp wav: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(tmp, sampleRate, bitDepth, numChannels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalizing wav: %w", err)
	}

	out, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("reading temp wav: %w", err)
	}
	return out, nil
}
