package audio

import (
	"bytes"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAV_RoundTrip(t *testing.T) {
	samples := []int16{0, 1200, -1200, 32767, -32768, 42}

	data, err := EncodeWAV(samples, 16000)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))

	dec := wav.NewDecoder(bytes.NewReader(data))
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)

	got := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		got[i] = int16(v)
	}
	assert.Equal(t, samples, got)
}
