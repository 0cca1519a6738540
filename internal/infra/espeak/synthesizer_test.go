package espeak

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const espeakNGVoices = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 2  en-029          --/M      English_(Caribbean) gmw/en-029           (en 10)
 2  en-gb           --/M      English_(Great_Britain) gmw/en            (en 2)
 5  en-gb-x-rp      --/F      English_(Received_Pronunciation) gmw/en-GB-x-rp (en 4)
 2  en-us           --/M      English_(America)  gmw/en-US            (en 3)
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePlayer struct {
	clips [][]byte
	err   error
}

func (f *fakePlayer) Play(_ context.Context, wav []byte) error {
	f.clips = append(f.clips, wav)
	return f.err
}

type recordedRun struct {
	name string
	args []string
}

func fakeRunner(out []byte, err error, calls *[]recordedRun) commandRunner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedRun{name: name, args: args})
		return out, err
	}
}

func TestParseVoices(t *testing.T) {
	voices := ParseVoices(espeakNGVoices)

	require.Len(t, voices, 4)
	assert.Equal(t, Voice{Language: "en-029", Gender: "M", Name: "English_(Caribbean)", File: "gmw/en-029"}, voices[0])
	assert.Equal(t, "F", voices[2].Gender)
}

func TestParseVoices_ClassicEspeak(t *testing.T) {
	out := "Pty Language Age/Gender VoiceName       File        Other Langs\n" +
		" 5  en             M  english          default\n" +
		" 5  en-us          M  english-us       en/en-us    (en 3)\n"

	voices := ParseVoices(out)

	require.Len(t, voices, 2)
	assert.Equal(t, "default", voices[0].File)
	assert.Equal(t, "M", voices[1].Gender)
}

func TestSelectVoice(t *testing.T) {
	tests := []struct {
		name   string
		voices []Voice
		want   string
		ok     bool
	}{
		{"none", nil, "", false},
		{"female gender", ParseVoices(espeakNGVoices), "gmw/en-GB-x-rp", true},
		{"name hint", []Voice{{Name: "english", File: "a"}, {Name: "Microsoft_Zira", Gender: "M", File: "zira"}}, "zira", true},
		{"first listed", []Voice{{Name: "english", Gender: "M", File: "a"}, {Name: "scottish", Gender: "M", File: "b"}}, "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVoice(tt.voices)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.File)
		})
	}
}

func TestAmplitude(t *testing.T) {
	assert.Equal(t, 100, Amplitude(1.0))
	assert.Equal(t, 50, Amplitude(0.5))
	assert.Equal(t, 0, Amplitude(-1))
	assert.Equal(t, 200, Amplitude(3))
}

func TestChooseVoice(t *testing.T) {
	var calls []recordedRun
	s := newSynthesizer("espeak-ng", Config{}, &fakePlayer{}, fakeRunner([]byte(espeakNGVoices), nil, &calls), discardLogger())

	voice := s.chooseVoice(context.Background(), Config{Language: "en-IN"})

	assert.Equal(t, "gmw/en-GB-x-rp", voice)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"--voices=en"}, calls[0].args)
}

func TestChooseVoice_ConfiguredWins(t *testing.T) {
	var calls []recordedRun
	s := newSynthesizer("espeak-ng", Config{}, &fakePlayer{}, fakeRunner(nil, nil, &calls), discardLogger())

	assert.Equal(t, "en-us+f3", s.chooseVoice(context.Background(), Config{Voice: "en-us+f3"}))
	assert.Empty(t, calls)
}

func TestChooseVoice_ListingFailureKeepsDefault(t *testing.T) {
	var calls []recordedRun
	s := newSynthesizer("espeak-ng", Config{}, &fakePlayer{}, fakeRunner(nil, errors.New("exit status 1"), &calls), discardLogger())

	assert.Empty(t, s.chooseVoice(context.Background(), Config{Language: "en"}))
}

func TestSpeak(t *testing.T) {
	var calls []recordedRun
	player := &fakePlayer{}
	s := newSynthesizer("/usr/bin/espeak-ng", Config{Volume: 1.0}, player, fakeRunner([]byte("RIFF"), nil, &calls), discardLogger())
	s.voice = "gmw/en"

	err := s.Speak(context.Background(), "Hello there")

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "/usr/bin/espeak-ng", calls[0].name)
	assert.Equal(t, []string{"-s", "175", "-a", "100", "-v", "gmw/en", "--stdout", "Hello there"}, calls[0].args)
	assert.Equal(t, [][]byte{[]byte("RIFF")}, player.clips)
}

func TestSpeak_Failures(t *testing.T) {
	var calls []recordedRun

	s := newSynthesizer("espeak", Config{}, &fakePlayer{}, fakeRunner(nil, errors.New("boom"), &calls), discardLogger())
	assert.Error(t, s.Speak(context.Background(), "hi"))

	player := &fakePlayer{err: errors.New("no device")}
	s = newSynthesizer("espeak", Config{}, player, fakeRunner([]byte("RIFF"), nil, &calls), discardLogger())
	assert.Error(t, s.Speak(context.Background(), "hi"))

	assert.NoError(t, s.Speak(context.Background(), "   "))
}
