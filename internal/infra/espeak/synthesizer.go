package espeak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"jarvis/internal/application"
)

const (
	DefaultRate   = 175
	DefaultVolume = 1.0
)

var binaries = []string{"espeak-ng", "espeak"}

var ErrNotInstalled = errors.New("speech not available: install espeak-ng or espeak")

// Player plays a complete WAV clip and blocks until it has finished.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

type Config struct {
	Binary   string
	Rate     int
	Volume   float64
	Voice    string
	Language string
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Synthesizer renders speech with the espeak command line and hands the
// resulting WAV to a Player.
type Synthesizer struct {
	binary    string
	rate      int
	amplitude int
	voice     string
	player    Player
	run       commandRunner
	logger    *slog.Logger
}

// New locates the engine and picks a voice. Voice selection is best-effort:
// if voices cannot be listed the engine default is kept.
func New(ctx context.Context, cfg Config, player Player, logger *slog.Logger) (*Synthesizer, error) {
	binary, err := lookupBinary(cfg.Binary)
	if err != nil {
		return nil, err
	}

	s := newSynthesizer(binary, cfg, player, runCommand, logger)
	s.voice = s.chooseVoice(ctx, cfg)
	logger.Info("speech engine ready", "binary", binary, "voice", s.voice, "rate", s.rate)
	return s, nil
}

func newSynthesizer(binary string, cfg Config, player Player, run commandRunner, logger *slog.Logger) *Synthesizer {
	rate := cfg.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Synthesizer{
		binary:    binary,
		rate:      rate,
		amplitude: Amplitude(cfg.Volume),
		player:    player,
		run:       run,
		logger:    logger,
	}
}

func lookupBinary(preferred string) (string, error) {
	candidates := binaries
	if preferred != "" {
		candidates = []string{preferred}
	}
	for _, bin := range candidates {
		if path, err := exec.LookPath(bin); err == nil {
			return path, nil
		}
	}
	return "", ErrNotInstalled
}

// Amplitude maps a 0.0-2.0 volume onto espeak's 0-200 amplitude scale.
func Amplitude(volume float64) int {
	if volume < 0 {
		volume = 0
	}
	amp := int(volume*100 + 0.5)
	if amp > 200 {
		amp = 200
	}
	return amp
}

func (s *Synthesizer) chooseVoice(ctx context.Context, cfg Config) string {
	if cfg.Voice != "" {
		return cfg.Voice
	}

	out, err := s.run(ctx, s.binary, "--voices="+voiceLanguage(cfg.Language))
	if err != nil {
		s.logger.Warn("listing voices, keeping engine default", "error", err)
		return ""
	}

	voice, ok := SelectVoice(ParseVoices(string(out)))
	if !ok {
		return ""
	}
	return voice.File
}

func voiceLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

func (s *Synthesizer) args(text string) []string {
	args := []string{
		"-s", strconv.Itoa(s.rate),
		"-a", strconv.Itoa(s.amplitude),
	}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	return append(args, "--stdout", text)
}

// Speak blocks until the whole utterance has been played.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	wav, err := s.run(ctx, s.binary, s.args(text)...)
	if err != nil {
		return fmt.Errorf("synthesizing: %w", err)
	}
	if len(wav) == 0 {
		return fmt.Errorf("synthesizing: empty output")
	}

	if err := s.player.Play(ctx, wav); err != nil {
		return fmt.Errorf("playing speech: %w", err)
	}
	return nil
}

var _ application.Synthesizer = (*Synthesizer)(nil)
