package application_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"jarvis/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSpeaker struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingSpeaker) Say(_ context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

func (r *recordingSpeaker) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

type capture struct {
	data []byte
	err  error
}

func text(s string) capture {
	return capture{data: []byte(domain.TextCommandPrefix + s)}
}

// scriptedAudio replays captures in order. When the script runs out it
// calls onExhausted (if set) and reports a listen timeout.
type scriptedAudio struct {
	captures    []capture
	index       int
	started     bool
	stopped     bool
	startErr    error
	onExhausted func()
}

func (s *scriptedAudio) Start(_ context.Context) error {
	s.started = true
	return s.startErr
}

func (s *scriptedAudio) Stop() error {
	s.stopped = true
	return nil
}

func (s *scriptedAudio) Name() string { return "scripted" }

func (s *scriptedAudio) NextCommand(ctx context.Context, _ domain.ListenOptions) ([]byte, error) {
	if s.index >= len(s.captures) {
		if s.onExhausted != nil {
			s.onExhausted()
			return nil, ctx.Err()
		}
		return nil, domain.ErrListenTimeout
	}
	c := s.captures[s.index]
	s.index++
	return c.data, c.err
}

type fakeSTT struct {
	text  string
	err   error
	calls int
}

func (f *fakeSTT) Transcribe(_ context.Context, _ []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type summaryResult struct {
	text string
	err  error
}

type fakeEncyclopedia struct {
	results map[string]summaryResult
	topics  []string
	opts    []domain.SummaryOptions
}

func (f *fakeEncyclopedia) Summary(_ context.Context, topic string, opts domain.SummaryOptions) (string, error) {
	f.topics = append(f.topics, topic)
	f.opts = append(f.opts, opts)
	if r, ok := f.results[topic]; ok {
		return r.text, r.err
	}
	return "", domain.ErrPageNotFound
}

type fakeLauncher struct {
	urls     []string
	commands [][]string
	startErr error
}

func (f *fakeLauncher) OpenURL(url string) error {
	f.urls = append(f.urls, url)
	return nil
}

func (f *fakeLauncher) Start(_ context.Context, name string, args ...string) error {
	f.commands = append(f.commands, append([]string{name}, args...))
	return f.startErr
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
