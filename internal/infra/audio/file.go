package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"jarvis/internal/domain"
)

const pollInterval = 500 * time.Millisecond

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".webm": true,
}

// FileSource replays utterances dropped into a directory. Audio files are
// passed on as-is, .txt files become text commands. Each file is used once
// and renamed with a .processed suffix.
type FileSource struct {
	dir       string
	processed map[string]bool
	mu        sync.Mutex
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{
		dir:       dir,
		processed: make(map[string]bool),
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Start(_ context.Context) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}
	return nil
}

func (f *FileSource) Stop() error {
	return nil
}

func (f *FileSource) NextCommand(ctx context.Context, opts domain.ListenOptions) ([]byte, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		data, err := f.checkForNewFile()
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, domain.ErrListenTimeout
		case <-ticker.C:
		}
	}
}

func (f *FileSource) checkForNewFile() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		isText := ext == ".txt"
		if !isText && !audioExtensions[ext] {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.processed[path] {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		}

		f.processed[path] = true
		_ = os.Rename(path, path+".processed")

		if isText {
			text := strings.TrimSpace(string(data))
			if text == "" {
				continue
			}
			return []byte(domain.TextCommandPrefix + text), nil
		}
		if len(data) == 0 {
			continue
		}
		return data, nil
	}

	return nil, nil
}
