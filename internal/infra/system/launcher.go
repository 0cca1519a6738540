package system

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/pkg/browser"

	"jarvis/internal/application"
)

func init() {
	// Keep browser helper chatter off the assistant's console.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Launcher opens URLs in the default browser and starts local programs
// without waiting for them.
type Launcher struct {
	openURL func(string) error
	logger  *slog.Logger
}

func NewLauncher(logger *slog.Logger) *Launcher {
	return &Launcher{
		openURL: browser.OpenURL,
		logger:  logger,
	}
}

func (l *Launcher) OpenURL(url string) error {
	l.logger.Debug("opening url", "url", url)
	if err := l.openURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// Start launches name detached from the assistant: the process outlives ctx
// and is reaped in the background.
func (l *Launcher) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}

	l.logger.Debug("launched", "command", name, "args", args, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Debug("launched process exited", "command", name, "error", err)
		}
	}()
	return nil
}

var _ application.Launcher = (*Launcher)(nil)
