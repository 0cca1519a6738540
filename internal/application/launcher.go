package application

import "context"

// Launcher is the operating environment: browser and processes.
type Launcher interface {
	OpenURL(url string) error
	Start(ctx context.Context, name string, args ...string) error
}
