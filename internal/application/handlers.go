package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

const searchURL = "https://www.google.com/search?q="

var sites = map[string]string{
	"youtube":       "https://www.youtube.com",
	"google":        "https://www.google.com",
	"whatsapp":      "https://web.whatsapp.com",
	"gmail":         "https://mail.google.com",
	"github":        "https://github.com",
	"stackoverflow": "https://stackoverflow.com",
}

// IsKnownSite reports whether name is one of the fixed site shortcuts.
func IsKnownSite(name string) bool {
	_, ok := sites[name]
	return ok
}

// SiteURL resolves a site name, a URL or a free-form phrase to the URL to open.
func SiteURL(nameOrURL string) string {
	target, ok := sites[strings.ToLower(nameOrURL)]
	if !ok {
		target = nameOrURL
	}
	if !strings.HasPrefix(target, "http") {
		target = SearchURL(target)
	}
	return target
}

// SearchURL builds the search engine query URL; spaces become '+'.
func SearchURL(query string) string {
	return searchURL + url.QueryEscape(strings.TrimSpace(query))
}

type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformDarwin  Platform = "darwin"
	PlatformOther   Platform = "other"
)

func PlatformFrom(goos string) Platform {
	switch goos {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

var apps = map[Platform]map[string]string{
	PlatformWindows: {
		"chrome":        "chrome",
		"edge":          "msedge",
		"firefox":       "firefox",
		"vs code":       "code",
		"code":          "code",
		"file explorer": "explorer",
		"notepad":       "notepad",
	},
	PlatformDarwin: {
		"chrome":  "Google Chrome",
		"vs code": "Visual Studio Code",
		"code":    "Visual Studio Code",
		"safari":  "Safari",
		"notes":   "Notes",
		"finder":  "Finder",
	},
	PlatformOther: {
		"chrome":  "google-chrome",
		"firefox": "firefox",
		"vs code": "code",
		"code":    "code",
		"files":   "nautilus",
	},
}

// LaunchCommand returns the program and arguments that start app on the platform.
// Unknown names are used as literal commands.
func LaunchCommand(platform Platform, app string) (string, []string) {
	target, ok := apps[platform][strings.ToLower(app)]
	if !ok {
		target = app
	}

	switch platform {
	case PlatformWindows:
		return "cmd", []string{"/c", "start", "", target}
	case PlatformDarwin:
		return "open", []string{"-a", target}
	default:
		return target, nil
	}
}

// Commands are the concrete actions the dispatcher routes to.
type Commands struct {
	speaker  Speaker
	launcher Launcher
	platform Platform
	now      func() time.Time
	logger   *slog.Logger
}

func NewCommands(speaker Speaker, launcher Launcher, platform Platform, now func() time.Time, logger *slog.Logger) *Commands {
	if now == nil {
		now = time.Now
	}
	return &Commands{
		speaker:  speaker,
		launcher: launcher,
		platform: platform,
		now:      now,
		logger:   logger,
	}
}

func (c *Commands) OpenSite(ctx context.Context, nameOrURL string) {
	target := SiteURL(nameOrURL)
	if err := c.launcher.OpenURL(target); err != nil {
		c.logger.Warn("opening url", "url", target, "error", err)
	}
	c.speaker.Say(ctx, fmt.Sprintf("Opening %s.", nameOrURL))
}

func (c *Commands) OpenApp(ctx context.Context, app string) {
	name, args := LaunchCommand(c.platform, app)
	if err := c.launcher.Start(ctx, name, args...); err != nil {
		c.logger.Warn("launching app", "app", app, "command", name, "error", err)
		c.speaker.Say(ctx, fmt.Sprintf("Sorry, I couldn't open %s on this system.", app))
		return
	}
	c.speaker.Say(ctx, fmt.Sprintf("Opening %s.", app))
}

func (c *Commands) SayTime(ctx context.Context) {
	c.speaker.Say(ctx, "The time is "+c.now().Format("03:04 PM"))
}

func (c *Commands) SayDate(ctx context.Context) {
	c.speaker.Say(ctx, "Today is "+c.now().Format("Monday, January 02, 2006"))
}

func (c *Commands) Search(ctx context.Context, query string) {
	target := SearchURL(query)
	if err := c.launcher.OpenURL(target); err != nil {
		c.logger.Warn("opening search", "url", target, "error", err)
	}
	c.speaker.Say(ctx, fmt.Sprintf("Searching for %s on Google.", query))
}
