package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/spf13/pflag"

	"jarvis/config"
	"jarvis/internal/application"
	"jarvis/internal/infra"
	"jarvis/internal/infra/logging"
	"jarvis/internal/infra/openweathermap"
	"jarvis/internal/infra/pushover"
)

func main() {
	configPath := cli.StringP("config", "c", "config.yaml", "path to config file")
	envFile := cli.StringP("env", "e", ".env", "env file path")
	logLevel := cli.StringP("log", "l", "", "log level (overrides config)")
	city := cli.String("city", "", "city to report (overrides config)")
	cli.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		slog.Error("loading env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *city != "" {
		cfg.Weather.City = *city
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient, err := infra.NewHTTPClient(cfg.HTTPTimeout(logger), cfg.HTTP.Proxy)
	if err != nil {
		logger.Error("creating http client", "error", err)
		os.Exit(1)
	}

	var notifier application.Notifier
	if cfg.Pushover.Enabled {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey, httpClient).WithTitle("Weather")
	} else {
		notifier = &application.NoopNotifier{}
	}

	provider := openweathermap.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Units, httpClient)
	reporter := application.NewWeatherReporter(provider, notifier, os.Stdout, logger)

	if err := reporter.Report(ctx, cfg.Weather.City); err != nil {
		logger.Warn("weather report failed", "city", cfg.Weather.City, "error", err)
	}
}
