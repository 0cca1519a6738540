package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/spf13/pflag"

	"jarvis/config"
	"jarvis/internal/application"
	"jarvis/internal/infra"
	"jarvis/internal/infra/audio"
	"jarvis/internal/infra/espeak"
	"jarvis/internal/infra/logging"
	"jarvis/internal/infra/openai"
	"jarvis/internal/infra/system"
	"jarvis/internal/infra/wikipedia"
)

func main() {
	configPath := cli.StringP("config", "c", "config.yaml", "path to config file")
	envFile := cli.StringP("env", "e", ".env", "env file path")
	logLevel := cli.StringP("log", "l", "", "log level (overrides config)")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS5 proxy address (overrides config)")
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
	if *proxyAddr != "" {
		cfg.HTTP.Proxy = *proxyAddr
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	httpClient, err := infra.NewHTTPClient(cfg.HTTPTimeout(logger), cfg.HTTP.Proxy)
	if err != nil {
		logger.Error("creating http client", "error", err)
		os.Exit(1)
	}

	audioSource := audio.NewSource(audio.SourceConfig{
		Kind:           cfg.Audio.Source,
		HTTPAddr:       cfg.Audio.HTTPAddr,
		AuthToken:      cfg.Audio.AuthToken,
		TrustedProxies: cfg.Audio.TrustedProxies,
		FileDir:        cfg.Audio.FileDir,
		SampleRate:     cfg.Audio.SampleRate,
	}, logger)
	stt := createSTT(cfg.OpenAI, httpClient, logger)
	synth := createSynthesizer(ctx, cfg, logger)

	out := os.Stdout
	voice := application.NewVoice(cfg.Assistant.Name, synth, out, logger)
	listener := application.NewListener(audioSource, stt, voice, out, logger)

	launcher := system.NewLauncher(logger)
	commands := application.NewCommands(voice, launcher, application.PlatformFrom(runtime.GOOS), nil, logger)

	encyclopedia := wikipedia.NewClient(cfg.Wikipedia.Language, cfg.Wikipedia.BaseURL, httpClient, logger)
	knowledge := application.NewKnowledge(encyclopedia, voice, logger)

	dispatcher := application.NewDispatcher(voice, commands, knowledge, cfg.Assistant.SummarySentences, logger)

	assistant := application.NewAssistant(
		audioSource,
		listener,
		dispatcher,
		voice,
		application.Options{
			Greeting: cfg.Assistant.Greeting,
			Listen:   cfg.ListenOptions(logger),
			Out:      out,
		},
		logger,
	)

	logger.Info("starting assistant",
		"audio_source", audioSource.Name(),
		"speech", cfg.TTS.SpeechEnabled(),
	)

	if err := assistant.Run(ctx); err != nil {
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func createSTT(cfg config.OpenAIConfig, httpClient *http.Client, logger *slog.Logger) application.SpeechToText {
	if cfg.APIKey == "" {
		logger.Warn("openai.api_key not set, only text commands will be understood")
		return &application.NoopSTT{}
	}
	return openai.NewWhisperClient(cfg.APIKey, cfg.Language, openai.WithHTTPClient(httpClient))
}

func createSynthesizer(ctx context.Context, cfg *config.Config, logger *slog.Logger) application.Synthesizer {
	if !cfg.TTS.SpeechEnabled() {
		return &application.NoopSynthesizer{}
	}

	synth, err := espeak.New(ctx, espeak.Config{
		Binary:   cfg.TTS.Binary,
		Rate:     cfg.TTS.Rate,
		Volume:   cfg.TTS.SpeechVolume(),
		Voice:    cfg.TTS.Voice,
		Language: cfg.Assistant.Language,
	}, espeak.NewBeepPlayer(), logger)
	if err != nil {
		logger.Warn("speech output disabled", "error", err)
		return &application.NoopSynthesizer{}
	}
	return synth
}
