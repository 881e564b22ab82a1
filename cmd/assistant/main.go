package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lights-assistant/config"
	"lights-assistant/internal/application"
	"lights-assistant/internal/domain"
	"lights-assistant/internal/infra/audio"
	"lights-assistant/internal/infra/console"
	"lights-assistant/internal/infra/openai"
	"lights-assistant/internal/registry"
	"lights-assistant/internal/tools"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	reg, err := registry.New(deviceList(cfg.Devices))
	if err != nil {
		logger.Error("building device registry", "error", err)
		os.Exit(1)
	}

	client := openai.NewClientWithURL(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.Language,
		cfg.OpenAI.BaseURL,
	)

	session := application.NewSession(client, tools.ForRegistry(reg), reg.Summary(), logger)

	assistant := application.NewAssistant(
		createInputSource(cfg.Input, logger),
		client,
		session,
		os.Stdout,
		logger,
	)

	logger.Info("starting lights assistant",
		"model", cfg.OpenAI.Model,
		"input_source", cfg.Input.Source,
		"devices", len(reg.Lights()),
	)

	if err := assistant.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant error", "error", err)
		os.Exit(1)
	}
}

func deviceList(devices []config.DeviceConfig) []domain.Device {
	if len(devices) == 0 {
		return registry.DefaultDevices()
	}

	result := make([]domain.Device, 0, len(devices))
	for _, d := range devices {
		result = append(result, domain.Device{ID: d.ID, Name: d.Name, IsOn: d.On})
	}
	return result
}

func createInputSource(cfg config.InputConfig, logger *slog.Logger) application.InputSource {
	switch cfg.Source {
	case "console":
		return console.NewSource(os.Stdin, os.Stdout)
	case "microphone":
		return audio.NewMicrophoneSource(cfg.SampleRate, logger)
	default:
		logger.Warn("unknown input source, using console", "source", cfg.Source)
		return console.NewSource(os.Stdin, os.Stdout)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
