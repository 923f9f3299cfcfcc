package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/fieldguard/internal/api"
	"github.com/dmitrymomot/fieldguard/pkg/config"
	"github.com/dmitrymomot/fieldguard/pkg/httpserver"
	"github.com/dmitrymomot/fieldguard/pkg/logger"
	"github.com/dmitrymomot/fieldguard/pkg/validator"
)

type appConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	Name       string `env:"APP_NAME" envDefault:"fieldguard"`
	LogLevel   string `env:"LOG_LEVEL"`
	PolicyFile string `env:"POLICY_FILE"`
	FormsLimit int    `env:"FORMS_LIMIT" envDefault:"10000"`

	HTTP httpserver.Config
}

func loadConfig(policyFlag string) (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	if policyFlag != "" {
		cfg.PolicyFile = policyFlag
	}
	return cfg, nil
}

func newLogger(cfg appConfig, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(w),
		logger.WithContextExtractors(api.RequestIDExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)))
	}
	return logger.New(opts...)
}

// loadRegistry returns the built-in policies plus those from cfg.PolicyFile.
func loadRegistry(cfg appConfig, log *slog.Logger) (*validator.Registry, error) {
	registry := validator.NewRegistry()
	if cfg.PolicyFile == "" {
		return registry, nil
	}

	n, err := registry.LoadFile(cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("loading policies from %s: %w", cfg.PolicyFile, err)
	}
	log.Info("custom policies loaded",
		slog.String("file", cfg.PolicyFile),
		slog.Int("count", n),
		logger.Component("registry"),
	)
	return registry, nil
}
