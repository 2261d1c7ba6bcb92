package cmd

import (
	"fmt"

	"github.com/btrkeks/bookminer/internal/anki"
	"github.com/btrkeks/bookminer/internal/config"
	"github.com/btrkeks/bookminer/internal/logging"
	"github.com/btrkeks/bookminer/internal/paths"
)

// environment is what every subcommand builds before doing real work.
type environment struct {
	cfg    *config.Config
	layout paths.Layout
	logger *logging.Logger
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	layout := paths.New(cfg.Paths.DataDir)
	if err := layout.Ensure(); err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(logging.Options{
			Path:       layout.Log(),
			Level:      cfg.Logging.Level,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			return nil, err
		}
	}

	return &environment{cfg: cfg, layout: layout, logger: logger}, nil
}

func (e *environment) close() {
	_ = e.logger.Close()
}

func (e *environment) ankiClient() *anki.Client {
	return anki.NewClient(
		anki.WithURL(e.cfg.Anki.URL),
		anki.WithTimeout(e.cfg.Anki.Timeout),
		anki.WithDiscoveryCacheTTL(e.cfg.Anki.DiscoveryCacheTTL),
		anki.WithLogger(e.logger),
	)
}
