package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhtoin/initbot/internal/bot"
	"github.com/mhtoin/initbot/internal/config"
	"github.com/mhtoin/initbot/internal/observability"
	"github.com/mhtoin/initbot/internal/soundboard"
	"github.com/mhtoin/initbot/internal/state/factory"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bot",
	Long:  `Connect to Discord and answer commands until interrupted.`,
	RunE:  runBot,
}

func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Config{}, err
	}
	return config.Load(configFile)
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := factory.Open(ctx, cfg.State)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing state store", zap.Error(err))
		}
	}()

	sounds, err := loadSounds(cfg.Sounds.Manifest, logger)
	if err != nil {
		return err
	}

	b, err := bot.New(ctx, bot.Config{
		Token:          cfg.Discord.Token,
		Prefixes:       cfg.Discord.PrefixList(),
		CommandTimeout: cfg.Discord.CommandTimeout,
		Store:          store,
		Sounds:         sounds,
		SoundsDir:      cfg.Sounds.Dir,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting bot", zap.String("state", cfg.State))
	if err := b.Run(ctx); err != nil {
		return fmt.Errorf("running bot: %w", err)
	}
	logger.Info("bot stopped")
	return nil
}

// loadSounds reads the soundboard manifest. A missing manifest disables
// the soundboard.
func loadSounds(path string, logger *zap.Logger) (*soundboard.Manifest, error) {
	if path == "" {
		return nil, nil
	}
	m, err := soundboard.LoadManifest(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no sound manifest, soundboard disabled", zap.String("path", path))
		return nil, nil
	}
	return m, err
}
