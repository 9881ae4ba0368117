package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// appName names the per-user data directory of the key-value fallback store.
const appName = "tui-platformer"

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger creates the file logger. The terminal belongs to the UI, so
// logs never go to stdout. The returned cleanup must be called on exit.
func openLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// loadConfig loads the YAML config and applies a difficulty preset and a
// level count override.
func loadConfig(difficulty string, levels int) (config.PlatformerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	preset := config.ParsePreset(difficulty)
	if difficulty != "" && preset == "" {
		return cfg, "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", difficulty)
	}
	if preset != "" {
		config.ApplyPlatformerPreset(&cfg, preset)
	}
	if levels > 0 {
		cfg.Session.Levels = levels
	}
	return cfg, preset, nil
}

// openStores opens the runs database. When it cannot be opened, the best
// score falls back to the per-user key-value store and runs are not kept.
func openStores(logger *log.Logger) (*storage.Store, game.BestScoreStore) {
	store, err := storage.Open(flagDBPath)
	if err == nil {
		return store, nil
	}
	logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
	fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)

	kv, kvErr := storage.OpenKV(appName)
	if kvErr != nil {
		logger.Warn("could not open best score store", "error", kvErr)
		return nil, nil
	}
	return nil, kv
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// playerName returns the profile name for local play.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	return storage.DefaultPlayer
}
