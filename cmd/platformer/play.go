package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var (
	flagDifficulty string
	flagLevels     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session of freshly generated levels.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  Enter            - Start
  P/Esc            - Pause
  R                - Restart with new levels
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 3 levels, slow progression
  normal - 5 levels
  hard   - 7 levels, starts harder and grows faster
  fixed  - No progression between levels

Examples:
  platformer play
  platformer play --difficulty easy
  platformer play --levels 10 --seed 42
  platformer play --config ./my-platformer.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevels, "levels", 0, "Number of levels (0 = from config)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, preset, err := loadConfig(flagDifficulty, flagLevels)
	if err != nil {
		return err
	}

	store, best := openStores(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	logger.Info("starting session", "preset", preset, "levels", cfg.Session.Levels, "seed", flagSeed)

	_, err = tui.Run(tui.GameOptions{
		Config: cfg,
		Preset: string(preset),
		Seed:   flagSeed,
		FPS:    flagFPS,
		Player: playerName(),
		Store:  store,
		Best:   best,
		Logger: logger,
		Width:  width,
		Height: height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return err
	}
	return nil
}
