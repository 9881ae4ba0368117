package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a difficulty.
Press B after a run ends to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start playing
  Tab          - Run history
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --db ./platformer.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	base, _, err := loadConfig("", 0)
	if err != nil {
		return err
	}

	store, best := openStores(logger)
	if store != nil {
		defer store.Close()
	}

	player := playerName()
	width, height := terminalSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, player, width, height)
		if err != nil {
			return err
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, player, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		cfg := base
		config.ApplyPlatformerPreset(&cfg, menuResult.Preset)
		logger.Info("starting session", "preset", menuResult.Preset, "levels", cfg.Session.Levels)

		backToMenu, runErr := tui.Run(tui.GameOptions{
			Config: cfg,
			Preset: string(menuResult.Preset),
			Seed:   flagSeed,
			FPS:    flagFPS,
			Player: player,
			Store:  store,
			Best:   best,
			Logger: logger,
			Width:  width,
			Height: height,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
		if !backToMenu {
			return nil
		}
	}
}
