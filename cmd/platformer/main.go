// platformer is a side-scrolling platformer played in the terminal.
//
// Usage:
//
//	platformer play          - Play a session directly
//	platformer menu          - Start menu to pick a difficulty interactively
//	platformer scores        - Show run history and best scores
//	platformer levels        - Print generated levels as YAML
//	platformer serve         - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set redraw rate (default: 60)
//	--seed <value>      - Set level seed for reproducible levels
//	--db <path>         - Set database path (default: ~/.platformer/platformer.db)
//	--config <path>     - Use a custom YAML config
//	--log-file <path>   - Write logs to a file (default: ~/.platformer/platformer.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Run, jump and collect in your terminal",
	Long: `TUI Platformer is a side-scrolling platformer played in the terminal.
Every session generates a fresh set of levels with pits, moving platforms,
enemies, collectibles and notes. Reach the goal to advance.

Available commands:
  play     - Play a session directly
  menu     - Interactive difficulty menu
  scores   - View run history and best scores
  levels   - Print generated levels as YAML
  serve    - Start SSH server for remote play

Examples:
  platformer play
  platformer play --difficulty hard --seed 42
  platformer menu
  platformer levels --seed 42 --count 2
  platformer serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate (frames per second); physics always runs at 60 steps per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/platformer.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Profile name for run history (default: local)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.platformer/platformer.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
}
