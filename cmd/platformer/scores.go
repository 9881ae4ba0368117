package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresMine  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history and best scores",
	Long: `Display the best runs of all players, or your latest runs with --mine.

Examples:
  platformer scores
  platformer scores --mine --limit 20
  platformer scores --player ann --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Show the latest runs of the current player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history of the current player")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	player := playerName()

	if flagScoresClear {
		if err := store.ClearRuns(player); err != nil {
			return err
		}
		fmt.Printf("Cleared run history of %s.\n", player)
		return nil
	}

	var runs []storage.Run
	if flagScoresMine {
		fmt.Printf("Latest runs - %s\n", player)
		runs, err = store.RecentRuns(player, flagScoresLimit)
	} else {
		fmt.Println("Top runs")
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-7s  %-6s  %-7s  %-7s  %-8s  %s\n",
		"Rank", "Player", "Score", "Level", "Result", "Mode", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-6s  %-7s  %-7s  %-8s  %s\n",
		"----", "------", "-----", "-----", "------", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-7d  %-6s  %-7s  %-7s  %-8s  %s\n",
			i+1, r.Player, r.Score, fmt.Sprintf("%d/%d", r.Level, r.Levels), r.Outcome, r.Preset,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(player); err == nil {
		fmt.Printf("Best (%s): %d\n", player, best)
	}
	if stats, err := store.PlayerStats(player); err == nil && stats.RunsCount > 0 {
		fmt.Printf("Runs: %d  Wins: %d  Avg: %.0f  Played: %s\n",
			stats.RunsCount, stats.Wins, stats.AvgScore, stats.TotalTime.Round(time.Second))
	}
	return nil
}
