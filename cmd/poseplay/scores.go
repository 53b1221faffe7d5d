package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ayusman/poseplay/internal/config"
	"github.com/ayusman/poseplay/internal/store"
)

var (
	flagLimit        int
	flagScoresDBPath string
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded sessions",
	Long: `Display the top sessions from the scores database.

Examples:
  poseplay scores
  poseplay scores --limit 3
  poseplay scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().StringVar(&flagScoresDBPath, "db", "", "Path to scores database (default from config)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Storage.Path
	if flagScoresDBPath != "" {
		path = flagScoresDBPath
	}
	if path == "" {
		return errors.New("no scores database configured")
	}

	st, err := store.New(config.ExpandHome(path))
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer st.Close()

	return printScores(cmd.OutOrStdout(), st, flagLimit)
}

// printScores writes the top sessions as a styled table.
func printScores(w io.Writer, st *store.Store, limit int) error {
	sessions, err := st.Sessions().Top(limit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Fprintln(w, titleStyle.Render("High Scores"))
	fmt.Fprintln(w)

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, dimStyle.Render("Run 'poseplay play' to set the first high score!"))
		return nil
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("  %-4s  %-6s  %-6s  %-8s  %s", "Rank", "Score", "Jumps", "Time", "Date")))
	fmt.Fprintln(w, dimStyle.Render("  "+strings.Repeat("-", 44)))

	for i, s := range sessions {
		row := fmt.Sprintf("%-6d  %-6d  %-8s  %s",
			s.Score, s.Jumps, s.Duration.Round(100*time.Millisecond).String(), s.EndedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "  %s  %s\n", rankStyle.Render(fmt.Sprintf("%-4d", i+1)), row)
	}

	best, err := st.Sessions().Best()
	if err != nil {
		return fmt.Errorf("retrieve best score: %w", err)
	}
	total, err := st.Sessions().Count()
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  %s\n", bestStyle.Render(fmt.Sprintf("Best: %d", best)), dimStyle.Render(fmt.Sprintf("(%d sessions)", total)))
	return nil
}
