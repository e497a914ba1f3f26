package cmd

import (
	"github.com/abhisek/tutoriz/internal/config"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tutoriz",
	Short: "AI study tutor for competitive exams",
	Long:  "Tutoriz — terminal tutor that explains concepts, quizzes you adaptively, and tracks per-topic mastery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUTORIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: tutoriz.yaml)")
	rootCmd.PersistentFlags().String("student", "", "Student id (overrides config)")
	rootCmd.PersistentFlags().StringSlice("materials", nil, "Study material files or directories to index at startup")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then TUTORIZ_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}
