package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/tutoriz/internal/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the mastery report rebuilt from recorded quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		report := d.profiles.ProgressReport(d.studentID)
		if report == nil {
			fmt.Println("No progress data available yet. Start learning to track your progress!")
			return nil
		}

		fmt.Printf("Student: %s\n", d.studentID)
		fmt.Printf("Quizzes taken: %d\n\n", report.TotalQuizzes)

		fmt.Printf("%-24s  %8s  %-7s  %s\n", "Topic", "Accuracy", "Tier", "Attempts")
		fmt.Println(strings.Repeat("─", 56))
		for _, topic := range report.Topics {
			stat := report.Progress[topic]
			fmt.Printf("%-24s  %7.1f%%  %-7s  %d\n", topic, stat.Accuracy, stat.Strength, stat.Attempts)
		}

		if len(report.WeakTopics) > 0 {
			fmt.Println("\nFocus on:", strings.Join(report.WeakTopics, ", "))
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := d.events.QueryQuizEvents(context.Background(), store.QueryOpts{
			Limit:   limit,
			Student: d.studentID,
		})
		if err != nil {
			return fmt.Errorf("query quiz events: %w", err)
		}
		if len(records) > 0 {
			fmt.Println("\nRecent quizzes:")
			for _, rec := range records {
				fmt.Printf("  %s  %-24s %-6s  %.0f%%\n",
					rec.Timestamp.Local().Format("2006-01-02 15:04"), rec.Topic, rec.Difficulty, rec.Accuracy)
			}
		}

		return nil
	},
}

func init() {
	reportCmd.Flags().Int("limit", 10, "Number of recent quiz attempts to show")
}
