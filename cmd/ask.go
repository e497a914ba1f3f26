package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Ask the tutor a single question without the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()

		query := strings.Join(args, " ")
		res, err := d.planner.DecideAction(context.Background(), d.studentID, query)
		if err != nil {
			return fmt.Errorf("answer query: %w", err)
		}

		printResult(res)
		return nil
	},
}

func printResult(res *planner.Result) {
	switch res.Action {
	case planner.ActionChat:
		fmt.Println(res.Reply)

	case planner.ActionExplanation:
		fmt.Println(res.Explanation)
		if len(res.PracticeQuiz) > 0 {
			fmt.Println()
			fmt.Println("Practice questions:")
			printQuestions(res.PracticeQuiz)
		}
		fmt.Println()
		for _, step := range res.PlanExecuted {
			fmt.Println("  •", step)
		}

	case planner.ActionQuiz:
		if len(res.Quiz) == 0 {
			fmt.Println(res.Message)
			return
		}
		fmt.Printf("Quiz on %s (%s):\n\n", res.Topic, res.Difficulty)
		printQuestions(res.Quiz)

	case planner.ActionProgress:
		if res.Report == nil {
			fmt.Println(res.Message)
			return
		}
		fmt.Printf("Progress (%d quizzes taken):\n", res.Report.TotalQuizzes)
		for _, topic := range res.Report.Topics {
			stat := res.Report.Progress[topic]
			fmt.Printf("  %-24s %6.1f%%  %-7s (%d attempts)\n", topic, stat.Accuracy, stat.Strength, stat.Attempts)
		}
		fmt.Println()
		fmt.Println(res.Recommendation)
	}
}

func printQuestions(questions []quiz.Question) {
	for _, q := range questions {
		fmt.Printf("%d. %s\n", q.ID, q.Text)
		for _, opt := range q.Options {
			fmt.Printf("   %s) %s\n", opt.Label, opt.Text)
		}
		fmt.Printf("   Answer: %s — %s\n\n", q.CorrectAnswer, q.Explanation)
	}
}
