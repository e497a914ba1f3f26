package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/tutoriz/internal/app"
	"github.com/abhisek/tutoriz/internal/config"
	"github.com/abhisek/tutoriz/internal/llm"
	"github.com/abhisek/tutoriz/internal/planner"
	"github.com/abhisek/tutoriz/internal/profile"
	"github.com/abhisek/tutoriz/internal/quiz"
	"github.com/abhisek/tutoriz/internal/retrieval"
	"github.com/abhisek/tutoriz/internal/store"
	"github.com/spf13/cobra"
)

// deps bundles everything a command needs. Close the store when done.
type deps struct {
	cfg       *config.Config
	st        *store.Store
	events    store.EventRepo
	profiles  *profile.Store
	planner   *planner.Planner
	studentID string
}

func (d *deps) Close() {
	if d.st != nil {
		d.st.Close()
	}
}

// buildDeps loads config, opens the store, and wires the tutoring stack.
// With needLLM false the planner is omitted so offline commands (report)
// still work without any API key.
func buildDeps(cmd *cobra.Command, needLLM bool) (*deps, error) {
	ctx := context.Background()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	studentID := cfg.Student.ID
	if s, _ := cmd.Flags().GetString("student"); s != "" {
		studentID = s
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	events, err := st.EventRepo()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open event repo: %w", err)
	}

	profiles := profile.NewStore()
	if err := replayQuizHistory(ctx, events, profiles, studentID); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not replay quiz history:", err)
	}

	d := &deps{
		cfg:       cfg,
		st:        st,
		events:    events,
		profiles:  profiles,
		studentID: studentID,
	}

	if !needLLM {
		return d, nil
	}

	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	index := retrieval.NewMemoryIndex(newEmbedder(cfg))
	if err := ingestMaterials(ctx, cmd, cfg, index); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not index study materials:", err)
	}

	retriever := retrieval.NewRetriever(index, cfg.Retrieval.TopK)
	composer := quiz.NewComposer(provider, quiz.DefaultConfig())

	d.planner = planner.New(provider, retriever, composer, profiles, planner.Config{
		Timeout:           time.Duration(cfg.Planner.TimeoutSeconds) * time.Second,
		PracticeQuizSize:  cfg.Quiz.PracticeQuestions,
		RequestedQuizSize: cfg.Quiz.RequestedQuestions,
	})

	return d, nil
}

// newEmbedder builds the embeddings client from the same credentials the
// chat provider uses, falling back to the standard OPENAI_API_KEY.
func newEmbedder(cfg *config.Config) retrieval.Embedder {
	llmCfg := llm.ConfigFromEnv()
	key := llmCfg.OpenAI.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	return retrieval.NewOpenAIEmbedder(key, llmCfg.OpenAI.BaseURL, cfg.Retrieval.EmbeddingModel)
}

// ingestMaterials indexes study material named on the command line or in
// the config file. No materials is fine; retrieval degrades to empty
// context.
func ingestMaterials(ctx context.Context, cmd *cobra.Command, cfg *config.Config, index *retrieval.MemoryIndex) error {
	paths, _ := cmd.Flags().GetStringSlice("materials")
	paths = append(paths, cfg.Retrieval.Materials...)
	if len(paths) == 0 {
		return nil
	}

	docs, err := retrieval.LoadMaterials(paths, 0)
	if err != nil {
		return err
	}
	if _, err := index.Add(ctx, docs); err != nil {
		return err
	}
	return nil
}

// replayQuizHistory folds persisted quiz attempts back into the in-memory
// mastery profile, oldest first, so accuracy and difficulty survive
// restarts.
func replayQuizHistory(ctx context.Context, events store.EventRepo, profiles *profile.Store, studentID string) error {
	records, err := events.QueryQuizEvents(ctx, store.QueryOpts{Student: studentID})
	if err != nil {
		return err
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if err := profiles.ReportTopicResult(rec.StudentID, rec.Topic, rec.Accuracy); err != nil {
			return err
		}
		profiles.RecordQuiz(rec.StudentID, profile.QuizAttempt{
			Topic:      rec.Topic,
			Difficulty: rec.Difficulty,
			Questions:  rec.QuestionCount,
			Accuracy:   rec.Accuracy,
			At:         rec.Timestamp,
		})
	}
	return nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Deps{
		Planner:   d.planner,
		Profiles:  d.profiles,
		EventRepo: d.events,
		StudentID: d.studentID,
	})
}
