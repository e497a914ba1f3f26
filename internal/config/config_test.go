package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere: defaults apply.
	t.Chdir(t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Student.ID != "default" {
		t.Errorf("Student.ID = %q, want default", cfg.Student.ID)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("Retrieval.TopK = %d, want 3", cfg.Retrieval.TopK)
	}
	if cfg.Quiz.PracticeQuestions != 2 || cfg.Quiz.RequestedQuestions != 5 {
		t.Errorf("Quiz sizes = %d/%d, want 2/5", cfg.Quiz.PracticeQuestions, cfg.Quiz.RequestedQuestions)
	}
	if cfg.Planner.TimeoutSeconds != 60 {
		t.Errorf("Planner.TimeoutSeconds = %d, want 60", cfg.Planner.TimeoutSeconds)
	}
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tutoriz.yaml")
	content := []byte(`
student:
  id: amit
database:
  path: /tmp/test-tutoriz.db
retrieval:
  top_k: 5
  materials:
    - notes/
quiz:
  requested_questions: 8
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Student.ID != "amit" {
		t.Errorf("Student.ID = %q", cfg.Student.ID)
	}
	if cfg.Database.Path != "/tmp/test-tutoriz.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("Retrieval.TopK = %d", cfg.Retrieval.TopK)
	}
	if len(cfg.Retrieval.Materials) != 1 || cfg.Retrieval.Materials[0] != "notes/" {
		t.Errorf("Retrieval.Materials = %v", cfg.Retrieval.Materials)
	}
	if cfg.Quiz.RequestedQuestions != 8 {
		t.Errorf("Quiz.RequestedQuestions = %d", cfg.Quiz.RequestedQuestions)
	}
	// Unset values keep their defaults.
	if cfg.Quiz.PracticeQuestions != 2 {
		t.Errorf("Quiz.PracticeQuestions = %d, want default 2", cfg.Quiz.PracticeQuestions)
	}
}

func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TUTORIZ_STUDENT_ID", "priya")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Student.ID != "priya" {
		t.Errorf("Student.ID = %q, want priya (env override)", cfg.Student.ID)
	}
}
