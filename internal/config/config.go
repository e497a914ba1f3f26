package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Student   StudentConfig   `mapstructure:"student"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Planner   PlannerConfig   `mapstructure:"planner"`
}

// StudentConfig identifies the local student.
type StudentConfig struct {
	ID string `mapstructure:"id"`
}

// DatabaseConfig holds event database configuration.
type DatabaseConfig struct {
	// Path is the SQLite file location. Empty means the default
	// data-directory path.
	Path string `mapstructure:"path"`
}

// RetrievalConfig holds study-material search configuration.
type RetrievalConfig struct {
	TopK           int    `mapstructure:"top_k"`
	EmbeddingModel string `mapstructure:"embedding_model"`

	// Materials lists files or directories of study material to index at
	// startup.
	Materials []string `mapstructure:"materials"`
}

// QuizConfig holds quiz sizing configuration.
type QuizConfig struct {
	PracticeQuestions  int `mapstructure:"practice_questions"`
	RequestedQuestions int `mapstructure:"requested_questions"`
}

// PlannerConfig holds query-planning configuration.
type PlannerConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Load reads configuration from tutoriz.yaml and TUTORIZ_* environment
// variables. A missing config file is fine; defaults and environment
// cover everything.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file path, used by the --config
// flag and tests.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tutoriz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tutoriz"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("TUTORIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("student.id", "default")

	v.SetDefault("database.path", "")

	v.SetDefault("retrieval.top_k", 3)
	v.SetDefault("retrieval.embedding_model", "")

	v.SetDefault("quiz.practice_questions", 2)
	v.SetDefault("quiz.requested_questions", 5)

	v.SetDefault("planner.timeout_seconds", 60)
}
