package llm

import "testing"

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TUTORIZ_LLM_PROVIDER",
		"TUTORIZ_ANTHROPIC_API_KEY", "TUTORIZ_ANTHROPIC_MODEL",
		"TUTORIZ_OPENAI_API_KEY", "TUTORIZ_OPENAI_MODEL", "TUTORIZ_OPENAI_BASE_URL",
		"TUTORIZ_GEMINI_API_KEY", "TUTORIZ_GEMINI_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TUTORIZ_LLM_PROVIDER", "openai")
	t.Setenv("TUTORIZ_OPENAI_MODEL", "llama3.2")
	t.Setenv("TUTORIZ_OPENAI_BASE_URL", "http://localhost:11434/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "llama3.2" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
}

func TestValidate_OpenAIBaseURLSkipsKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no key and no base URL")
	}

	cfg.OpenAI.BaseURL = "http://localhost:11434/v1"
	if err := cfg.Validate(); err != nil {
		t.Errorf("local endpoint should not require a key: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "watson"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestValidate_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key: %v", err)
	}
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig found nothing")
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai (gemini unset, openai before anthropic)", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Error("DiscoverConfig should find nothing with no keys set")
	}
}
