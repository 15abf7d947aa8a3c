package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: debug\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 20, cfg.Quiz.QuestionCount)
	assert.Equal(t, 100, cfg.Quiz.LeaderboardLimit)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "ai_quiz_leaderboard", cfg.Storage.Key)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Len(t, cfg.Quiz.Topics, 3)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: ollama
  model: qwen3:0.6b
  timeout: 30
storage:
  driver: sqlite
  path: /tmp/board.db
server:
  port: 9000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "qwen3:0.6b", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/board.db", cfg.Storage.Path)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadConfig_APIKeyFromEnv(t *testing.T) {
	path := writeConfig(t, "llm:\n  api_key: from-file\n")

	t.Setenv("GEMINI_API_KEY", "from-env")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}

func TestLoadConfig_LegacyAPIKeyEnv(t *testing.T) {
	path := writeConfig(t, "quiz:\n  question_count: 5\n")

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("API_KEY", "legacy")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.LLM.APIKey)
	assert.Equal(t, 5, cfg.Quiz.QuestionCount)
}

func TestLoadConfig_APIKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600))
	path := writeConfig(t, "llm:\n  provider: gemini\n")
	t.Chdir(dir)

	// Unset so the .env file supplies the key; t.Setenv restores it afterwards.
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.APIKey)
}

func TestLoadConfig_EnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o600))
	path := writeConfig(t, "llm:\n  provider: gemini\n")
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}

func TestLoadConfig_MissingAPIKeyIsNotAnError(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: gemini\n")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("LLM_API_KEY", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errText string
	}{
		{"unknown provider", "llm:\n  provider: gpt\n", "unsupported llm.provider"},
		{"unknown driver", "storage:\n  driver: s3\n", "unsupported storage.driver"},
		{"zero questions", "quiz:\n  question_count: 0\n", "question_count must be positive"},
		{"zero limit", "quiz:\n  leaderboard_limit: 0\n", "leaderboard_limit must be between 1 and 100"},
		{"limit above 100", "quiz:\n  leaderboard_limit: 500\n", "leaderboard_limit must be between 1 and 100, got 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
