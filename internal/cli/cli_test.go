package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-quiz/internal/adapter"
	"ai-quiz/internal/adapter/quizgen"
	"ai-quiz/internal/config"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
logger:
  level: error
llm:
  provider: file
  questions_file: /bank/questions.yaml
storage:
  driver: file
  path: /data/leaderboard.json
  key: ai_quiz_leaderboard
quiz:
  question_count: 4
`

type harness struct {
	fs        afero.Fs
	cfgPath   string
	out       *bytes.Buffer
	confirmed bool
	asked     int
}

func newHarness(t *testing.T, cfg string) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	t.Cleanup(func() { logger.Set(nil) })
	return &harness{fs: afero.NewMemMapFs(), cfgPath: path, out: &bytes.Buffer{}}
}

func (h *harness) run(args ...string) error {
	a := &app{
		out: h.out,
		fs:  h.fs,
		confirm: func(string) (bool, error) {
			h.asked++
			return h.confirmed, nil
		},
	}
	root := newRootCmd(a)
	root.SetOut(h.out)
	root.SetErr(h.out)
	root.SetArgs(append([]string{"--config", h.cfgPath}, args...))
	return root.ExecuteContext(context.Background())
}

func (h *harness) seed(t *testing.T, scores map[string]int) {
	t.Helper()
	repo := repository.NewLeaderboardRepository(
		adapter.NewFileBlobAdapterForPath(h.fs, "/data/leaderboard.json"), "ai_quiz_leaderboard", 100)
	for name, score := range scores {
		_, _, err := repo.Record(context.Background(), name, score)
		require.NoError(t, err)
	}
}

func (h *harness) board(t *testing.T) []domain.LeaderboardEntry {
	t.Helper()
	repo := repository.NewLeaderboardRepository(
		adapter.NewFileBlobAdapterForPath(h.fs, "/data/leaderboard.json"), "ai_quiz_leaderboard", 100)
	return repo.Load(context.Background())
}

func TestLeaderboardList_Empty(t *testing.T) {
	h := newHarness(t, testConfig)
	require.NoError(t, h.run("leaderboard", "list"))
	assert.Contains(t, h.out.String(), "The leaderboard is empty.")
}

func TestLeaderboardList_Ordered(t *testing.T) {
	h := newHarness(t, testConfig)
	h.seed(t, map[string]int{"Amy": 60, "Ben": 95, "Carl": 80})

	require.NoError(t, h.run("leaderboard", "list", "--limit", "2"))
	out := h.out.String()
	assert.Contains(t, out, "Ben")
	assert.Contains(t, out, "Carl")
	assert.NotContains(t, out, "Amy")
	assert.Less(t, strings.Index(out, "Ben"), strings.Index(out, "Carl"))
}

func TestLeaderboardList_InvalidLimit(t *testing.T) {
	h := newHarness(t, testConfig)
	err := h.run("leaderboard", "list", "--limit", "0")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}

func TestLeaderboardReset(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		h := newHarness(t, testConfig)
		h.seed(t, map[string]int{"Amy": 60})
		err := h.run("leaderboard", "reset")
		require.ErrorIs(t, err, errResetAborted)
		assert.Equal(t, 1, h.asked)
		assert.Len(t, h.board(t), 1)
	})

	t.Run("confirmed", func(t *testing.T) {
		h := newHarness(t, testConfig)
		h.seed(t, map[string]int{"Amy": 60})
		h.confirmed = true
		require.NoError(t, h.run("leaderboard", "reset"))
		assert.Equal(t, 1, h.asked)
		assert.Empty(t, h.board(t))
	})

	t.Run("yes flag skips prompt", func(t *testing.T) {
		h := newHarness(t, testConfig)
		h.seed(t, map[string]int{"Amy": 60, "Ben": 70})
		require.NoError(t, h.run("lb", "reset", "--yes"))
		assert.Zero(t, h.asked)
		assert.Empty(t, h.board(t))
		assert.Contains(t, h.out.String(), "Leaderboard cleared.")
	})
}

func TestBankGenerate_RequiresModelProvider(t *testing.T) {
	h := newHarness(t, testConfig)
	err := h.run("bank", "generate")
	require.Error(t, err)
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}

func TestBankGenerate_MissingKeyStopsEarly(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	h := newHarness(t, strings.Replace(testConfig, "provider: file", "provider: gemini", 1))
	err := h.run("bank", "generate", "--batches", "2", "--size", "5")
	require.Error(t, err)
	assert.Equal(t, domain.ErrConfiguration, domain.CodeOf(err))
	assert.Contains(t, h.out.String(), "1 failed batches")

	exists, _ := afero.Exists(h.fs, "/bank/questions.yaml")
	assert.False(t, exists)
}

func TestInvalidConfig(t *testing.T) {
	h := newHarness(t, strings.Replace(testConfig, "driver: file", "driver: oracle", 1))
	err := h.run("leaderboard", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverSQLite, Path: ":memory:", Key: "board"}}
		store, err := openStorage(ctx, cfg, afero.NewMemMapFs())
		require.NoError(t, err)
		defer store.close()

		repo := store.leaderboard(100)
		_, _, err = repo.Record(ctx, "Amy", 90)
		require.NoError(t, err)
		assert.Len(t, repo.Load(ctx), 1)
		assert.NoError(t, store.blobs.Ping(ctx))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{
			Storage: config.StorageConfig{Driver: config.DriverRedis, Key: "board"},
			Redis:   config.RedisConfig{Address: mr.Addr()},
		}
		store, err := openStorage(ctx, cfg, afero.NewMemMapFs())
		require.NoError(t, err)
		defer store.close()

		_, _, err = store.leaderboard(100).Record(ctx, "Ben", 70)
		require.NoError(t, err)
		keys := mr.Keys()
		require.Len(t, keys, 1)
		assert.Contains(t, keys[0], "board")
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := &config.Config{
			Storage: config.StorageConfig{Driver: config.DriverRedis, Key: "board"},
			Redis:   config.RedisConfig{Address: "127.0.0.1:1"},
		}
		_, err := openStorage(ctx, cfg, afero.NewMemMapFs())
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := openStorage(ctx, &config.Config{Storage: config.StorageConfig{Driver: "oracle"}}, afero.NewMemMapFs())
		assert.Error(t, err)
	})
}

func TestNewQuestionProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderFile, QuestionsFile: "/q.yaml"}}
	_, ok := newQuestionProvider(cfg, afero.NewMemMapFs()).(*quizgen.FileQuestionProvider)
	assert.True(t, ok)

	cfg.LLM.Provider = config.ProviderOllama
	_, ok = newQuestionProvider(cfg, afero.NewMemMapFs()).(*quizgen.LLMQuestionProvider)
	assert.True(t, ok)
}

func TestIsPlay(t *testing.T) {
	a := &app{}
	root := newRootCmd(a)
	assert.True(t, isPlay(root))
	play, _, err := root.Find([]string{"play"})
	require.NoError(t, err)
	assert.True(t, isPlay(play))
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.False(t, isPlay(serve))
}
