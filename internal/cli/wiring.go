package cli

import (
	"context"
	"fmt"

	"ai-quiz/internal/adapter"
	"ai-quiz/internal/adapter/quizgen"
	"ai-quiz/internal/cache"
	"ai-quiz/internal/config"
	"ai-quiz/internal/database"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/repository"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// storage is an opened leaderboard backend.
type storage struct {
	blobs domain.BlobStore
	key   string
	close func() error
}

// openStorage connects the blob store selected by storage.driver.
func openStorage(ctx context.Context, cfg *config.Config, fs afero.Fs) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Get().Info("Using redis leaderboard storage", zap.String("address", cfg.Redis.Address))
		return &storage{
			blobs: adapter.NewRedisBlobAdapter(client),
			key:   cache.LeaderboardKey(cfg.Storage.Key),
			close: client.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		logger.Get().Info("Using sqlite leaderboard storage", zap.String("path", cfg.Storage.Path))
		return &storage{
			blobs: adapter.NewSQLiteBlobAdapter(db),
			key:   cfg.Storage.Key,
			close: db.Close,
		}, nil

	case config.DriverFile:
		logger.Get().Info("Using file leaderboard storage", zap.String("path", cfg.Storage.Path))
		return &storage{
			blobs: adapter.NewFileBlobAdapterForPath(fs, cfg.Storage.Path),
			key:   cfg.Storage.Key,
			close: func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage.driver %q", cfg.Storage.Driver)
}

func (s *storage) leaderboard(limit int) *repository.LeaderboardRepository {
	return repository.NewLeaderboardRepository(s.blobs, s.key, limit)
}

// newQuestionProvider returns the provider selected by llm.provider. Model
// clients are built on first use so a missing key surfaces as a quiz error.
func newQuestionProvider(cfg *config.Config, fs afero.Fs) domain.QuestionProvider {
	if cfg.LLM.Provider == config.ProviderFile {
		logger.Get().Info("Using question bank", zap.String("path", cfg.LLM.QuestionsFile))
		return quizgen.NewFileQuestionProvider(fs, cfg.LLM.QuestionsFile)
	}
	logger.Get().Info("Using language model questions",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))
	return quizgen.NewLLMQuestionProvider(cfg.LLM, cfg.Quiz)
}
