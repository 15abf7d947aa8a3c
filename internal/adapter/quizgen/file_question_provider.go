package quizgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileQuestionProvider serves questions from a YAML question bank instead of
// a model. Each call samples count distinct questions from the bank.
type FileQuestionProvider struct {
	fs   afero.Fs
	path string

	mu      sync.Mutex
	shuffle func(n int, swap func(i, j int))
}

// NewFileQuestionProvider reads the bank at path on every call, so edits to
// the file are picked up by the next quiz.
func NewFileQuestionProvider(fs afero.Fs, path string) *FileQuestionProvider {
	return &FileQuestionProvider{fs: fs, path: path, shuffle: rand.Shuffle}
}

// WithShuffle replaces the sampling order, mainly for tests.
func (f *FileQuestionProvider) WithShuffle(shuffle func(n int, swap func(i, j int))) *FileQuestionProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shuffle = shuffle
	return f
}

// GenerateQuestions implements domain.QuestionProvider.
func (f *FileQuestionProvider) GenerateQuestions(ctx context.Context, count int) ([]domain.Question, error) {
	if count <= 0 {
		return nil, domain.NewInvalidInputError("question count must be positive")
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		logger.Get().Error("Failed to read question bank", zap.String("path", f.path), zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("read question bank %s: %w", f.path, err))
	}

	var bank domain.QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, domain.NewInvalidResponseError("question bank is not valid YAML", err)
	}
	if len(bank.Questions) < count {
		return nil, domain.NewInvalidResponseError(
			fmt.Sprintf("question bank has %d questions, %d requested", len(bank.Questions), count), nil)
	}

	picked := make([]domain.Question, len(bank.Questions))
	copy(picked, bank.Questions)
	f.mu.Lock()
	f.shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	f.mu.Unlock()

	questions, err := domain.NormalizeQuestions(picked[:count])
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Loaded questions from bank", zap.String("path", f.path), zap.Int("count", count))
	return questions, nil
}

var _ domain.QuestionProvider = (*FileQuestionProvider)(nil)
