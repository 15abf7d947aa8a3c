package service

import (
	"context"

	"ai-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionProvider ---
type MockQuestionProvider struct {
	mock.Mock
}

func (m *MockQuestionProvider) GenerateQuestions(ctx context.Context, count int) ([]domain.Question, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockLeaderboardStore ---
type MockLeaderboardStore struct {
	mock.Mock
}

func (m *MockLeaderboardStore) Load(ctx context.Context) []domain.LeaderboardEntry {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []domain.LeaderboardEntry{}
	}
	return args.Get(0).([]domain.LeaderboardEntry)
}

func (m *MockLeaderboardStore) Record(ctx context.Context, name string, score int) (domain.LeaderboardEntry, []domain.LeaderboardEntry, error) {
	args := m.Called(ctx, name, score)
	var ranked []domain.LeaderboardEntry
	if args.Get(1) != nil {
		ranked = args.Get(1).([]domain.LeaderboardEntry)
	}
	return args.Get(0).(domain.LeaderboardEntry), ranked, args.Error(2)
}

func (m *MockLeaderboardStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ domain.QuestionProvider = (*MockQuestionProvider)(nil)
	_ domain.LeaderboardStore = (*MockLeaderboardStore)(nil)
)

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}
