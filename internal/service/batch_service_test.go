package service

import (
	"context"
	"errors"
	"testing"

	"ai-quiz/internal/domain"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func q(text string) domain.Question {
	return domain.Question{Text: text, Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1, Explanation: "e"}
}

func readBankFile(t *testing.T, fs afero.Fs, path string) domain.QuestionBank {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var bank domain.QuestionBank
	require.NoError(t, yaml.Unmarshal(data, &bank))
	return bank
}

func TestBatchService_ExtendQuestionBank_SkipsDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	provider := new(MockQuestionProvider)
	provider.On("GenerateQuestions", mock.Anything, 3).Return([]domain.Question{
		q("What is RAG?"), q("Who founded Anthropic?"), q("what is rag"),
	}, nil).Once()
	provider.On("GenerateQuestions", mock.Anything, 3).Return([]domain.Question{
		q("What does temperature control?"), q("Who founded Anthropic?"), q("Name a multimodal model"),
	}, nil).Once()

	svc := NewBatchService(provider, fs, "/bank/questions.yaml", 0.9, zap.NewNop())
	report, err := svc.ExtendQuestionBank(context.Background(), 2, 3)
	require.NoError(t, err)

	assert.Equal(t, domain.BatchReport{Existing: 0, Generated: 6, Added: 4, Duplicates: 2}, report)
	bank := readBankFile(t, fs, "/bank/questions.yaml")
	require.Len(t, bank.Questions, 4)
	for i, item := range bank.Questions {
		assert.Equal(t, i+1, item.ID)
	}
	assert.Equal(t, "What is RAG?", bank.Questions[0].Text)
	provider.AssertExpectations(t)
}

func TestBatchService_ExtendQuestionBank_AppendsToExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing, err := yaml.Marshal(domain.QuestionBank{Questions: []domain.Question{q("What is RAG?")}})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/questions.yaml", existing, 0o644))

	provider := new(MockQuestionProvider)
	provider.On("GenerateQuestions", mock.Anything, 2).Return([]domain.Question{q("What is RAG ?"), q("Define hallucination")}, nil).Once()

	svc := NewBatchService(provider, fs, "/questions.yaml", 0, zap.NewNop())
	report, err := svc.ExtendQuestionBank(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Existing)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.Duplicates)
	assert.Len(t, readBankFile(t, fs, "/questions.yaml").Questions, 2)
}

func TestBatchService_ExtendQuestionBank_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid arguments", func(t *testing.T) {
		svc := NewBatchService(new(MockQuestionProvider), afero.NewMemMapFs(), "/q.yaml", 0, zap.NewNop())
		_, err := svc.ExtendQuestionBank(ctx, 0, 5)
		assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
	})

	t.Run("every batch fails", func(t *testing.T) {
		provider := new(MockQuestionProvider)
		provider.On("GenerateQuestions", mock.Anything, 5).Return(nil, domain.NewLLMServiceError(errors.New("503")))
		fs := afero.NewMemMapFs()
		svc := NewBatchService(provider, fs, "/q.yaml", 0, zap.NewNop())
		report, err := svc.ExtendQuestionBank(ctx, 2, 5)
		require.Error(t, err)
		assert.Equal(t, 2, report.Failed)
		exists, _ := afero.Exists(fs, "/q.yaml")
		assert.False(t, exists)
	})

	t.Run("configuration error stops early", func(t *testing.T) {
		provider := new(MockQuestionProvider)
		provider.On("GenerateQuestions", mock.Anything, 5).Return(nil, domain.NewConfigurationError(domain.MessageConfiguration)).Once()
		svc := NewBatchService(provider, afero.NewMemMapFs(), "/q.yaml", 0, zap.NewNop())
		report, err := svc.ExtendQuestionBank(ctx, 3, 5)
		assert.Equal(t, domain.ErrConfiguration, domain.CodeOf(err))
		assert.Equal(t, 1, report.Failed)
		provider.AssertExpectations(t)
	})

	t.Run("corrupt bank", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/q.yaml", []byte("questions: [oops"), 0o644))
		svc := NewBatchService(new(MockQuestionProvider), fs, "/q.yaml", 0, zap.NewNop())
		_, err := svc.ExtendQuestionBank(ctx, 1, 5)
		assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
	})
}

func TestBatchService_ExtendQuestionBank_EmbeddingSimilarity(t *testing.T) {
	fs := afero.NewMemMapFs()
	provider := new(MockQuestionProvider)
	provider.On("GenerateQuestions", mock.Anything, 3).Return([]domain.Question{
		q("What is retrieval-augmented generation?"),
		q("Explain RAG in one sentence"),
		q("Which company makes Claude?"),
	}, nil).Once()

	embedder := new(MockEmbedder)
	embedder.On("Embed", mock.Anything, "What is retrieval-augmented generation?").Return([]float32{1, 0, 0}, nil)
	embedder.On("Embed", mock.Anything, "Explain RAG in one sentence").Return([]float32{0.95, 0.1, 0}, nil)
	embedder.On("Embed", mock.Anything, "Which company makes Claude?").Return(nil, errors.New("model not loaded"))

	svc := NewBatchService(provider, fs, "/q.yaml", 0.9, zap.NewNop(), WithEmbedder(embedder))
	report, err := svc.ExtendQuestionBank(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Duplicates)
	bank := readBankFile(t, fs, "/q.yaml")
	require.Len(t, bank.Questions, 2)
	assert.Equal(t, "Which company makes Claude?", bank.Questions[1].Text)

	// Vectors are cached per text.
	embedder.AssertNumberOfCalls(t, "Embed", 3)
}
