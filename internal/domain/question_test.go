package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		ID:                 42,
		Text:               "什麼是 RAG？",
		Options:            []string{"檢索增強生成", "隨機演算法", "資料庫", "硬體"},
		CorrectAnswerIndex: 0,
		Explanation:        "Retrieval-Augmented Generation",
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, true},
		{"five options", func(q *Question) { q.Options = append(q.Options, "extra") }, true},
		{"blank option", func(q *Question) { q.Options[2] = "" }, true},
		{"negative index", func(q *Question) { q.CorrectAnswerIndex = -1 }, true},
		{"index too large", func(q *Question) { q.CorrectAnswerIndex = 4 }, true},
		{"last index", func(q *Question) { q.CorrectAnswerIndex = 3 }, false},
		{"blank text", func(q *Question) { q.Text = "   " }, true},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, true},
		{"blank explanation", func(q *Question) { q.Explanation = " \n " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidResponse, CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeQuestions_RenumbersIDs(t *testing.T) {
	a, b, c := validQuestion(), validQuestion(), validQuestion()
	a.ID, b.ID, c.ID = 7, 7, 0

	out, err := NormalizeQuestions([]Question{a, b, c})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, q := range out {
		assert.Equal(t, i+1, q.ID)
	}
	assert.Equal(t, 7, a.ID, "input must not be modified")
}

func TestNormalizeQuestions_RejectsMalformed(t *testing.T) {
	bad := validQuestion()
	bad.Options = []string{"only one"}

	out, err := NormalizeQuestions([]Question{validQuestion(), bad})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "question 2 is malformed")
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := validQuestion()
	assert.True(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(1))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MessageConfiguration, UserMessage(NewConfigurationError("missing key")))
	assert.Equal(t, MessageProviderFailure, UserMessage(NewLLMServiceError(errors.New("boom"))))
	assert.Equal(t, MessageProviderFailure, UserMessage(errors.New("plain")))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("network down")
	err := NewLLMServiceError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrLLMServiceError, CodeOf(err))
	assert.Contains(t, err.Error(), "network down")
}
