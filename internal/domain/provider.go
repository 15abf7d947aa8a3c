package domain

import (
	"context"
)

// DefaultQuestionCount is the size of one quiz.
const DefaultQuestionCount = 20

// QuestionProvider produces a validated batch of questions.
type QuestionProvider interface {
	// GenerateQuestions returns exactly count questions with ids 1..count,
	// or an error. It never returns a partial batch.
	GenerateQuestions(ctx context.Context, count int) ([]Question, error)
}
