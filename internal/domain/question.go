package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

var validate = validator.New(validator.WithRequiredStructEnabled())

// Question is one multiple-choice item of a generated batch. Immutable once
// the batch has been accepted.
type Question struct {
	ID                 int      `json:"id" yaml:"id" validate:"gte=0"`
	Text               string   `json:"text" yaml:"text" validate:"required"`
	Options            []string `json:"options" yaml:"options" validate:"len=4,dive,required"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" yaml:"correctAnswerIndex" validate:"gte=0,lte=3"`
	Explanation        string   `json:"explanation" yaml:"explanation" validate:"required"`
}

// Validate checks the question invariants: non-empty text and explanation,
// four non-empty options and a correct index inside [0,3].
func (q Question) Validate() error {
	q.Text = strings.TrimSpace(q.Text)
	q.Explanation = strings.TrimSpace(q.Explanation)
	if err := validate.Struct(q); err != nil {
		return NewInvalidResponseError("invalid question", err)
	}
	return nil
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswerIndex
}

// NormalizeQuestions validates a batch and re-numbers ids 1..N in order,
// discarding whatever ids the upstream source supplied. The input slice is
// not modified.
func NormalizeQuestions(batch []Question) ([]Question, error) {
	out := make([]Question, len(batch))
	for i, q := range batch {
		if err := q.Validate(); err != nil {
			return nil, NewInvalidResponseError(fmt.Sprintf("question %d is malformed", i+1), err)
		}
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
		q.ID = i + 1
		out[i] = q
	}
	return out, nil
}

// QuestionBank is the on-disk layout of an offline question collection.
type QuestionBank struct {
	Questions []Question `yaml:"questions"`
}
