package session

import "ai-quiz/internal/domain"

// Event is a user intent or the outcome of an Effect.
type Event interface {
	eventName() string
}

// Start submits the player's name on the welcome screen.
type Start struct{ Name string }

// QuestionsLoaded carries a batch returned by the question provider.
type QuestionsLoaded struct{ Questions []domain.Question }

// QuestionsFailed reports that the provider could not deliver a batch.
type QuestionsFailed struct{ Message string }

// SelectOption locks an answer for the current question.
type SelectOption struct{ Index int }

// Next advances past an answered question.
type Next struct{}

// ScoreRecorded reports the leaderboard entry created for the attempt.
type ScoreRecorded struct{ EntryID string }

// Restart leaves the result screen.
type Restart struct{}

// Retry asks for questions again from the error screen.
type Retry struct{}

// Home abandons the error screen.
type Home struct{}

func (Start) eventName() string           { return "start" }
func (QuestionsLoaded) eventName() string { return "questions_loaded" }
func (QuestionsFailed) eventName() string { return "questions_failed" }
func (SelectOption) eventName() string    { return "select_option" }
func (Next) eventName() string            { return "next" }
func (ScoreRecorded) eventName() string   { return "score_recorded" }
func (Restart) eventName() string         { return "restart" }
func (Retry) eventName() string           { return "retry" }
func (Home) eventName() string            { return "home" }

// EventName returns a stable name for logging.
func EventName(ev Event) string {
	if ev == nil {
		return "nil"
	}
	return ev.eventName()
}

// Effect is work the caller must perform after a transition.
type Effect interface {
	effectName() string
}

// FetchQuestions asks the question provider for Count questions. The
// outcome is reported with QuestionsLoaded or QuestionsFailed.
type FetchQuestions struct{ Count int }

// RecordScore persists a finished attempt. The outcome is reported with
// ScoreRecorded.
type RecordScore struct {
	Name  string
	Score int
}

func (FetchQuestions) effectName() string { return "fetch_questions" }
func (RecordScore) effectName() string    { return "record_score" }

// EffectName returns a stable name for logging.
func EffectName(eff Effect) string {
	if eff == nil {
		return "none"
	}
	return eff.effectName()
}
