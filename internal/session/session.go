// Package session holds the quiz session state machine.
//
// Transition is a pure function: it never performs I/O. Work that needs the
// outside world (asking for questions, saving a score) is returned as an
// Effect for the caller to run, and the outcome comes back as another Event.
package session

import (
	"math"

	"ai-quiz/internal/domain"
)

// State is the screen the session is on.
type State int

const (
	StateWelcome State = iota
	StateLoading
	StateQuiz
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "WELCOME"
	case StateLoading:
		return "LOADING"
	case StateQuiz:
		return "QUIZ"
	case StateResult:
		return "RESULT"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets the state serialize as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is one attempt, from name entry to result. It is a value: every
// transition returns a new Session. Questions are shared read-only.
type Session struct {
	State          State
	UserName       string
	Questions      []domain.Question
	CurrentIndex   int
	RunningScore   float64
	SelectedOption *int
	IsAnswered     bool
	ErrorMessage   string

	// FinalScore is set when the attempt completes.
	FinalScore int
	// LastEntryID identifies the leaderboard entry created by this attempt.
	LastEntryID string
	// QuestionCount is how many questions a fetch asks for.
	QuestionCount int
}

// New returns a session on the welcome screen.
func New(questionCount int) Session {
	if questionCount <= 0 {
		questionCount = domain.DefaultQuestionCount
	}
	return Session{State: StateWelcome, QuestionCount: questionCount}
}

// CurrentQuestion returns the question being shown, if any.
func (s Session) CurrentQuestion() (domain.Question, bool) {
	if s.State != StateQuiz || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// IsLastQuestion reports whether the current question is the final one.
func (s Session) IsLastQuestion() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)-1
}

// Progress is the share of the quiz reached, counting the current question,
// in percent.
func (s Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.CurrentIndex+1) / float64(len(s.Questions)) * 100
}

// DisplayScore is the running score rounded for display. Only FinalScore is
// authoritative.
func (s Session) DisplayScore() int {
	return int(math.Round(s.RunningScore))
}

// AnsweredCorrectly reports whether the locked answer for the current
// question is right.
func (s Session) AnsweredCorrectly() bool {
	q, ok := s.CurrentQuestion()
	if !ok || !s.IsAnswered || s.SelectedOption == nil {
		return false
	}
	return q.IsCorrect(*s.SelectedOption)
}

// Verdict is the closing remark for a final score.
func Verdict(score int) string {
	switch {
	case score >= 80:
		return "太棒了！您是 AI 專家！"
	case score >= 60:
		return "不錯喔，掌握了基礎知識！"
	default:
		return "再接再厲，AI 世界很大！"
	}
}
