package session

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ai-quiz/internal/domain"
)

// ErrGuardViolation is returned when an event is not allowed in the current
// state or its guard fails. The session is returned unchanged.
var ErrGuardViolation = errors.New("session: guard violation")

func reject(s Session, ev Event, reason string) (Session, Effect, error) {
	return s, nil, fmt.Errorf("%w: %s in %s: %s", ErrGuardViolation, EventName(ev), s.State, reason)
}

// Transition applies ev to s. Rejected events leave s untouched and return an
// error wrapping ErrGuardViolation; callers treat that as a no-op.
func Transition(s Session, ev Event) (Session, Effect, error) {
	switch ev := ev.(type) {
	case Start:
		if s.State != StateWelcome {
			return reject(s, ev, "not on the welcome screen")
		}
		name := strings.TrimSpace(ev.Name)
		if name == "" {
			return reject(s, ev, "name is blank")
		}
		next := New(s.QuestionCount)
		next.State = StateLoading
		next.UserName = name
		return next, FetchQuestions{Count: next.QuestionCount}, nil

	case QuestionsLoaded:
		if s.State != StateLoading {
			return reject(s, ev, "no request outstanding")
		}
		if len(ev.Questions) == 0 {
			next := s
			next.State = StateError
			next.ErrorMessage = domain.MessageProviderFailure
			return next, nil, nil
		}
		next := s
		next.State = StateQuiz
		next.Questions = ev.Questions
		next.CurrentIndex = 0
		next.RunningScore = 0
		next.SelectedOption = nil
		next.IsAnswered = false
		next.ErrorMessage = ""
		return next, nil, nil

	case QuestionsFailed:
		if s.State != StateLoading {
			return reject(s, ev, "no request outstanding")
		}
		next := s
		next.State = StateError
		next.ErrorMessage = ev.Message
		if next.ErrorMessage == "" {
			next.ErrorMessage = domain.MessageProviderFailure
		}
		return next, nil, nil

	case SelectOption:
		if s.State != StateQuiz {
			return reject(s, ev, "no question on screen")
		}
		if s.IsAnswered {
			return reject(s, ev, "question already answered")
		}
		if ev.Index < 0 || ev.Index >= domain.OptionCount {
			return reject(s, ev, fmt.Sprintf("option %d out of range", ev.Index))
		}
		next := s
		idx := ev.Index
		next.SelectedOption = &idx
		next.IsAnswered = true
		if s.Questions[s.CurrentIndex].IsCorrect(idx) {
			next.RunningScore += float64(domain.MaxScore) / float64(len(s.Questions))
		}
		return next, nil, nil

	case Next:
		if s.State != StateQuiz {
			return reject(s, ev, "no question on screen")
		}
		if !s.IsAnswered {
			return reject(s, ev, "question not answered yet")
		}
		next := s
		if !s.IsLastQuestion() {
			next.CurrentIndex++
			next.SelectedOption = nil
			next.IsAnswered = false
			return next, nil, nil
		}
		next.State = StateResult
		next.FinalScore = int(math.Round(s.RunningScore))
		next.LastEntryID = ""
		return next, RecordScore{Name: s.UserName, Score: next.FinalScore}, nil

	case ScoreRecorded:
		if s.State != StateResult {
			return reject(s, ev, "attempt not finished")
		}
		next := s
		next.LastEntryID = ev.EntryID
		return next, nil, nil

	case Restart:
		if s.State != StateResult {
			return reject(s, ev, "not on the result screen")
		}
		return New(s.QuestionCount), nil, nil

	case Retry:
		if s.State != StateError {
			return reject(s, ev, "not on the error screen")
		}
		if s.UserName == "" {
			return New(s.QuestionCount), nil, nil
		}
		next := New(s.QuestionCount)
		next.State = StateLoading
		next.UserName = s.UserName
		return next, FetchQuestions{Count: next.QuestionCount}, nil

	case Home:
		if s.State != StateError {
			return reject(s, ev, "not on the error screen")
		}
		return New(s.QuestionCount), nil, nil

	default:
		return reject(s, ev, "unknown event")
	}
}
