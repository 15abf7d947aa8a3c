package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/metrics"
	"ai-quiz/internal/session"

	"go.uber.org/zap"
)

// QuizService owns the live session and is the only place effects run.
type QuizService interface {
	// Snapshot returns the current session.
	Snapshot() session.Session
	// Dispatch applies ev to the session. Effects are returned, not run.
	Dispatch(ev session.Event) (session.Session, session.Effect, error)
	// Execute runs eff and returns the event describing its outcome.
	Execute(ctx context.Context, eff session.Effect) session.Event
	// Send dispatches ev and runs the resulting effect. Question fetches run
	// in the background, so the returned session may still be LOADING.
	Send(ctx context.Context, ev session.Event) (session.Session, error)
	// Start is Send(Start{Name: name}).
	Start(ctx context.Context, name string) (session.Session, error)
	// Retry is Send(Retry{}).
	Retry(ctx context.Context) (session.Session, error)
	// Wait blocks until background fetches have finished.
	Wait()
	// Leaderboard returns up to limit entries, best first.
	Leaderboard(ctx context.Context, limit int) []domain.LeaderboardEntry
	// ResetLeaderboard clears the leaderboard. It refuses unless confirmed.
	ResetLeaderboard(ctx context.Context, confirmed bool) error
}

// DefaultBoardRefresh is how long the cached leaderboard is served before
// the store is read again. Writes made by other processes sharing the store
// show up after at most this long.
const DefaultBoardRefresh = 5 * time.Second

type quizService struct {
	provider domain.QuestionProvider
	store    domain.LeaderboardStore
	metrics  *metrics.Metrics
	refresh  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	current  session.Session
	board    []domain.LeaderboardEntry
	loaded   bool
	loadedAt time.Time

	// generation changes on every cache update so a slow Load cannot
	// overwrite a newer write.
	generation uint64

	wg sync.WaitGroup
}

// QuizOption configures a QuizService.
type QuizOption func(*quizService)

// WithBoardRefresh sets how long the cached leaderboard stays fresh. Zero
// reads the store on every Leaderboard call.
func WithBoardRefresh(d time.Duration) QuizOption {
	return func(s *quizService) { s.refresh = d }
}

// WithClock overrides the time source used for cache freshness.
func WithClock(now func() time.Time) QuizOption {
	return func(s *quizService) { s.now = now }
}

// NewQuizService creates a QuizService starting on the welcome screen.
// A nil m records into unregistered collectors.
func NewQuizService(
	provider domain.QuestionProvider,
	store domain.LeaderboardStore,
	questionCount int,
	m *metrics.Metrics,
	opts ...QuizOption,
) QuizService {
	if questionCount <= 0 {
		questionCount = domain.DefaultQuestionCount
	}
	if m == nil {
		m = metrics.New(nil)
	}
	s := &quizService{
		provider: provider,
		store:    store,
		metrics:  m,
		refresh:  DefaultBoardRefresh,
		now:      time.Now,
		current:  session.New(questionCount),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *quizService) Snapshot() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *quizService) Dispatch(ev session.Event) (session.Session, session.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, eff, err := session.Transition(s.current, ev)
	if err != nil {
		s.metrics.GuardViolations.WithLabelValues(session.EventName(ev)).Inc()
		logger.Get().Debug("Session event rejected",
			zap.String("event", session.EventName(ev)),
			zap.Stringer("state", s.current.State),
			zap.Error(err))
		return next, nil, err
	}

	if next.State != s.current.State {
		logger.Get().Info("Session state changed",
			zap.String("event", session.EventName(ev)),
			zap.Stringer("from", s.current.State),
			zap.Stringer("to", next.State),
			zap.String("effect", session.EffectName(eff)))
	}
	if next.State == session.StateResult && s.current.State != session.StateResult {
		s.metrics.QuizzesCompleted.Inc()
		s.metrics.FinalScores.Observe(float64(next.FinalScore))
	}
	s.metrics.Transitions.WithLabelValues(session.EventName(ev), next.State.String()).Inc()
	s.current = next
	return next, eff, nil
}

func (s *quizService) Execute(ctx context.Context, eff session.Effect) session.Event {
	switch eff := eff.(type) {
	case session.FetchQuestions:
		return s.fetchQuestions(ctx, eff.Count)
	case session.RecordScore:
		return s.recordScore(ctx, eff)
	default:
		return nil
	}
}

func (s *quizService) fetchQuestions(ctx context.Context, count int) session.Event {
	start := time.Now()
	questions, err := s.provider.GenerateQuestions(ctx, count)
	if err != nil {
		s.metrics.GenerationDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		s.metrics.GenerationFailures.WithLabelValues(string(domain.CodeOf(err))).Inc()
		logger.Get().Error("Failed to generate questions", zap.Int("count", count), zap.Error(err))
		return session.QuestionsFailed{Message: domain.UserMessage(err)}
	}
	s.metrics.GenerationDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return session.QuestionsLoaded{Questions: questions}
}

// recordScore never fails from the session's point of view: a storage error
// is logged and the attempt simply has no highlighted entry.
func (s *quizService) recordScore(ctx context.Context, eff session.RecordScore) session.Event {
	entry, ranked, err := s.store.Record(ctx, eff.Name, eff.Score)
	if err != nil {
		s.metrics.LeaderboardWrites.WithLabelValues("record", "failure").Inc()
		logger.Get().Error("Failed to record score",
			zap.String("name", eff.Name),
			zap.Int("score", eff.Score),
			zap.Error(err))
		return session.ScoreRecorded{}
	}
	s.metrics.LeaderboardWrites.WithLabelValues("record", "success").Inc()

	s.mu.Lock()
	s.cacheBoard(ranked)
	s.mu.Unlock()
	return session.ScoreRecorded{EntryID: entry.ID}
}

func (s *quizService) Send(ctx context.Context, ev session.Event) (session.Session, error) {
	next, eff, err := s.Dispatch(ev)
	if err != nil {
		return next, err
	}

	switch eff.(type) {
	case nil:
		return next, nil
	case session.FetchQuestions:
		bg := context.WithoutCancel(ctx)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.feedBack(s.Execute(bg, eff))
		}()
		return next, nil
	default:
		return s.feedBack(s.Execute(ctx, eff)), nil
	}
}

// feedBack dispatches the outcome of an effect. Outcomes are always legal in
// the state that requested them; a rejection here indicates a bug.
func (s *quizService) feedBack(ev session.Event) session.Session {
	if ev == nil {
		return s.Snapshot()
	}
	next, _, err := s.Dispatch(ev)
	if err != nil {
		logger.Get().Warn("Effect outcome rejected", zap.String("event", session.EventName(ev)), zap.Error(err))
	}
	return next
}

func (s *quizService) Start(ctx context.Context, name string) (session.Session, error) {
	return s.Send(ctx, session.Start{Name: name})
}

func (s *quizService) Retry(ctx context.Context) (session.Session, error) {
	return s.Send(ctx, session.Retry{})
}

func (s *quizService) Wait() {
	s.wg.Wait()
}

// cacheBoard replaces the cached leaderboard. Callers hold s.mu.
func (s *quizService) cacheBoard(entries []domain.LeaderboardEntry) {
	s.board = entries
	s.loaded = true
	s.loadedAt = s.now()
	s.generation++
}

func (s *quizService) Leaderboard(ctx context.Context, limit int) []domain.LeaderboardEntry {
	s.mu.Lock()
	fresh := s.loaded && s.now().Sub(s.loadedAt) < s.refresh
	generation := s.generation
	s.mu.Unlock()

	if !fresh {
		entries := s.store.Load(ctx)
		s.mu.Lock()
		if s.generation == generation {
			s.cacheBoard(entries)
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	top := domain.TopEntries(s.board, limit)
	out := make([]domain.LeaderboardEntry, len(top))
	copy(out, top)
	return out
}

// ErrResetNotConfirmed is wrapped by the error ResetLeaderboard returns when
// called without confirmation.
var ErrResetNotConfirmed = errors.New("leaderboard reset not confirmed")

func (s *quizService) ResetLeaderboard(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domain.NewConfirmationRequiredError("clearing the leaderboard", ErrResetNotConfirmed)
	}
	if err := s.store.Clear(ctx); err != nil {
		s.metrics.LeaderboardWrites.WithLabelValues("clear", "failure").Inc()
		return err
	}
	s.metrics.LeaderboardWrites.WithLabelValues("clear", "success").Inc()

	s.mu.Lock()
	s.cacheBoard([]domain.LeaderboardEntry{})
	s.mu.Unlock()
	logger.Get().Info("Leaderboard reset")
	return nil
}
