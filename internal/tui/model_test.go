package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-quiz/internal/adapter"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/repository"
	"ai-quiz/internal/service"
	"ai-quiz/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	err error
}

func (p *stubProvider) GenerateQuestions(_ context.Context, count int) ([]domain.Question, error) {
	if p.err != nil {
		return nil, p.err
	}
	qs := make([]domain.Question, count)
	for i := range qs {
		qs[i] = domain.Question{
			ID:                 i + 1,
			Text:               fmt.Sprintf("Question %d", i+1),
			Options:            []string{"A", "B", "C", "D"},
			CorrectAnswerIndex: 2,
			Explanation:        "Because C.",
		}
	}
	return qs, nil
}

func newTestModel(t *testing.T, provider domain.QuestionProvider, count int) (Model, service.QuizService, *repository.LeaderboardRepository) {
	t.Helper()
	store := repository.NewLeaderboardRepository(adapter.NewFileBlobAdapter(afero.NewMemMapFs(), "/data"), "ai_quiz_leaderboard", 100)
	svc := service.NewQuizService(provider, store, count, nil)
	return New(context.Background(), svc), svc, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// press feeds msg into m and then replays the resulting effect, leaderboard
// and reset messages until none are left.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, out := range collect(cmd) {
		m = press(t, m, out)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case effectDoneMsg, leaderboardMsg, resetDoneMsg:
		out = append(out, msg)
	}
	return out
}

func typeName(t *testing.T, m Model, name string) Model {
	t.Helper()
	for _, r := range name {
		next, _ := m.Update(runes(string(r)))
		m = next.(Model)
	}
	return m
}

func TestModel_FullAttempt(t *testing.T) {
	m, svc, store := newTestModel(t, &stubProvider{}, 4)
	m = typeName(t, m, "Amy")
	assert.Contains(t, m.View(), "Amy")

	m = press(t, m, enter)
	require.Equal(t, session.StateQuiz, m.Session().State)
	assert.Contains(t, m.View(), "Question 1")
	assert.Contains(t, m.View(), "第 1 / 4 題")

	// Right, right, right, wrong: 75.
	for i := 0; i < 4; i++ {
		key := "3"
		if i == 3 {
			key = "1"
		}
		m = press(t, m, runes(key))
		require.True(t, m.Session().IsAnswered)
		assert.Contains(t, m.View(), "解析：Because C.")
		m = press(t, m, enter)
	}

	s := m.Session()
	require.Equal(t, session.StateResult, s.State)
	assert.Equal(t, 75, s.FinalScore)
	require.NotEmpty(t, s.LastEntryID)
	assert.Equal(t, s, svc.Snapshot())

	view := m.View()
	assert.Contains(t, view, "75")
	assert.Contains(t, view, "🥇")
	assert.Contains(t, view, "← 您")

	board := store.Load(context.Background())
	require.Len(t, board, 1)
	assert.Equal(t, "Amy", board[0].Name)
}

func TestModel_BlankNameIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, &stubProvider{}, 4)
	m = typeName(t, m, "   ")
	m = press(t, m, enter)
	assert.Equal(t, session.StateWelcome, m.Session().State)
	assert.Empty(t, m.notice)
}

func TestModel_CursorAndEnterSelect(t *testing.T) {
	m, _, _ := newTestModel(t, &stubProvider{}, 2)
	m = press(t, typeName(t, m, "Ben"), enter)
	require.Equal(t, session.StateQuiz, m.Session().State)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, domain.OptionCount-1, m.cursor)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.cursor)

	m = press(t, m, enter)
	s := m.Session()
	require.True(t, s.IsAnswered)
	require.NotNil(t, s.SelectedOption)
	assert.Equal(t, 2, *s.SelectedOption)
	assert.True(t, s.AnsweredCorrectly())

	// A second answer is ignored.
	m = press(t, m, runes("1"))
	assert.Equal(t, 2, *m.Session().SelectedOption)

	m = press(t, m, runes("n"))
	assert.Equal(t, 1, m.Session().CurrentIndex)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ErrorRetryAndHome(t *testing.T) {
	provider := &stubProvider{err: domain.NewLLMServiceError(errors.New("down"))}
	m, _, _ := newTestModel(t, provider, 2)
	m = press(t, typeName(t, m, "Carl"), enter)

	require.Equal(t, session.StateError, m.Session().State)
	assert.Contains(t, m.View(), domain.MessageProviderFailure)

	provider.err = nil
	m = press(t, m, runes("r"))
	assert.Equal(t, session.StateQuiz, m.Session().State)
	assert.Equal(t, "Carl", m.Session().UserName)

	provider.err = domain.NewLLMServiceError(errors.New("down again"))
	m2, _, _ := newTestModel(t, provider, 2)
	m2 = press(t, typeName(t, m2, "Dora"), enter)
	require.Equal(t, session.StateError, m2.Session().State)
	m2 = press(t, m2, runes("h"))
	assert.Equal(t, session.StateWelcome, m2.Session().State)
	assert.Empty(t, m2.input.Value())
}

func TestModel_ResetLeaderboardNeedsConfirmation(t *testing.T) {
	m, _, store := newTestModel(t, &stubProvider{}, 1)
	m = press(t, typeName(t, m, "Eve"), enter)
	m = press(t, m, runes("3"))
	m = press(t, m, enter)
	require.Equal(t, session.StateResult, m.Session().State)
	require.Len(t, store.Load(context.Background()), 1)

	m = press(t, m, runes("r"))
	assert.True(t, m.confirmReset)
	assert.Contains(t, m.View(), "(y/n)")

	m = press(t, m, runes("n"))
	assert.False(t, m.confirmReset)
	assert.Len(t, store.Load(context.Background()), 1)

	m = press(t, m, runes("r"))
	m = press(t, m, runes("y"))
	assert.False(t, m.confirmReset)
	assert.Equal(t, "排行榜已清除", m.notice)
	assert.Empty(t, store.Load(context.Background()))
	assert.Empty(t, m.board)
}

func TestModel_RestartReturnsToWelcome(t *testing.T) {
	m, _, _ := newTestModel(t, &stubProvider{}, 1)
	m = press(t, typeName(t, m, "Finn"), enter)
	m = press(t, m, runes("3"))
	m = press(t, m, enter)
	require.Equal(t, session.StateResult, m.Session().State)

	next, _ := m.Update(enter)
	m = next.(Model)
	assert.Equal(t, session.StateWelcome, m.Session().State)
	assert.Empty(t, m.Session().UserName)
	assert.Empty(t, m.input.Value())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _, _ := newTestModel(t, &stubProvider{}, 1)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestFormatEntry(t *testing.T) {
	e := domain.LeaderboardEntry{ID: "x", Name: "Amy", Score: 90, Timestamp: 0}
	assert.Contains(t, FormatEntry(0, e, ""), "🥇")
	assert.Contains(t, FormatEntry(3, e, ""), " 4.")
	assert.NotContains(t, FormatEntry(1, e, "y"), "← 您")
	assert.Contains(t, FormatEntry(1, e, "x"), "← 您")
}
