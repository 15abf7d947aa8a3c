// Package tui is the terminal front end of the quiz. It holds no quiz rules:
// every key press becomes a session event handed to the QuizService, and
// effects run as tea.Cmds so the event loop never blocks.
package tui

import (
	"context"
	"errors"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/service"
	"ai-quiz/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	welcomeBoardSize = 10
	resultBoardSize  = 5
)

// effectDoneMsg carries the outcome of an executed effect.
type effectDoneMsg struct {
	Event session.Event
}

// leaderboardMsg carries a refreshed leaderboard.
type leaderboardMsg struct {
	Entries []domain.LeaderboardEntry
}

// resetDoneMsg reports the outcome of a leaderboard reset.
type resetDoneMsg struct {
	Err error
}

// Model is the bubbletea model of the quiz.
type Model struct {
	ctx context.Context
	svc service.QuizService

	current session.Session
	board   []domain.LeaderboardEntry

	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	cursor       int
	confirmReset bool
	notice       string
	quitting     bool
}

// New creates the model for svc.
func New(ctx context.Context, svc service.QuizService) Model {
	input := textinput.New()
	input.Placeholder = "請輸入您的姓名"
	input.CharLimit = 64
	input.Width = 32
	input.Focus()

	return Model{
		ctx:      ctx,
		svc:      svc,
		current:  svc.Snapshot(),
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init loads the leaderboard and starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadLeaderboard())
}

// Session returns the session the model last rendered.
func (m Model) Session() session.Session {
	return m.current
}

func (m Model) loadLeaderboard() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return leaderboardMsg{Entries: svc.Leaderboard(ctx, domain.DefaultLeaderboardLimit)}
	}
}

func (m Model) execute(eff session.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return effectDoneMsg{Event: svc.Execute(ctx, eff)}
	}
}

// send dispatches ev and schedules its effect. Rejected events are ignored.
func (m Model) send(ev session.Event) (Model, tea.Cmd) {
	next, eff, err := m.svc.Dispatch(ev)
	if err != nil {
		if errors.Is(err, session.ErrGuardViolation) {
			return m, nil
		}
		m.notice = err.Error()
		return m, nil
	}
	m.current = next
	m.notice = ""

	var cmds []tea.Cmd
	if cmd := m.execute(eff); cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch next.State {
	case session.StateLoading:
		cmds = append(cmds, m.spinner.Tick)
	case session.StateWelcome:
		m.input.Reset()
		cmds = append(cmds, m.input.Focus(), m.loadLeaderboard())
	case session.StateQuiz:
		if !next.IsAnswered {
			m.cursor = 0
		}
	}
	return m, tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 8; w > 10 && w < 80 {
			m.progress.Width = w
		}
		return m, nil

	case effectDoneMsg:
		if msg.Event == nil {
			return m, nil
		}
		next, cmd := m.send(msg.Event)
		if _, ok := msg.Event.(session.ScoreRecorded); ok {
			return next, tea.Batch(cmd, next.loadLeaderboard())
		}
		return next, cmd

	case leaderboardMsg:
		m.board = msg.Entries
		return m, nil

	case resetDoneMsg:
		if msg.Err != nil {
			m.notice = "清除排行榜失敗：" + msg.Err.Error()
			return m, nil
		}
		m.notice = "排行榜已清除"
		return m, m.loadLeaderboard()

	case spinner.TickMsg:
		if m.current.State != session.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.current.State == session.StateWelcome {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirmReset {
		switch key {
		case "y", "Y":
			m.confirmReset = false
			svc, ctx := m.svc, m.ctx
			return m, func() tea.Msg { return resetDoneMsg{Err: svc.ResetLeaderboard(ctx, true)} }
		case "n", "N", "esc":
			m.confirmReset = false
			m.notice = ""
		}
		return m, nil
	}

	switch m.current.State {
	case session.StateWelcome:
		switch key {
		case "enter":
			return m.send(session.Start{Name: m.input.Value()})
		case "ctrl+r":
			m.confirmReset = true
			return m, nil
		case "esc":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case session.StateLoading:
		if key == "q" {
			m.quitting = true
			return m, tea.Quit
		}

	case session.StateQuiz:
		switch key {
		case "1", "2", "3", "4":
			if !m.current.IsAnswered {
				m.cursor = int(key[0] - '1')
			}
			return m.send(session.SelectOption{Index: int(key[0] - '1')})
		case "up", "k":
			if !m.current.IsAnswered && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if !m.current.IsAnswered && m.cursor < domain.OptionCount-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.current.IsAnswered {
				return m.send(session.Next{})
			}
			return m.send(session.SelectOption{Index: m.cursor})
		case "n", "right":
			return m.send(session.Next{})
		case "q":
			m.quitting = true
			return m, tea.Quit
		}

	case session.StateResult:
		switch key {
		case "enter":
			return m.send(session.Restart{})
		case "r":
			m.confirmReset = true
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case session.StateError:
		switch key {
		case "enter", "r":
			return m.send(session.Retry{})
		case "h", "esc":
			return m.send(session.Home{})
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}
