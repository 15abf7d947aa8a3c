package tui

import (
	"fmt"
	"strings"
	"time"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/session"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	successColor = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	accentStyle    = lipgloss.NewStyle().Foreground(accentColor)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	mutedStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	successStyle   = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(1, 2)
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)

var rankBadges = []string{"🥇", "🥈", "🥉"}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.current.State {
	case session.StateWelcome:
		body = m.welcomeView()
	case session.StateLoading:
		body = m.loadingView()
	case session.StateQuiz:
		body = m.quizView()
	case session.StateResult:
		body = m.resultView()
	case session.StateError:
		body = m.errorView()
	}

	if m.confirmReset {
		body += "\n" + errorStyle.Render("確定要清除所有排行榜紀錄嗎？此動作無法復原。(y/n)")
	} else if m.notice != "" {
		body += "\n" + mutedStyle.Render(m.notice)
	}
	return panelStyle.Render(body) + "\n"
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AI 知識大挑戰"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("共 %d 題，涵蓋 AI 專有名詞、工具用途與產業資訊。\n\n", m.current.QuestionCount))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(renderBoard("排行榜 Top 10", domain.TopEntries(m.board, welcomeBoardSize), ""))
	b.WriteString(helpStyle.Render("enter 開始 • ctrl+r 清除排行榜 • esc 離開"))
	return b.String()
}

func (m Model) loadingView() string {
	return fmt.Sprintf("%s 正在為 %s 生成題目...\n%s",
		m.spinner.View(),
		highlightStyle.Render(m.current.UserName),
		helpStyle.Render("q 離開"))
}

func (m Model) quizView() string {
	s := m.current
	q, ok := s.CurrentQuestion()
	if !ok {
		return ""
	}

	var b strings.Builder
	header := fmt.Sprintf("第 %d / %d 題", s.CurrentIndex+1, len(s.Questions))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		mutedStyle.Render(header),
		scoreStyle.Render(fmt.Sprintf("目前得分 %d", s.DisplayScore()))))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(s.Progress() / 100))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(q.Text))
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case s.IsAnswered && i == q.CorrectAnswerIndex:
			line = successStyle.Render("✔ " + line)
		case s.IsAnswered && s.SelectedOption != nil && i == *s.SelectedOption:
			line = errorStyle.Render("✘ " + line)
		case s.IsAnswered:
			line = mutedStyle.Render("  " + line)
		case i == m.cursor:
			line = highlightStyle.Render("› " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if s.IsAnswered {
		b.WriteString("\n")
		if s.AnsweredCorrectly() {
			b.WriteString(successStyle.Render("答對了！"))
		} else {
			b.WriteString(errorStyle.Render("答錯了"))
		}
		if q.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("解析：" + q.Explanation))
		}
		next := "下一題"
		if s.IsLastQuestion() {
			next = "查看結果"
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("enter %s • q 離開", next)))
	} else {
		b.WriteString(helpStyle.Render("1-4 或 ↑/↓ + enter 作答 • q 離開"))
	}
	return b.String()
}

func (m Model) resultView() string {
	s := m.current
	var b strings.Builder
	b.WriteString(titleStyle.Render("測驗完成"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s，您的得分是 %s\n", s.UserName, scoreStyle.Render(fmt.Sprintf("%d", s.FinalScore))))
	b.WriteString(session.Verdict(s.FinalScore))
	b.WriteString("\n\n")
	b.WriteString(renderBoard("排行榜 Top 5", domain.TopEntries(m.board, resultBoardSize), s.LastEntryID))
	b.WriteString(helpStyle.Render("enter 再玩一次 • r 清除排行榜 • q 離開"))
	return b.String()
}

func (m Model) errorView() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("發生錯誤"))
	b.WriteString("\n\n")
	b.WriteString(m.current.ErrorMessage)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter 重試 • h 回首頁 • q 離開"))
	return b.String()
}

func renderBoard(title string, entries []domain.LeaderboardEntry, highlightID string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("尚無紀錄，成為第一位挑戰者吧！"))
		b.WriteString("\n")
		return b.String()
	}
	for i, e := range entries {
		b.WriteString(FormatEntry(i, e, highlightID))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntry renders one leaderboard row; the entry matching highlightID is
// emphasised.
func FormatEntry(rank int, e domain.LeaderboardEntry, highlightID string) string {
	badge := fmt.Sprintf("%2d.", rank+1)
	if rank < len(rankBadges) {
		badge = rankBadges[rank] + " "
	}
	when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
	line := fmt.Sprintf("%s %-16s %3d  %s", badge, e.Name, e.Score, mutedStyle.Render(when))
	if highlightID != "" && e.ID == highlightID {
		return highlightStyle.Render(line + "  ← 您")
	}
	return line
}
