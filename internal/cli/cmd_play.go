package cli

import (
	"context"
	"fmt"

	"ai-quiz/internal/logger"
	"ai-quiz/internal/service"
	"ai-quiz/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context())
		},
	}
}

func (a *app) runPlay(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := openStorage(ctx, a.cfg, a.fs)
	if err != nil {
		return err
	}
	defer store.close()

	svc := service.NewQuizService(
		newQuestionProvider(a.cfg, a.fs),
		store.leaderboard(a.cfg.Quiz.LeaderboardLimit),
		a.cfg.Quiz.QuestionCount,
		nil,
	)

	logger.Get().Info("Starting terminal quiz", zap.Int("question_count", a.cfg.Quiz.QuestionCount))
	p := tea.NewProgram(tui.New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	svc.Wait()
	return nil
}
