package cli

import (
	"errors"
	"fmt"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errResetAborted is returned when the reset prompt is declined.
var errResetAborted = errors.New("leaderboard reset aborted")

func (a *app) newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Show or reset the leaderboard",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the best results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 || limit > domain.DefaultLeaderboardLimit {
				return domain.NewInvalidInputError(
					fmt.Sprintf("--limit must be between 1 and %d", domain.DefaultLeaderboardLimit))
			}
			store, err := openStorage(cmd.Context(), a.cfg, a.fs)
			if err != nil {
				return err
			}
			defer store.close()

			entries := domain.TopEntries(store.leaderboard(a.cfg.Quiz.LeaderboardLimit).Load(cmd.Context()), limit)
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "The leaderboard is empty.")
				return nil
			}
			for i, e := range entries {
				fmt.Fprintln(a.out, tui.FormatEntry(i, e, ""))
			}
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show")

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every leaderboard entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := a.confirm("Delete every leaderboard entry? This cannot be undone.")
				if err != nil {
					return err
				}
				if !ok {
					return errResetAborted
				}
			}
			store, err := openStorage(cmd.Context(), a.cfg, a.fs)
			if err != nil {
				return err
			}
			defer store.close()

			if err := store.leaderboard(a.cfg.Quiz.LeaderboardLimit).Clear(cmd.Context()); err != nil {
				return err
			}
			logger.Get().Info("Leaderboard reset from command line", zap.String("driver", a.cfg.Storage.Driver))
			fmt.Fprintln(a.out, "Leaderboard cleared.")
			return nil
		},
	}
	reset.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(list, reset)
	return cmd
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
