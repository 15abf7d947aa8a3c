// Package cli wires configuration, storage and question providers into the
// ai-quiz commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"ai-quiz/internal/config"
	"ai-quiz/internal/logger"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultTUILogFile receives logs while the terminal UI owns stdout.
const defaultTUILogFile = "ai-quiz.log"

type app struct {
	configPath string
	cfg        *config.Config
	out        io.Writer
	fs         afero.Fs
	confirm    func(title string) (bool, error)
}

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the terminal quiz.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{out: os.Stdout, fs: afero.NewOsFs(), confirm: confirmPrompt})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ai-quiz",
		Short: "An AI knowledge quiz with a persistent leaderboard",
		Long: `ai-quiz asks a set of AI-generated multiple-choice questions,
scores the attempt out of 100 and keeps the best results on a leaderboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.yaml (default: ./config.yaml or ./config/config.yaml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.out = cmd.OutOrStdout()
		return a.loadConfig(cmd)
	}

	root.AddCommand(
		a.newPlayCmd(),
		a.newServeCmd(),
		a.newLeaderboardCmd(),
		a.newBankCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	// The terminal UI draws on stdout, so its logs go to a file.
	if isPlay(cmd) && cfg.Logger.File == "" {
		cfg.Logger.File = defaultTUILogFile
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	logger.Get().Debug("Configuration loaded",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("storage_driver", cfg.Storage.Driver))
	return nil
}

func isPlay(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "play"
}

// Execute runs the root command and reports errors on stderr.
func Execute(ctx context.Context) int {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
