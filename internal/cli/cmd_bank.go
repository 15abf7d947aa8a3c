package cli

import (
	"fmt"

	"ai-quiz/internal/adapter/embedding"
	"ai-quiz/internal/config"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/service"

	"github.com/spf13/cobra"
)

func (a *app) newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Manage the offline question bank",
	}

	var (
		batches   int
		size      int
		out       string
		threshold float64
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Ask the language model for questions and add new ones to the bank",
		Long: `generate requests --batches batches of --size questions and appends
the ones that are not near-duplicates of questions already in the bank.
The bank can then be served with llm.provider: file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LLM.Provider == config.ProviderFile {
				return domain.NewInvalidInputError("bank generate needs llm.provider gemini or ollama")
			}
			if out == "" {
				out = a.cfg.LLM.QuestionsFile
			}
			var opts []service.BatchOption
			if a.cfg.LLM.EmbeddingModel != "" {
				embedder, err := embedding.NewOllamaEmbedder(a.cfg.LLM.ServerURL, a.cfg.LLM.EmbeddingModel)
				if err != nil {
					return err
				}
				opts = append(opts, service.WithEmbedder(embedder))
			}
			svc := service.NewBatchService(newQuestionProvider(a.cfg, a.fs), a.fs, out, threshold, logger.Get(), opts...)
			report, err := svc.ExtendQuestionBank(cmd.Context(), batches, size)
			fmt.Fprintf(a.out, "bank %s: %d existing, %d generated, %d added, %d duplicates, %d failed batches\n",
				out, report.Existing, report.Generated, report.Added, report.Duplicates, report.Failed)
			return err
		},
	}
	generate.Flags().IntVar(&batches, "batches", 3, "number of model requests")
	generate.Flags().IntVar(&size, "size", 10, "questions per request")
	generate.Flags().StringVarP(&out, "out", "o", "", "bank file (default: llm.questions_file)")
	generate.Flags().Float64Var(&threshold, "threshold", service.DefaultSimilarityThreshold, "similarity at which a question counts as a duplicate")

	cmd.AddCommand(generate)
	return cmd
}
