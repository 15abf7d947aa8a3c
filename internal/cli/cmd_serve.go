package cli

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ai-quiz/internal/handler"
	"ai-quiz/internal/logger"
	"ai-quiz/internal/metrics"
	"ai-quiz/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz and leaderboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	appLogger := logger.Get()

	store, err := openStorage(ctx, a.cfg, a.fs)
	if err != nil {
		return err
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := service.NewQuizService(
		newQuestionProvider(a.cfg, a.fs),
		store.leaderboard(a.cfg.Quiz.LeaderboardLimit),
		a.cfg.Quiz.QuestionCount,
		m,
	)
	fiberApp := handler.NewApp(handler.Deps{
		Service:  svc,
		Storage:  store.blobs,
		Metrics:  m,
		Gatherer: reg,
		Server:   a.cfg.Server,
	})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + strconv.Itoa(a.cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("addr", addr))
		return fiberApp.Listen(addr)
	})
	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("Server forced to shutdown", zap.Error(err))
			return err
		}
		svc.Wait()
		appLogger.Info("Server exited gracefully")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
