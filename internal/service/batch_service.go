package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/util"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultSimilarityThreshold marks two questions as duplicates.
const DefaultSimilarityThreshold = 0.85

// batchService implements the domain.BatchService interface.
type batchService struct {
	provider  domain.QuestionProvider
	fs        afero.Fs
	path      string
	threshold float64
	logger    *zap.Logger

	embedder domain.Embedder
	vectors  map[string][]float32
}

// BatchOption customizes a BatchService.
type BatchOption func(*batchService)

// WithEmbedder compares questions by embedding similarity instead of term
// overlap. Texts that fail to embed fall back to term overlap.
func WithEmbedder(e domain.Embedder) BatchOption {
	return func(s *batchService) {
		s.embedder = e
	}
}

// NewBatchService creates a BatchService writing the YAML bank at path.
func NewBatchService(
	provider domain.QuestionProvider,
	fs afero.Fs,
	path string,
	threshold float64,
	logger *zap.Logger,
	opts ...BatchOption,
) domain.BatchService {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	s := &batchService{
		provider:  provider,
		fs:        fs,
		path:      path,
		threshold: threshold,
		logger:    logger,
		vectors:   make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtendQuestionBank implements domain.BatchService.
func (s *batchService) ExtendQuestionBank(ctx context.Context, batches, batchSize int) (domain.BatchReport, error) {
	var report domain.BatchReport
	if batches <= 0 || batchSize <= 0 {
		return report, domain.NewInvalidInputError("batches and batch size must be positive")
	}
	s.logger.Info("Starting question bank generation",
		zap.String("path", s.path),
		zap.Int("batches", batches),
		zap.Int("batch_size", batchSize),
		zap.Time("start_time", time.Now()))

	kept, err := s.readBank()
	if err != nil {
		return report, err
	}
	report.Existing = len(kept)

	for i := 0; i < batches; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		generated, err := s.provider.GenerateQuestions(ctx, batchSize)
		if err != nil {
			report.Failed++
			s.logger.Error("Failed to generate question batch", zap.Int("batch", i+1), zap.Error(err))
			if domain.CodeOf(err) == domain.ErrConfiguration {
				return report, err
			}
			continue
		}
		report.Generated += len(generated)

		for _, q := range generated {
			if dup, sim := s.findDuplicate(ctx, kept, q); dup != nil {
				report.Duplicates++
				s.logger.Debug("Skipped question due to similarity",
					zap.String("question", q.Text),
					zap.String("existing_question", dup.Text),
					zap.Float64("similarity", sim),
					zap.Float64("threshold", s.threshold))
				continue
			}
			kept = append(kept, q)
			report.Added++
		}
		s.logger.Info("Finished question batch", zap.Int("batch", i+1), zap.Int("bank_size", len(kept)))
	}

	if report.Added > 0 {
		if err := s.writeBank(kept); err != nil {
			return report, err
		}
	}
	s.logger.Info("Question bank generation completed",
		zap.Int("added", report.Added),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("failed_batches", report.Failed))
	if report.Failed == batches {
		return report, domain.NewLLMServiceError(fmt.Errorf("all %d batches failed", batches))
	}
	return report, nil
}

func (s *batchService) findDuplicate(ctx context.Context, kept []domain.Question, q domain.Question) (*domain.Question, float64) {
	for i := range kept {
		if strings.EqualFold(strings.TrimSpace(kept[i].Text), strings.TrimSpace(q.Text)) {
			return &kept[i], 1
		}
		if sim := s.similarity(ctx, kept[i].Text, q.Text); sim >= s.threshold {
			return &kept[i], sim
		}
	}
	return nil, 0
}

func (s *batchService) similarity(ctx context.Context, a, b string) float64 {
	if s.embedder != nil {
		va, errA := s.vector(ctx, a)
		vb, errB := s.vector(ctx, b)
		if errA == nil && errB == nil {
			if sim, err := util.CosineSimilarity(va, vb); err == nil {
				return sim
			}
		}
	}
	return util.TextSimilarity(a, b)
}

func (s *batchService) vector(ctx context.Context, text string) ([]float32, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	v, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("Failed to embed question, using term similarity", zap.String("question", text), zap.Error(err))
		return nil, err
	}
	s.vectors[text] = v
	return v, nil
}

func (s *batchService) readBank() ([]domain.Question, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read question bank %s: %w", s.path, err)
	}
	var bank domain.QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("question bank %s is not valid YAML: %v", s.path, err))
	}
	return bank.Questions, nil
}

func (s *batchService) writeBank(questions []domain.Question) error {
	normalized, err := domain.NormalizeQuestions(questions)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(domain.QuestionBank{Questions: normalized})
	if err != nil {
		return fmt.Errorf("encode question bank: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write question bank %s: %w", s.path, err)
	}
	return nil
}
