package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"ai-quiz/internal/config"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// ModelFactory builds the llms.Model on first use.
type ModelFactory func(ctx context.Context) (llms.Model, error)

// LLMQuestionProvider implements domain.QuestionProvider using a langchaingo
// model, Google Gemini by default or a local Ollama server.
type LLMQuestionProvider struct {
	cfg      config.LLMConfig
	topics   []string
	language string

	newModel ModelFactory
	mu       sync.Mutex
	model    llms.Model
}

// NewLLMQuestionProvider creates a provider for cfg. No connection is made
// until questions are requested, so a missing API key only surfaces then.
func NewLLMQuestionProvider(cfg config.LLMConfig, quiz config.QuizConfig) *LLMQuestionProvider {
	p := &LLMQuestionProvider{
		cfg:      cfg,
		topics:   quiz.Topics,
		language: quiz.Language,
	}
	p.newModel = p.defaultModel
	return p
}

// NewLLMQuestionProviderWithModel wraps an already constructed model.
func NewLLMQuestionProviderWithModel(model llms.Model, cfg config.LLMConfig, quiz config.QuizConfig) *LLMQuestionProvider {
	p := NewLLMQuestionProvider(cfg, quiz)
	p.model = model
	return p
}

func (p *LLMQuestionProvider) defaultModel(ctx context.Context) (llms.Model, error) {
	switch p.cfg.Provider {
	case config.ProviderOllama:
		return ollama.New(
			ollama.WithServerURL(p.cfg.ServerURL),
			ollama.WithModel(p.cfg.Model),
			ollama.WithFormat("json"),
		)
	default:
		return googleai.New(ctx,
			googleai.WithAPIKey(p.cfg.APIKey),
			googleai.WithDefaultModel(p.cfg.Model),
			googleai.WithDefaultTemperature(p.cfg.Temperature),
		)
	}
}

func (p *LLMQuestionProvider) getModel(ctx context.Context) (llms.Model, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.model != nil {
		return p.model, nil
	}
	if p.cfg.Provider != config.ProviderOllama && strings.TrimSpace(p.cfg.APIKey) == "" {
		return nil, domain.NewConfigurationError(domain.MessageConfiguration)
	}
	model, err := p.newModel(ctx)
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to create %s client: %w", p.cfg.Provider, err))
	}
	p.model = model
	return model, nil
}

// GenerateQuestions implements domain.QuestionProvider.
func (p *LLMQuestionProvider) GenerateQuestions(ctx context.Context, count int) ([]domain.Question, error) {
	if count <= 0 {
		return nil, domain.NewInvalidInputError("question count must be positive")
	}

	model, err := p.getModel(ctx)
	if err != nil {
		logger.Get().Error("Question provider unavailable", zap.String("provider", p.cfg.Provider), zap.Error(err))
		return nil, err
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSystemInstruction(p.topics, p.language)),
		llms.TextParts(llms.ChatMessageTypeHuman, buildUserPrompt(count, p.topics, p.language)),
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, messages,
		llms.WithJSONMode(),
		llms.WithTemperature(p.cfg.Temperature),
	)
	if err != nil {
		logger.Get().Error("LLM call failed",
			zap.String("provider", p.cfg.Provider),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, domain.NewInvalidResponseError("no data returned from model", nil)
	}

	questions, err := ParseQuestions(resp.Choices[0].Content, count)
	if err != nil {
		logger.Get().Warn("Model returned an unusable question batch",
			zap.String("provider", p.cfg.Provider),
			zap.Error(err))
		return nil, err
	}

	logger.Get().Info("Generated questions",
		zap.String("provider", p.cfg.Provider),
		zap.Int("count", len(questions)),
		zap.Duration("elapsed", time.Since(start)))
	return questions, nil
}

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
)

// questionRecord is one element of the model's JSON array. Pointers tell an
// absent field from its zero value. The id may be any JSON value since it is
// re-assigned on receipt.
type questionRecord struct {
	ID                 json.RawMessage `json:"id" validate:"required"`
	Text               *string         `json:"text" validate:"required"`
	Options            []string        `json:"options" validate:"required"`
	CorrectAnswerIndex *int            `json:"correctAnswerIndex" validate:"required"`
	Explanation        *string         `json:"explanation" validate:"required"`
}

var recordValidator = validator.New()

func (r questionRecord) toQuestion() domain.Question {
	return domain.Question{
		Text:               *r.Text,
		Options:            r.Options,
		CorrectAnswerIndex: *r.CorrectAnswerIndex,
		Explanation:        *r.Explanation,
	}
}

// ParseQuestions extracts the JSON array of questions from raw model output,
// validates it and keeps the first count entries with ids 1..count. Every
// record must carry id, text, options, correctAnswerIndex and explanation.
// Fewer than count usable questions is an error.
func ParseQuestions(raw string, count int) ([]domain.Question, error) {
	cleaned := thinkBlock.ReplaceAllString(raw, "")
	cleaned = codeFence.ReplaceAllString(cleaned, "")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return nil, domain.NewInvalidResponseError("model output contains no JSON array", nil)
	}

	var records []questionRecord
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &records); err != nil {
		return nil, domain.NewInvalidResponseError("failed to parse model output", err)
	}
	if len(records) < count {
		return nil, domain.NewInvalidResponseError(
			fmt.Sprintf("model returned %d questions, %d requested", len(records), count), nil)
	}

	batch := make([]domain.Question, count)
	for i, r := range records[:count] {
		if err := recordValidator.Struct(r); err != nil {
			return nil, domain.NewInvalidResponseError(fmt.Sprintf("question %d is missing required fields", i+1), err)
		}
		batch[i] = r.toQuestion()
	}
	return domain.NormalizeQuestions(batch)
}

var _ domain.QuestionProvider = (*LLMQuestionProvider)(nil)
