package embedding

import (
	"context"
	"fmt"
	"strings"

	"ai-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
	ollamaLLM "github.com/tmc/langchaingo/llms/ollama"
)

// OllamaEmbedder implements domain.Embedder with an Ollama embedding model.
type OllamaEmbedder struct {
	embedder embeddings.Embedder
}

// NewOllamaEmbedder creates an embedder for modelName served at serverURL.
func NewOllamaEmbedder(serverURL, modelName string) (*OllamaEmbedder, error) {
	if serverURL == "" {
		return nil, domain.NewConfigurationError("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, domain.NewConfigurationError("ollama embedding model cannot be empty")
	}

	llm, err := ollamaLLM.New(
		ollamaLLM.WithModel(modelName),
		ollamaLLM.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client for embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder from ollama client: %w", err)
	}
	return NewEmbedder(embedder), nil
}

// NewEmbedder wraps any langchaingo embedder.
func NewEmbedder(embedder embeddings.Embedder) *OllamaEmbedder {
	return &OllamaEmbedder{embedder: embedder}
}

// Embed implements domain.Embedder.
func (s *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewInvalidInputError("input text cannot be empty for embedding")
	}

	vector, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("embed text: %w", err))
	}
	if len(vector) == 0 {
		return nil, domain.NewInvalidResponseError("embedding model returned an empty vector", nil)
	}
	return vector, nil
}

var _ domain.Embedder = (*OllamaEmbedder)(nil)
