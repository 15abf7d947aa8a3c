package domain

import (
	"context"
)

// Embedder turns text into a vector for similarity comparisons.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
