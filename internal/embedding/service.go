package embedding

import (
	"context"
	"fmt"

	"github.com/pleaderai/backend/internal/llm"
)

const (
	defaultModel = "text-embedding-3-small"

	// Provider-side cap on inputs per embedding call. Long judgments
	// chunk into well over this many pieces.
	maxBatch = 100
)

// Service turns document chunks and queries into vectors for the
// retrieval index.
type Service struct {
	gateway llm.Gateway
	model   string
}

func NewService(gw llm.Gateway, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{gateway: gw, model: model}
}

// Embed vectorizes texts in order, batching to stay under the provider
// limit. The result has exactly one vector per input.
func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		resp, err := s.gateway.Embed(ctx, llm.EmbeddingRequest{
			Model: s.model,
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("embed texts %d-%d: %w", start, end-1, err)
		}
		// A silent shortfall here would misalign chunks and vectors in
		// the index, so it fails the whole call.
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embedding count mismatch: sent %d, got %d", end-start, len(resp.Embeddings))
		}

		vectors = append(vectors, resp.Embeddings...)
	}

	return vectors, nil
}

func (s *Service) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vectors[0], nil
}
