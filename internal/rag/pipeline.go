package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pleaderai/backend/internal/embedding"
	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/vectorstore"
	"github.com/pleaderai/backend/pkg/chunker"
)

type pipeline struct {
	store    vectorstore.VectorStore
	embedSvc *embedding.Service
	reranker Reranker
}

func NewPipeline(store vectorstore.VectorStore, embedSvc *embedding.Service, gw llm.Gateway) Engine {
	return &pipeline{
		store:    store,
		embedSvc: embedSvc,
		reranker: NewLLMReranker(gw, ""),
	}
}

func (p *pipeline) AddDocuments(ctx context.Context, texts []string, ids []string) error {
	if len(texts) != len(ids) {
		return fmt.Errorf("texts/ids length mismatch: %d vs %d", len(texts), len(ids))
	}

	for i, text := range texts {
		chunkResults := chunker.Chunk(text, chunker.DefaultOptions())
		if len(chunkResults) == 0 {
			return fmt.Errorf("no chunks generated for document %s", ids[i])
		}

		contents := make([]string, len(chunkResults))
		for j, c := range chunkResults {
			contents[j] = c.Content
		}

		embeddings, err := p.embedSvc.Embed(ctx, contents)
		if err != nil {
			return fmt.Errorf("generate embeddings: %w", err)
		}

		chunks := make([]vectorstore.Chunk, len(chunkResults))
		for j, cr := range chunkResults {
			chunks[j] = vectorstore.Chunk{
				ID:         uuid.New(),
				DocumentID: ids[i],
				ChunkIndex: cr.Index,
				Content:    cr.Content,
				Embedding:  embeddings[j],
			}
		}

		if err := p.store.Upsert(ctx, chunks); err != nil {
			return fmt.Errorf("store chunks: %w", err)
		}
	}

	return nil
}

func (p *pipeline) Query(ctx context.Context, query string, topK int, useRerank bool) ([]vectorstore.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	queryVec, err := p.embedSvc.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := p.store.SimilaritySearch(ctx, queryVec, vectorstore.SearchOptions{TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	if useRerank && len(results) > 0 {
		results = p.reranker.Rerank(ctx, query, results)
	}

	return results, nil
}

func (p *pipeline) DeleteDocument(ctx context.Context, documentID string) error {
	return p.store.DeleteByDocument(ctx, documentID)
}

func (p *pipeline) Stats(ctx context.Context) (vectorstore.Stats, error) {
	return p.store.Stats(ctx)
}
