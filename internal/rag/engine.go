// Package rag is the retrieval gateway: it translates API-level query
// requests into retrieval-engine calls and normalizes results and
// failures.
package rag

import (
	"context"

	"github.com/pleaderai/backend/internal/vectorstore"
)

// Engine is the retrieval engine contract the orchestrators depend on.
type Engine interface {
	// AddDocuments indexes one text per id.
	AddDocuments(ctx context.Context, texts []string, ids []string) error
	// Query returns ranked results, optionally reranked.
	Query(ctx context.Context, query string, topK int, useRerank bool) ([]vectorstore.SearchResult, error)
	// DeleteDocument drops a document's chunks from the index.
	DeleteDocument(ctx context.Context, documentID string) error
	Stats(ctx context.Context) (vectorstore.Stats, error)
}
