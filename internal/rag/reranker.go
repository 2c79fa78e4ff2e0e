package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/vectorstore"
)

// Reranker re-scores retrieved chunks for better relevance ordering.
// Reranking is advisory: any failure returns the input order unchanged.
type Reranker interface {
	Rerank(ctx context.Context, query string, results []vectorstore.SearchResult) []vectorstore.SearchResult
}

// LLMReranker asks a model to judge relevance of each chunk to the query.
type LLMReranker struct {
	gateway llm.Gateway
	model   string
}

func NewLLMReranker(gw llm.Gateway, model string) *LLMReranker {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMReranker{gateway: gw, model: model}
}

func (r *LLMReranker) Rerank(ctx context.Context, query string, results []vectorstore.SearchResult) []vectorstore.SearchResult {
	if len(results) == 0 {
		return results
	}

	var sb strings.Builder
	for i, res := range results {
		fmt.Fprintf(&sb, "[%d] %s\n\n", i, truncate(res.Content, 500))
	}

	resp, err := r.gateway.Chat(ctx, llm.ChatRequest{
		Model: r.model,
		Messages: []llm.Message{
			{
				Role: "system",
				Content: `You are a relevance scoring assistant. Given a query and a list of text chunks,
score each chunk from 0.0 to 1.0 based on how relevant it is to the query.
Return ONLY a JSON array of objects with "index" and "score" fields. Example:
[{"index": 0, "score": 0.95}, {"index": 1, "score": 0.3}]`,
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Query: %s\n\nChunks:\n%s", query, sb.String()),
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return results
	}

	var scores []struct {
		Index int     `json:"index"`
		Score float64 `json:"score"`
	}
	content := strings.TrimSpace(resp.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &scores); err != nil {
		return results
	}

	reranked := make([]vectorstore.SearchResult, len(results))
	copy(reranked, results)
	for _, s := range scores {
		if s.Index >= 0 && s.Index < len(reranked) {
			reranked[s.Index].Score = s.Score
		}
	}
	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})
	return reranked
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
