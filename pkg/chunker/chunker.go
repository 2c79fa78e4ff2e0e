// Package chunker splits extracted document text into pieces small
// enough to embed and retrieve individually.
package chunker

import (
	"strings"
	"unicode/utf8"
)

type Options struct {
	ChunkSize    int // target chunk size in characters
	ChunkOverlap int // overlap between consecutive fixed chunks
}

type TextChunk struct {
	Content string
	Index   int
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// Chunk splits text on paragraph, line, and sentence boundaries first,
// falling back to fixed-size splitting for oversized runs.
func Chunk(text string, opts Options) []TextChunk {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1000
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = 0
	}

	separators := []string{"\n\n", "\n", ". ", " "}
	parts := splitRecursive(text, separators, opts.ChunkSize)

	var chunks []TextChunk
	idx := 0
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, TextChunk{Content: part, Index: idx})
		idx++
	}
	return chunks
}

func splitRecursive(text string, separators []string, chunkSize int) []string {
	if utf8.RuneCountInString(text) <= chunkSize {
		return []string{text}
	}

	if len(separators) == 0 {
		// No boundary left to split on
		var result []string
		runes := []rune(text)
		for i := 0; i < len(runes); i += chunkSize {
			end := min(i+chunkSize, len(runes))
			result = append(result, string(runes[i:end]))
		}
		return result
	}

	sep := separators[0]
	parts := strings.Split(text, sep)
	var result []string
	var current strings.Builder

	for _, part := range parts {
		if current.Len() > 0 && utf8.RuneCountInString(current.String()+sep+part) > chunkSize {
			result = append(result, splitRecursive(current.String(), separators[1:], chunkSize)...)
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}

	if current.Len() > 0 {
		result = append(result, splitRecursive(current.String(), separators[1:], chunkSize)...)
	}

	return result
}
