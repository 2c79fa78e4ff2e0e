package document

import (
	"context"

	"github.com/pleaderai/backend/pkg/textextract"
)

type Extractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
	SupportedType(filename string) bool
}

type extractor struct{}

func NewExtractor() Extractor {
	return extractor{}
}

func (extractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	return textextract.Extract(ctx, data, filename)
}

func (extractor) SupportedType(filename string) bool {
	return textextract.SupportedType(filename)
}
