// Package export renders a chat or document record into a downloadable
// byte stream. Format validation happens before any store access.
package export

import (
	"context"
	"fmt"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatTXT  = "txt"
)

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatTXT:  "text/plain",
}

// ValidFormat reports whether fmt names a supported export format.
func ValidFormat(format string) bool {
	_, ok := contentTypes[format]
	return ok
}

type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

type ChatGetter interface {
	Get(ctx context.Context, chatID, userID string) (*models.Chat, error)
}

type DocumentGetter interface {
	Get(ctx context.Context, docID, userID string) (*models.Document, error)
}

type Service struct {
	chats ChatGetter
	docs  DocumentGetter
}

func NewService(chats ChatGetter, docs DocumentGetter) *Service {
	return &Service{chats: chats, docs: docs}
}

func (s *Service) ExportChat(ctx context.Context, chatID, userID, format string) (*File, error) {
	if !ValidFormat(format) {
		return nil, apperr.Validation("format", "invalid format, use: pdf, docx, or txt")
	}

	c, err := s.chats.Get(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = chatToPDF(c)
	case FormatDOCX:
		data, err = chatToDOCX(c)
	default:
		data = chatToTXT(c)
	}
	if err != nil {
		return nil, apperr.Upstream("export chat", err)
	}

	return &File{
		Data:        data,
		ContentType: contentTypes[format],
		Filename:    fmt.Sprintf("chat_%s.%s", shortID(chatID), format),
	}, nil
}

func (s *Service) ExportDocument(ctx context.Context, docID, userID, format string) (*File, error) {
	if !ValidFormat(format) {
		return nil, apperr.Validation("format", "invalid format, use: pdf, docx, or txt")
	}

	d, err := s.docs.Get(ctx, docID, userID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = analysisToPDF(d)
	case FormatDOCX:
		data, err = analysisToDOCX(d)
	default:
		data = analysisToTXT(d)
	}
	if err != nil {
		return nil, apperr.Upstream("export document", err)
	}

	return &File{
		Data:        data,
		ContentType: contentTypes[format],
		Filename:    fmt.Sprintf("analysis_%s.%s", shortID(docID), format),
	}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
