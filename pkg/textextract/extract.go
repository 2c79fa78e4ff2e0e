// Package textextract turns uploaded files into plain text. It is a
// collaborator of the document orchestrator: callers only see text or
// an unreadable-file error.
package textextract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SupportedType reports whether the filename's extension is on the
// allow-list. This check runs before any file content is read.
func SupportedType(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SupportedTypes lists the accepted extensions, for error messages and
// upload-form hints.
func SupportedTypes() []string {
	types := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		types = append(types, ext)
	}
	sort.Strings(types)
	return types
}

func Extract(ctx context.Context, data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt":
		return extractTXT(data)
	case ".jpg", ".jpeg", ".png":
		return extractImage(ctx, data, filepath.Ext(filename))
	default:
		return "", fmt.Errorf("unsupported file type %s (supported: %s)", filepath.Ext(filename), strings.Join(SupportedTypes(), ", "))
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open DOCX: %w", err)
	}

	for _, f := range reader.File {
		if filepath.Base(f.Name) != "document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		return stripXMLTags(string(content)), nil
	}

	return "", fmt.Errorf("no document.xml in DOCX")
}

func extractTXT(data []byte) (string, error) {
	return string(bytes.TrimSpace(data)), nil
}

func stripXMLTags(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	// Collapse whitespace
	parts := strings.Fields(result.String())
	return strings.Join(parts, " ")
}
