package textextract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSupportedType(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"contract.pdf", true},
		{"CONTRACT.PDF", true},
		{"notes.docx", true},
		{"plain.txt", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"scan.png", true},
		{"malware.exe", false},
		{"spreadsheet.xlsx", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := SupportedType(tt.filename); got != tt.want {
				t.Errorf("SupportedType(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtractTXT(t *testing.T) {
	got, err := Extract(context.Background(), []byte("  hello legal world  \n"), "notes.txt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello legal world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	fw.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>This agreement</w:t></w:r><w:r><w:t>binds both parties.</w:t></w:r></w:p></w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got, err := Extract(context.Background(), buf.Bytes(), "agreement.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "This agreement binds both parties." {
		t.Errorf("got %q", got)
	}
}

func TestExtractDOCXNotAZip(t *testing.T) {
	if _, err := Extract(context.Background(), []byte("not a zip"), "broken.docx"); err == nil {
		t.Error("expected error for corrupt docx")
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract(context.Background(), []byte("data"), "file.xlsx")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	for _, ext := range SupportedTypes() {
		if !strings.Contains(err.Error(), ext) {
			t.Errorf("error %q does not name supported type %s", err, ext)
		}
	}
}

func TestSupportedTypesMatchesAllowList(t *testing.T) {
	types := SupportedTypes()
	if len(types) != len(allowedExtensions) {
		t.Fatalf("got %d types, want %d", len(types), len(allowedExtensions))
	}
	for _, ext := range types {
		if !SupportedType("doc" + ext) {
			t.Errorf("listed type %s not accepted", ext)
		}
	}
}

func TestExtractPDFCorrupt(t *testing.T) {
	if _, err := Extract(context.Background(), []byte("%PDF- garbage"), "broken.pdf"); err == nil {
		t.Error("expected error for corrupt pdf")
	}
}

func TestStripXMLTags(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<a>text</a>", "text"},
		{"no tags here", "no tags here"},
		{"<p>one</p><p>two</p>", "one two"},
		{"<selfclosed/>", ""},
	}
	for _, tt := range tests {
		if got := stripXMLTags(tt.input); got != tt.want {
			t.Errorf("stripXMLTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
