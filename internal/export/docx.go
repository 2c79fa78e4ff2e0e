package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/pleaderai/backend/internal/models"
)

// A DOCX file is a zip archive with a fixed package skeleton around
// word/document.xml. The skeleton below is the minimum Word accepts.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

type docxParagraph struct {
	text string
	bold bool
}

func chatToDOCX(c *models.Chat) ([]byte, error) {
	paras := []docxParagraph{{text: c.Title, bold: true}}
	for _, msg := range c.Messages {
		paras = append(paras,
			docxParagraph{text: fmt.Sprintf("%s — %s", strings.ToUpper(msg.Sender), msg.Timestamp.Format("2006-01-02 15:04")), bold: true},
			docxParagraph{text: msg.Content},
		)
	}
	return buildDOCX(paras)
}

func analysisToDOCX(d *models.Document) ([]byte, error) {
	paras := []docxParagraph{
		{text: "Document Analysis: " + d.Filename, bold: true},
		{text: fmt.Sprintf("Type: %s | Analyzed: %s", d.DocumentType, d.CreatedAt.Format("2006-01-02"))},
		{text: d.Analysis},
	}
	return buildDOCX(paras)
}

func buildDOCX(paras []docxParagraph) ([]byte, error) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paras {
		// Multi-line text becomes one paragraph per line
		for _, line := range strings.Split(p.text, "\n") {
			body.WriteString("<w:p><w:r>")
			if p.bold {
				body.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			body.WriteString(`<w:t xml:space="preserve">`)
			body.WriteString(escapeXML(line))
			body.WriteString("</w:t></w:r></w:p>")
		}
	}
	body.WriteString("</w:body></w:document>")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": docxContentTypes,
		"_rels/.rels":         docxRels,
		"word/document.xml":   body.String(),
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		f, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := f.Write([]byte(entries[name])); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close DOCX archive: %w", err)
	}
	return buf.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
