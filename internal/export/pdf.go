package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pleaderai/backend/internal/models"
)

func chatToPDF(c *models.Chat) ([]byte, error) {
	pdf := newDoc()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(c.Title), "", "L", false)
	pdf.Ln(4)

	for _, msg := range c.Messages {
		pdf.SetFont("Helvetica", "B", 11)
		header := fmt.Sprintf("%s — %s", strings.ToUpper(msg.Sender), msg.Timestamp.Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, tr(header), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, tr(msg.Content), "", "L", false)
		pdf.Ln(3)
	}

	return finish(pdf)
}

func analysisToPDF(d *models.Document) ([]byte, error) {
	pdf := newDoc()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr("Document Analysis: "+d.Filename), "", "L", false)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Type: %s | Analyzed: %s", d.DocumentType, d.CreatedAt.Format("2006-01-02"))), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, tr(d.Analysis), "", "L", false)

	return finish(pdf)
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	return pdf
}

func finish(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
