package export

import (
	"fmt"
	"strings"

	"github.com/pleaderai/backend/internal/models"
)

func chatToTXT(c *models.Chat) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Chat: %s\n", c.Title)
	fmt.Fprintf(&sb, "Created: %s\n\n", c.CreatedAt.Format("2006-01-02 15:04 MST"))

	for _, msg := range c.Messages {
		fmt.Fprintf(&sb, "[%s] %s:\n%s\n\n",
			msg.Timestamp.Format("2006-01-02 15:04"),
			strings.ToUpper(msg.Sender),
			msg.Content,
		)
	}
	return []byte(sb.String())
}

func analysisToTXT(d *models.Document) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Document Analysis: %s\n", d.Filename)
	fmt.Fprintf(&sb, "Type: %s\n", d.DocumentType)
	fmt.Fprintf(&sb, "Analyzed: %s\n\n", d.CreatedAt.Format("2006-01-02 15:04 MST"))
	sb.WriteString(d.Analysis)
	sb.WriteString("\n")
	return []byte(sb.String())
}
