package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/govassist/widget-agent/internal"
)

// MarkdownExporter exports the transcript in Markdown format
type MarkdownExporter struct{}

// Export writes the transcript as a Markdown document
func (e *MarkdownExporter) Export(snap *internal.Snapshot, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation %s\n\n", snap.SessionID)

	user := snap.User
	if user == "" {
		user = "(unresolved)"
	}
	_, _ = fmt.Fprintf(w, "**User:** %s  \n", user)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(snap.Messages))
	if !snap.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Updated:** %s\n\n", snap.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range snap.Messages {
		actor := msg.Sender
		if actor == internal.SenderBot {
			actor = "assistant"
		}

		_, _ = fmt.Fprintf(w, "**%s:**\n\n", actor)
		if msg.Image != "" {
			_, _ = fmt.Fprintf(w, "*(image attachment)*\n\n")
		}
		if msg.Text != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(msg.Text))
		}

		if i < len(snap.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes emphasis syntax outside code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
