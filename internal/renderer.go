package internal

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// markupRe detects agent text that already arrived as markup, so it is
// not escaped a second time
var markupRe = regexp.MustCompile(`(?i)</?(p|br|b|strong|em|i|u|ul|ol|li|div|span|a|h[1-6])\b`)

var (
	boldStarRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscoreRe = regexp.MustCompile(`__(.+?)__`)
	bareURLRe        = regexp.MustCompile(`https?://[^\s<]+`)
	headingRe        = regexp.MustCompile(`^#{1,6}\s+`)
)

// EscapeText escapes user-authored text so literal markup characters
// never execute as markup
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// ContainsMarkup reports whether text already carries markup tags
func ContainsMarkup(s string) bool {
	return markupRe.MatchString(s)
}

// RenderUserText escapes user text and normalizes line breaks
func RenderUserText(s string) string {
	return strings.ReplaceAll(EscapeText(s), "\n", "<br>")
}

// RenderAgentText formats agent-authored text for the message log.
// Pre-formatted markup gets only line-break normalization and the bullet
// transform, to avoid double-escaping. Plain text is escaped first, then
// headings, bold spans, bullets and bare URLs are styled, in that order.
func RenderAgentText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if ContainsMarkup(s) {
		return joinBlocks(strings.Split(s, "\n"), false)
	}
	return joinBlocks(strings.Split(EscapeText(s), "\n"), true)
}

// joinBlocks assembles lines into log markup. Heading and bullet lines
// become their own blocks; the rest are joined with <br>.
func joinBlocks(lines []string, styled bool) string {
	var out strings.Builder
	needBreak := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if styled && headingRe.MatchString(trimmed) {
			text := headingRe.ReplaceAllString(trimmed, "")
			out.WriteString(`<div class="agent-heading">` + styleInline(text) + `</div>`)
			needBreak = false
			continue
		}

		if rest, ok := bulletLine(trimmed); ok {
			if styled {
				rest = styleInline(rest)
			}
			out.WriteString(`<div class="agent-bullet">&#8226; ` + rest + `</div>`)
			needBreak = false
			continue
		}

		if styled {
			line = styleInline(line)
		}
		if needBreak {
			out.WriteString("<br>")
		}
		out.WriteString(line)
		needBreak = true
	}
	return out.String()
}

// styleInline applies bold emphasis and autolinking to one line
func styleInline(line string) string {
	line = boldStarRe.ReplaceAllString(line, "<strong>$1</strong>")
	line = boldUnderscoreRe.ReplaceAllString(line, "<strong>$1</strong>")
	line = bareURLRe.ReplaceAllStringFunc(line, func(u string) string {
		return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, u, u)
	})
	return line
}

// bulletLine strips a leading bullet marker, reporting whether one was found
func bulletLine(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimPrefix(line, marker), true
		}
	}
	return line, false
}

// RenderImage renders an inline attachment preview
func RenderImage(dataURI string) string {
	return fmt.Sprintf(`<img src="%s" class="agent-attachment" alt="attachment">`, html.EscapeString(dataURI))
}

// RenderMessage renders a full log entry. An image preview precedes any
// accompanying text.
func RenderMessage(m Message) string {
	var parts []string
	if m.Image != "" {
		parts = append(parts, RenderImage(m.Image))
	}
	if m.Text != "" {
		if m.Sender == SenderBot {
			parts = append(parts, RenderAgentText(m.Text))
		} else {
			parts = append(parts, RenderUserText(m.Text))
		}
	}
	return strings.Join(parts, "")
}

// RenderError renders the distinctly styled inline error entry shown on
// transport failure
func RenderError(text string) string {
	return `<div class="agent-error">` + EscapeText(text) + `</div>`
}
