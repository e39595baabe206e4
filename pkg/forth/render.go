package forth

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render formats d for a terminal: the message, followed by the offending
// source line with a caret under the token when the position is known.
func Render(src string, d Diagnostic, color bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	b.WriteString(style(errorStyle, "error:"))
	b.WriteByte(' ')
	b.WriteString(d.String())
	b.WriteByte('\n')

	if d.Line == 0 || int(d.Offset) > len(src) {
		return b.String()
	}

	start := strings.LastIndexByte(src[:d.Offset], '\n') + 1
	end := len(src)
	if i := strings.IndexByte(src[d.Offset:], '\n'); i >= 0 {
		end = int(d.Offset) + i
	}
	line := strings.TrimRight(src[start:end], "\r")

	gutter := fmt.Sprintf("%4d | ", d.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	b.WriteString(style(gutterStyle, gutter))
	b.WriteString(line)
	b.WriteByte('\n')

	// keep tabs so the caret lines up with the source
	var pad strings.Builder
	for _, ch := range src[start:d.Offset] {
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	width := int(d.Length)
	if rest := end - int(d.Offset); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}
	b.WriteString(style(gutterStyle, blank))
	b.WriteString(pad.String())
	b.WriteString(style(caretStyle, strings.Repeat("^", width)))
	b.WriteByte('\n')
	return b.String()
}
