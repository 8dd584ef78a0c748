package ui

import (
	"strings"

	internalstrings "github.com/amonks/prdkit/internal/strings"
	"github.com/muesli/reflow/wordwrap"
)

// ReflowIndentedText wraps value to width and preserves indentation levels.
// Runs of lines sharing an indent are joined into one paragraph before wrapping.
func ReflowIndentedText(value string, width int, baseIndent int) string {
	value = internalstrings.NormalizeNewlines(value)
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return internalstrings.IndentBlock("-", baseIndent)
	}

	lines := strings.Split(value, "\n")
	var out []string
	for i := 0; i < len(lines); {
		line := lines[i]
		if internalstrings.IsBlank(line) {
			out = append(out, "")
			i++
			continue
		}
		indent := internalstrings.LeadingSpaces(line)
		var parts []string
		for i < len(lines) {
			line = lines[i]
			if internalstrings.IsBlank(line) || internalstrings.LeadingSpaces(line) != indent {
				break
			}
			parts = append(parts, strings.TrimSpace(line[indent:]))
			i++
		}
		normalized := internalstrings.NormalizeWhitespace(strings.Join(parts, " "))
		wrapWidth := width - baseIndent - indent
		if wrapWidth < 1 {
			wrapWidth = 1
		}
		wrapped := wordwrap.String(normalized, wrapWidth)
		wrapped = internalstrings.IndentBlock(wrapped, baseIndent+indent)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return strings.Join(out, "\n")
}
