// Package markdown renders PRD and deliverable documents for the terminal.
package markdown

import (
	"fmt"
	"sync"

	internalstrings "github.com/amonks/prdkit/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output, wrapped to width and
// shifted right by indent columns. It returns an error when glamour fails.
func Render(width, indent int, input []byte) ([]byte, error) {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
	if internalstrings.IsBlank(value) {
		return nil, nil
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	r, err := markdownRenderer(renderWidth)
	if err != nil {
		return nil, err
	}
	rendered, err := r.Render(value)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if internalstrings.IsBlank(rendered) {
		return nil, nil
	}
	return []byte(internalstrings.IndentBlock(rendered, indent)), nil
}

// SafeRender is Render that falls back to the trimmed source text when
// rendering fails or panics.
func SafeRender(width, indent int, input []byte) (out []byte) {
	fallback := func() []byte {
		value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input)))
		if internalstrings.IsBlank(value) {
			return nil
		}
		return []byte(internalstrings.IndentBlock(value, max(indent, 0)))
	}
	defer func() {
		if recover() != nil {
			out = fallback()
		}
	}()

	rendered, err := Render(width, indent, input)
	if err != nil {
		return fallback()
	}
	return rendered
}

func markdownRenderer(width int) (renderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached, nil
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	renderers[width] = created
	return created, nil
}
