package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amonks/prdkit/internal/ui"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// logList writes a titled, bulleted list when items is non-empty.
func logList(logger *ui.Logger, title string, items []string) {
	if len(items) == 0 {
		return
	}
	logger.Header(fmt.Sprintf("%s (%d):", title, len(items)))
	for _, item := range items {
		logger.Text("- "+item, 2)
	}
}

// logVerdict writes the pass/fail line that ends a report.
func logVerdict(logger *ui.Logger, passed bool) {
	if passed {
		logger.Success("VALIDATION PASSED")
		return
	}
	logger.Error("VALIDATION FAILED")
}
