package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var recommendedHints = map[string]string{
	"out of scope": "should list PRD features planned for other deliverables",
}

// CheckDeliverableFile checks a single deliverable-*.md document.
// Issues fail validation; warnings do not.
func CheckDeliverableFile(path string, rules Rules) (issues []string, warnings []string) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{fmt.Sprintf("Deliverable file not found: %s", path)}, nil
	}
	if err != nil {
		return []string{fmt.Sprintf("Failed to read deliverable file: %s", path)}, nil
	}
	return checkDeliverableContent(filepath.Base(path), content, rules)
}

func checkDeliverableContent(name string, content []byte, rules Rules) (issues []string, warnings []string) {
	headings := Headings(content)

	for _, section := range rules.DeliverableSections {
		if !hasSectionPrefix(headings, 2, section) {
			issues = append(issues, fmt.Sprintf("%s: Missing required section '%s'", name, section))
		}
	}

	for _, section := range rules.RecommendedSections {
		if hasSectionPrefix(headings, 2, section) {
			continue
		}
		message := fmt.Sprintf("%s: Missing recommended section '%s'", name, section)
		if hint, ok := recommendedHints[strings.ToLower(section)]; ok {
			message += " - " + hint
		}
		warnings = append(warnings, message)
	}

	if !bytes.Contains(content, []byte("Source PRD")) {
		issues = append(issues, fmt.Sprintf("%s: Missing 'Source PRD' reference", name))
	}
	if !bytes.Contains(content, []byte("Deliverable ID")) {
		issues = append(issues, fmt.Sprintf("%s: Missing 'Deliverable ID'", name))
	}

	if tags := NeedsDetailTags(content); len(tags) > 0 {
		issues = append(issues, fmt.Sprintf("%s: Contains %d [NEEDS_DETAIL] tags", name, len(tags)))
	}

	return issues, warnings
}
