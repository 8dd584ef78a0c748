package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/amonks/prdkit/internal/paths"
)

var userStoryHeading = regexp.MustCompile(`^\[US\d+\]`)

// CompletenessReport is the result of checking a PRD.md or research.md document.
type CompletenessReport struct {
	File            string   `json:"file"`
	Passed          bool     `json:"passed"`
	Issues          []string `json:"issues"`
	Warnings        []string `json:"warnings"`
	NeedsDetailTags []string `json:"needs_detail_tags"`
	MissingSections []string `json:"missing_sections"`
}

func newCompletenessReport(file string) CompletenessReport {
	return CompletenessReport{
		File:            file,
		Issues:          []string{},
		Warnings:        []string{},
		NeedsDetailTags: []string{},
		MissingSections: []string{},
	}
}

// CheckCompleteness checks a PRD or research document for required sections
// and unresolved [NEEDS_DETAIL] tags. The file name decides which sections are
// required; other files are only checked for tags and empty sections.
func CheckCompleteness(path string, rules Rules) CompletenessReport {
	report := newCompletenessReport(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.Issues = append(report.Issues, fmt.Sprintf("File not found: %s", path))
		} else {
			report.Issues = append(report.Issues, fmt.Sprintf("Failed to read file: %s", path))
		}
		return report
	}

	return checkCompletenessContent(report, filepath.Base(path), content, rules)
}

func checkCompletenessContent(report CompletenessReport, name string, content []byte, rules Rules) CompletenessReport {
	headings := Headings(content)

	report.NeedsDetailTags = NeedsDetailTags(content)
	if n := len(report.NeedsDetailTags); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d [NEEDS_DETAIL] tags", n))
	}

	for _, section := range requiredSections(name, rules) {
		if !hasSection(headings, section) {
			report.MissingSections = append(report.MissingSections, section)
		}
	}
	if n := len(report.MissingSections); n > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Missing %d required sections", n))
	}

	if name == paths.PRDFileName {
		report.Issues = append(report.Issues, userStoryIssues(headings, content)...)
		if n := countPlaceholders(content); n > 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("Found %d placeholder markers", n))
		}
	}

	empty := 0
	for _, heading := range headings {
		if heading.Level >= 2 && heading.Level <= 3 && heading.Empty {
			empty++
		}
	}
	if empty > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Found %d potentially empty sections", empty))
	}

	report.Passed = len(report.Issues) == 0
	return report
}

func requiredSections(name string, rules Rules) []string {
	switch name {
	case paths.PRDFileName:
		return rules.PRDSections
	case paths.ResearchFileName:
		return rules.ResearchSections
	default:
		return nil
	}
}

func userStoryIssues(headings []Heading, content []byte) []string {
	stories := 0
	for _, heading := range headings {
		if heading.Level == 3 && userStoryHeading.MatchString(heading.Text) {
			stories++
		}
	}
	if stories == 0 {
		return []string{"No user stories found (expected format: ### [US1] Title)"}
	}

	var issues []string
	checks := []struct {
		marker  string
		message string
	}{
		{"**As a**", "User stories missing 'As a' format"},
		{"**I want to**", "User stories missing 'I want to' format"},
		{"**So that**", "User stories missing 'So that' format"},
		{"```gherkin", "User stories missing Gherkin acceptance criteria"},
	}
	for _, check := range checks {
		if !bytes.Contains(content, []byte(check.marker)) {
			issues = append(issues, check.message)
		}
	}
	return issues
}
