package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/amonks/prdkit/deliverable"
	"github.com/amonks/prdkit/internal/paths"
)

// Messages for directory-level failures that stop further checks.
const (
	MessageMapNotFound  = paths.DeliverablesMapName + " not found"
	MessageMapMalformed = "Failed to parse " + paths.DeliverablesMapName
)

// CheckDirectory validates a deliverables directory: the map document, each
// deliverable file the map names, and deliverable files the map does not name.
func CheckDirectory(dir string, rules Rules) deliverable.Report {
	m, err := deliverable.Load(filepath.Join(dir, paths.DeliverablesMapName))
	switch {
	case errors.Is(err, deliverable.ErrMapNotFound):
		return deliverable.NewReport([]string{MessageMapNotFound}, nil)
	case err != nil:
		return deliverable.NewReport([]string{MessageMapMalformed}, nil)
	}

	report := deliverable.ValidateMap(m)
	issues := append([]string(nil), report.Issues...)
	warnings := append([]string(nil), report.Warnings...)

	referenced := make(map[string]bool, len(m.Deliverables))
	for _, d := range m.Deliverables {
		if d.File == "" {
			continue
		}
		referenced[d.File] = true
		fileIssues, fileWarnings := CheckDeliverableFile(filepath.Join(dir, d.File), rules)
		issues = append(issues, fileIssues...)
		warnings = append(warnings, fileWarnings...)
	}

	orphans, err := filepath.Glob(filepath.Join(dir, paths.DeliverableFilePattern))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Failed to list deliverable files: %v", err))
	}
	sort.Strings(orphans)
	for _, orphan := range orphans {
		name := filepath.Base(orphan)
		if referenced[name] {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Orphan deliverable file not in map: %s", name))
	}

	return deliverable.NewReport(issues, warnings)
}

// CheckPath validates path, which may name a deliverables directory, a
// deliverables map, or a single deliverable file.
func CheckPath(path string, rules Rules) (deliverable.Report, error) {
	info, err := os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return deliverable.Report{}, fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case err == nil && info.IsDir():
		return CheckDirectory(path, rules), nil
	case filepath.Base(path) == paths.DeliverablesMapName:
		return CheckDirectory(filepath.Dir(path), rules), nil
	default:
		issues, warnings := CheckDeliverableFile(path, rules)
		return deliverable.NewReport(issues, warnings), nil
	}
}
