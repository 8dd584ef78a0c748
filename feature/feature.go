// Package feature derives where each feature under prds/ stands in the
// research, PRD, and decomposition workflow.
package feature

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	internalage "github.com/amonks/prdkit/internal/age"
	"github.com/amonks/prdkit/internal/paths"
)

// FeatureStatus is a feature's position in the workflow.
type FeatureStatus string

const (
	StatusNotStarted            FeatureStatus = "not_started"
	StatusDiscoveryInProgress   FeatureStatus = "discovery_in_progress"
	StatusDiscoveryComplete     FeatureStatus = "discovery_complete"
	StatusDrafted               FeatureStatus = "drafted"
	StatusApproved              FeatureStatus = "approved"
	StatusDecomposed            FeatureStatus = "decomposed"
	StatusDeliverablesGenerated FeatureStatus = "deliverables_generated"
)

var approvedPattern = regexp.MustCompile(`Status.*Approved`)

// ValidStatuses returns all statuses in workflow order.
func ValidStatuses() []FeatureStatus {
	return []FeatureStatus{
		StatusNotStarted,
		StatusDiscoveryInProgress,
		StatusDiscoveryComplete,
		StatusDrafted,
		StatusApproved,
		StatusDecomposed,
		StatusDeliverablesGenerated,
	}
}

// Summary describes one feature directory.
type Summary struct {
	Name         string        `json:"name"`
	Status       FeatureStatus `json:"status"`
	Documents    []string      `json:"documents"`
	Deliverables int           `json:"deliverables"`
	Updated      time.Time     `json:"updated"`
}

// Status reports how far the named feature has progressed. The most advanced
// artifact present decides: generated deliverable files, then the map, then
// the PRD (approved when it carries an approved status line), then research
// notes (in progress while they still contain [NEEDS_DETAIL: tags).
func Status(project paths.Project, name string) (FeatureStatus, error) {
	exists, err := isDir(project.FeatureDir(name))
	if err != nil || !exists {
		return StatusNotStarted, err
	}

	files, err := deliverableFiles(project, name)
	if err != nil {
		return StatusNotStarted, err
	}
	if len(files) > 0 {
		return StatusDeliverablesGenerated, nil
	}

	if ok, err := isFile(project.DeliverablesMap(name)); err != nil {
		return StatusNotStarted, err
	} else if ok {
		return StatusDecomposed, nil
	}

	if content, ok, err := readIfFile(project.PRDFile(name)); err != nil {
		return StatusNotStarted, err
	} else if ok {
		if approvedPattern.Match(content) {
			return StatusApproved, nil
		}
		return StatusDrafted, nil
	}

	if content, ok, err := readIfFile(project.ResearchFile(name)); err != nil {
		return StatusNotStarted, err
	} else if ok {
		if strings.Contains(string(content), "[NEEDS_DETAIL:") {
			return StatusDiscoveryInProgress, nil
		}
		return StatusDiscoveryComplete, nil
	}

	return StatusNotStarted, nil
}

// Describe builds the summary for one feature.
func Describe(project paths.Project, name string) (Summary, error) {
	status, err := Status(project, name)
	if err != nil {
		return Summary{}, fmt.Errorf("feature %s: %w", name, err)
	}

	summary := Summary{Name: name, Status: status, Documents: []string{}}
	candidates := []string{
		project.ResearchFile(name),
		project.PRDFile(name),
		project.DeliverablesMap(name),
	}
	var times []time.Time
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		rel, relErr := filepath.Rel(project.FeatureDir(name), path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		summary.Documents = append(summary.Documents, filepath.ToSlash(rel))
		times = append(times, info.ModTime())
	}

	files, err := deliverableFiles(project, name)
	if err != nil {
		return Summary{}, fmt.Errorf("feature %s: %w", name, err)
	}
	summary.Deliverables = len(files)
	for _, path := range files {
		if info, err := os.Stat(path); err == nil {
			times = append(times, info.ModTime())
		}
	}
	summary.Updated = internalage.Newest(times...)

	return summary, nil
}

// List summarizes every feature directory under prds/, sorted by name.
// A project without a prds/ directory has no features.
func List(project paths.Project) ([]Summary, error) {
	entries, err := os.ReadDir(project.PRDsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return []Summary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		summary, err := Describe(project, name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func deliverableFiles(project paths.Project, name string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(project.DeliverablesDir(name), paths.DeliverableFilePattern))
	if err != nil {
		return nil, fmt.Errorf("list deliverable files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

func readIfFile(path string) ([]byte, bool, error) {
	ok, err := isFile(path)
	if err != nil || !ok {
		return nil, false, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return content, true, nil
}
