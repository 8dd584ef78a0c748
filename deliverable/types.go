// Package deliverable validates and orders the deliverables produced when a PRD
// is decomposed into units of technical work.
//
// A deliverables map is a JSON document listing deliverables and the ids of the
// deliverables each one depends on. The package never touches the filesystem
// beyond Load; everything else is a pure function of the decoded set:
//   - Validate, ValidateMap report structural defects (duplicates, dangling
//     references, cycles, missing fields)
//   - Resolve computes a phase plan where each phase may run in parallel
package deliverable

import "sort"

// Priority ranks a deliverable relative to its siblings.
type Priority string

const (
	// PriorityHigh marks a deliverable to schedule first among its peers.
	PriorityHigh Priority = "high"

	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"

	// PriorityLow marks a deliverable that can slip.
	PriorityLow Priority = "low"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Deliverable is a node in the dependency graph.
type Deliverable struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	File         string   `json:"file"`
	Priority     Priority `json:"priority"`
	Dependencies []string `json:"dependencies"`
}

// Set is the unit of validation and ordering.
// Insertion order carries no meaning; listings derived from a set are sorted by id.
type Set []Deliverable

// Lookup returns the first deliverable with the given id.
func (s Set) Lookup(id string) (Deliverable, bool) {
	for _, d := range s {
		if d.ID == id {
			return d, true
		}
	}
	return Deliverable{}, false
}

// SortedIDs returns the distinct ids in the set in ascending order.
func (s Set) SortedIDs() []string {
	seen := make(map[string]bool, len(s))
	ids := make([]string, 0, len(s))
	for _, d := range s {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}

// firstOccurrences maps each id to its first deliverable in the set.
// Later duplicates are ignored so graph construction stays defined.
func (s Set) firstOccurrences() map[string]Deliverable {
	byID := make(map[string]Deliverable, len(s))
	for _, d := range s {
		if _, ok := byID[d.ID]; ok {
			continue
		}
		byID[d.ID] = d
	}
	return byID
}

// uniqueDependencies returns deps without repeated ids, preserving order.
func uniqueDependencies(deps []string) []string {
	if len(deps) < 2 {
		return deps
	}
	seen := make(map[string]bool, len(deps))
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		out = append(out, dep)
	}
	return out
}

// Map is a decoded deliverables-map.json document.
type Map struct {
	SourcePRD    string `json:"source_prd"`
	Deliverables Set    `json:"deliverables"`

	hasSourcePRD    bool
	hasDeliverables bool
	missing         []MissingField
	badPriorities   []invalidPriority
}

// MissingField records a required field absent from a deliverable entry.
type MissingField struct {
	Index int
	Field string
}

type invalidPriority struct {
	index int
	value Priority
}

// MissingFields returns the required fields absent from the document's entries,
// in document order.
func (m *Map) MissingFields() []MissingField {
	return append([]MissingField(nil), m.missing...)
}

// Report is the result of a structural validation.
type Report struct {
	Passed   bool     `json:"passed"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// NewReport builds a report whose Passed flag reflects issues.
// Nil slices are replaced with empty ones so JSON output lists [] rather than null.
func NewReport(issues, warnings []string) Report {
	if issues == nil {
		issues = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Report{Passed: len(issues) == 0, Issues: issues, Warnings: warnings}
}

// Merge appends other's issues and warnings to r.
func (r Report) Merge(other Report) Report {
	issues := append(append([]string(nil), r.Issues...), other.Issues...)
	warnings := append(append([]string(nil), r.Warnings...), other.Warnings...)
	return NewReport(issues, warnings)
}
