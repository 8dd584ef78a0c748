package deliverable

import (
	"fmt"
	"sort"

	"github.com/amonks/prdkit/internal/validation"
)

// Validate checks a deliverable set for duplicate ids, dangling dependency
// references and circular dependencies. All three checks always run, so a
// single report can carry several classes of defect.
func Validate(set Set) Report {
	return NewReport(issueMessages(Diagnose(set)), nil)
}

// Diagnose returns the structural issues of a set in a stable order:
// duplicates, then dangling references, then cycles.
func Diagnose(set Set) []Issue {
	var issues []Issue
	issues = append(issues, duplicateIssues(set)...)
	issues = append(issues, danglingIssues(set)...)
	issues = append(issues, cycleIssues(set)...)
	return issues
}

// ValidateMap checks the shape of a decoded map document before running Validate
// on its deliverables.
func ValidateMap(m *Map) Report {
	if m == nil {
		return NewReport([]string{ErrMalformedMap.Error()}, nil)
	}

	var issues []Issue
	if !m.hasSourcePRD {
		issues = append(issues, missingMapFieldIssue("source_prd"))
	}
	if !m.hasDeliverables {
		issues = append(issues, missingMapFieldIssue("deliverables"))
	}
	if len(m.Deliverables) == 0 {
		messages := issueMessages(issues)
		messages = append(messages, "No deliverables defined in map")
		return NewReport(messages, nil)
	}

	for _, missing := range m.missing {
		issues = append(issues, missingRequiredFieldIssue(missing.Index, missing.Field))
	}
	for _, bad := range m.badPriorities {
		err := validation.FormatInvalidValueError(ErrInvalidPriority, bad.value, ValidPriorities())
		issues = append(issues, Issue{
			Kind:    IssueInvalidPriority,
			Index:   bad.index,
			Field:   "priority",
			Message: fmt.Sprintf("Deliverable %d: %v", bad.index, err),
		})
	}

	issues = append(issues, Diagnose(m.Deliverables)...)
	return NewReport(issueMessages(issues), nil)
}

func duplicateIssues(set Set) []Issue {
	counts := make(map[string]int, len(set))
	for _, d := range set {
		counts[d.ID]++
	}

	var issues []Issue
	for _, id := range set.SortedIDs() {
		if counts[id] > 1 {
			issues = append(issues, duplicateIDIssue(id))
		}
	}
	return issues
}

func danglingIssues(set Set) []Issue {
	known := set.firstOccurrences()

	ordered := append(Set(nil), set...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	var issues []Issue
	reported := make(map[[2]string]bool)
	for _, d := range ordered {
		for _, dep := range d.Dependencies {
			if _, ok := known[dep]; ok {
				continue
			}
			key := [2]string{d.ID, dep}
			if reported[key] {
				continue
			}
			reported[key] = true
			issues = append(issues, danglingDependencyIssue(d.ID, dep))
		}
	}
	return issues
}

// dependents builds the edges prerequisite -> dependent over the first
// occurrence of every id, skipping dangling references. Edge lists are sorted.
func dependents(byID map[string]Deliverable) map[string][]string {
	edges := make(map[string][]string, len(byID))
	for id, d := range byID {
		for _, dep := range uniqueDependencies(d.Dependencies) {
			if _, ok := byID[dep]; !ok {
				continue
			}
			edges[dep] = append(edges[dep], id)
		}
	}
	for id := range edges {
		sort.Strings(edges[id])
	}
	return edges
}

type dfsFrame struct {
	id   string
	next int
}

// cycleIssues runs an iterative depth-first traversal over the dependency
// graph. Every node is visited once overall; each back edge onto the current
// path yields one cycle, traced from the repeated node back to itself.
func cycleIssues(set Set) []Issue {
	byID := set.firstOccurrences()
	edges := dependents(byID)

	visited := make(map[string]bool, len(byID))
	onPath := make(map[string]int, len(byID))
	reported := make(map[string]bool)

	var issues []Issue
	for _, root := range set.SortedIDs() {
		if visited[root] {
			continue
		}

		visited[root] = true
		onPath[root] = 0
		path := []string{root}
		stack := []dfsFrame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := edges[top.id]
			if top.next >= len(children) {
				delete(onPath, top.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			child := children[top.next]
			top.next++

			if start, ok := onPath[child]; ok {
				cycle := append(append([]string(nil), path[start:]...), child)
				key := FormatCycle(cycle)
				if !reported[key] {
					reported[key] = true
					issues = append(issues, circularDependencyIssue(cycle))
				}
				continue
			}
			if visited[child] {
				continue
			}

			visited[child] = true
			onPath[child] = len(path)
			path = append(path, child)
			stack = append(stack, dfsFrame{id: child})
		}
	}
	return issues
}
