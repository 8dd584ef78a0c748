package deliverable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMapNotFound is returned when the deliverables map cannot be read.
	ErrMapNotFound = errors.New("deliverables map not found")

	// ErrMalformedMap is returned when the deliverables map is not valid JSON
	// or does not match the expected shape.
	ErrMalformedMap = errors.New("malformed deliverables map")

	// ErrNoDeliverables is returned when the deliverables map defines no deliverables.
	ErrNoDeliverables = errors.New("no deliverables defined in map")

	// ErrInvalidPriority is returned when a priority is not one of the known values.
	ErrInvalidPriority = errors.New("invalid priority")
)

// IssueKind classifies a structural defect.
type IssueKind string

const (
	IssueDuplicateID          IssueKind = "duplicate_id"
	IssueDanglingDependency   IssueKind = "dangling_dependency"
	IssueCircularDependency   IssueKind = "circular_dependency"
	IssueMissingRequiredField IssueKind = "missing_required_field"
	IssueMissingMapField      IssueKind = "missing_map_field"
	IssueInvalidPriority      IssueKind = "invalid_priority"
)

// Issue is a single structural defect found in a deliverable set.
type Issue struct {
	Kind IssueKind

	// ID is the deliverable the issue is about.
	ID string

	// Dependency is the missing prerequisite for dangling dependencies.
	Dependency string

	// Path is the cycle trace for circular dependencies, first node repeated last.
	Path []string

	// Index and Field locate missing required fields.
	Index int
	Field string

	Message string
}

func (i Issue) String() string {
	return i.Message
}

func duplicateIDIssue(id string) Issue {
	return Issue{
		Kind:    IssueDuplicateID,
		ID:      id,
		Message: fmt.Sprintf("Duplicate deliverable ID: '%s'", id),
	}
}

func danglingDependencyIssue(from, to string) Issue {
	return Issue{
		Kind:       IssueDanglingDependency,
		ID:         from,
		Dependency: to,
		Message:    fmt.Sprintf("Deliverable '%s' references non-existent dependency '%s'", from, to),
	}
}

func circularDependencyIssue(path []string) Issue {
	return Issue{
		Kind:    IssueCircularDependency,
		ID:      path[0],
		Path:    path,
		Message: "Circular dependency detected: " + FormatCycle(path),
	}
}

func missingRequiredFieldIssue(index int, field string) Issue {
	return Issue{
		Kind:    IssueMissingRequiredField,
		Index:   index,
		Field:   field,
		Message: fmt.Sprintf("Deliverable %d: Missing required field '%s'", index, field),
	}
}

func missingMapFieldIssue(field string) Issue {
	return Issue{
		Kind:    IssueMissingMapField,
		Field:   field,
		Message: fmt.Sprintf("Missing required field in map: '%s'", field),
	}
}

// FormatCycle renders a cycle trace as "a -> b -> a".
func FormatCycle(path []string) string {
	return strings.Join(path, " -> ")
}

func issueMessages(issues []Issue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}
