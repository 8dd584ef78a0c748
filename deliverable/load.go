package deliverable

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	internalstrings "github.com/amonks/prdkit/internal/strings"
)

type rawMap struct {
	SourcePRD    *string           `json:"source_prd"`
	Deliverables *[]rawDeliverable `json:"deliverables"`
}

type rawDeliverable struct {
	ID           *string  `json:"id"`
	Name         *string  `json:"name"`
	Title        *string  `json:"title"`
	File         string   `json:"file"`
	Priority     Priority `json:"priority"`
	Dependencies []string `json:"dependencies"`
}

// Load reads and decodes the deliverables map at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMapNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read deliverables map %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadSet reads the map at path and returns its deliverables, failing with
// ErrNoDeliverables when the map lists none.
func LoadSet(path string) (Set, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(m.Deliverables) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDeliverables, path)
	}
	return m.Deliverables, nil
}

// Parse decodes a deliverables map document.
//
// Absent required fields are not errors here; they are recorded on the Map and
// reported by ValidateMap. Priorities are lowercased and an empty priority
// defaults to medium.
func Parse(data []byte) (*Map, error) {
	var raw rawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
	}

	m := &Map{
		hasSourcePRD:    raw.SourcePRD != nil,
		hasDeliverables: raw.Deliverables != nil,
	}
	if raw.SourcePRD != nil {
		m.SourcePRD = *raw.SourcePRD
	}
	if raw.Deliverables == nil {
		return m, nil
	}

	m.Deliverables = make(Set, 0, len(*raw.Deliverables))
	for i, entry := range *raw.Deliverables {
		d := Deliverable{
			ID:           valueOrMissing(m, i, "id", entry.ID),
			Name:         valueOrMissing(m, i, "name", entry.Name),
			Title:        valueOrMissing(m, i, "title", entry.Title),
			File:         entry.File,
			Priority:     Priority(internalstrings.NormalizeLowerTrimSpace(string(entry.Priority))),
			Dependencies: entry.Dependencies,
		}
		if d.Priority == "" {
			d.Priority = PriorityMedium
		} else if !d.Priority.IsValid() {
			m.badPriorities = append(m.badPriorities, invalidPriority{index: i, value: d.Priority})
		}
		if d.Dependencies == nil {
			d.Dependencies = []string{}
		}
		m.Deliverables = append(m.Deliverables, d)
	}
	return m, nil
}

func valueOrMissing(m *Map, index int, field string, value *string) string {
	if value == nil {
		m.missing = append(m.missing, MissingField{Index: index, Field: field})
		return ""
	}
	return *value
}
