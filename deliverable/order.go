package deliverable

import (
	"encoding/json"
	"errors"
	"sort"
)

// Failure messages reported by Order.
const (
	ErrorCircularDependencies = "Circular dependencies detected"
	ErrorLoadFailed           = "Failed to load deliverables map"
	ErrorNoDeliverables       = "No deliverables found"
)

// PhaseEntry is the deliverable summary listed in a phase.
type PhaseEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	File     string   `json:"file"`
	Priority Priority `json:"priority"`
}

// Phase is a group of deliverables whose prerequisites all belong to earlier phases.
type Phase struct {
	Number       int          `json:"phase"`
	Parallel     bool         `json:"parallel"`
	Deliverables []PhaseEntry `json:"deliverables"`
}

// IDs returns the ids of the deliverables in the phase.
func (p Phase) IDs() []string {
	ids := make([]string, 0, len(p.Deliverables))
	for _, entry := range p.Deliverables {
		ids = append(ids, entry.ID)
	}
	return ids
}

// Order is the implementation plan derived from a deliverable set.
type Order struct {
	Success           bool
	Source            string
	TotalDeliverables int
	TotalPhases       int
	Phases            []Phase
	Error             string
}

type orderJSON struct {
	Success           bool    `json:"success"`
	Source            string  `json:"source,omitempty"`
	TotalDeliverables int     `json:"total_deliverables"`
	TotalPhases       int     `json:"total_phases"`
	Phases            []Phase `json:"phases"`
}

type orderFailureJSON struct {
	Success bool    `json:"success"`
	Error   string  `json:"error"`
	Phases  []Phase `json:"phases"`
}

// MarshalJSON emits the success shape with totals, or the failure shape
// with an error message and an empty phase list.
func (o Order) MarshalJSON() ([]byte, error) {
	if !o.Success {
		return json.Marshal(orderFailureJSON{Error: o.Error, Phases: []Phase{}})
	}
	phases := o.Phases
	if phases == nil {
		phases = []Phase{}
	}
	return json.Marshal(orderJSON{
		Success:           true,
		Source:            o.Source,
		TotalDeliverables: o.TotalDeliverables,
		TotalPhases:       o.TotalPhases,
		Phases:            phases,
	})
}

// UnmarshalJSON accepts both the success and failure shapes.
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw struct {
		orderJSON
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order{
		Success:           raw.Success,
		Source:            raw.Source,
		TotalDeliverables: raw.TotalDeliverables,
		TotalPhases:       raw.TotalPhases,
		Phases:            raw.Phases,
		Error:             raw.Error,
	}
	return nil
}

func failedOrder(message string) Order {
	return Order{Error: message, Phases: []Phase{}}
}

// Resolve groups a set into phases using Kahn's algorithm. Phase members are
// sorted by id, and a phase is parallel when it holds more than one deliverable.
//
// Dependencies on ids absent from the set count as satisfied. When some
// deliverables can never be placed, Resolve reports failure with no phases;
// Validate explains which cycle is responsible. A repeated id places only its
// first record, so a set with duplicates also fails.
func Resolve(set Set) Order {
	byID := set.firstOccurrences()
	edges := dependents(byID)

	inDegree := make(map[string]int, len(byID))
	for id, d := range byID {
		for _, dep := range uniqueDependencies(d.Dependencies) {
			if _, ok := byID[dep]; ok {
				inDegree[id]++
			}
		}
	}

	var current []string
	for id := range byID {
		if inDegree[id] == 0 {
			current = append(current, id)
		}
	}

	phases := []Phase{}
	placed := 0
	for len(current) > 0 {
		sort.Strings(current)
		phases = append(phases, newPhase(len(phases)+1, current, byID))
		placed += len(current)

		var next []string
		for _, id := range current {
			for _, dependent := range edges[id] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		current = next
	}

	if placed < len(set) {
		return failedOrder(ErrorCircularDependencies)
	}

	return Order{
		Success:           true,
		TotalDeliverables: len(set),
		TotalPhases:       len(phases),
		Phases:            phases,
	}
}

func newPhase(number int, ids []string, byID map[string]Deliverable) Phase {
	entries := make([]PhaseEntry, 0, len(ids))
	for _, id := range ids {
		d := byID[id]
		priority := d.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		entries = append(entries, PhaseEntry{
			ID:       d.ID,
			Name:     d.Name,
			Title:    d.Title,
			File:     d.File,
			Priority: priority,
		})
	}
	return Phase{Number: number, Parallel: len(entries) > 1, Deliverables: entries}
}

// OrderFromMap loads the map at path and resolves its deliverables.
// Loader failures are reported in the returned Order rather than as errors.
func OrderFromMap(path string) Order {
	set, err := LoadSet(path)
	switch {
	case errors.Is(err, ErrNoDeliverables):
		return failedOrder(ErrorNoDeliverables)
	case err != nil:
		return failedOrder(ErrorLoadFailed)
	}

	order := Resolve(set)
	if order.Success {
		order.Source = path
	}
	return order
}
