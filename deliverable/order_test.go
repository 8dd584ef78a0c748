package deliverable

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func phaseIDs(order Order) []string {
	out := make([]string, 0, len(order.Phases))
	for _, phase := range order.Phases {
		out = append(out, strings.Join(phase.IDs(), ","))
	}
	return out
}

func TestResolveChain(t *testing.T) {
	set := Set{
		{ID: "C", Dependencies: deps("B")},
		{ID: "A"},
		{ID: "B", Dependencies: deps("A")},
	}

	order := Resolve(set)

	if !order.Success {
		t.Fatalf("expected success, got error %q", order.Error)
	}
	if got := strings.Join(phaseIDs(order), "|"); got != "A|B|C" {
		t.Fatalf("expected phases A|B|C, got %s", got)
	}
	for _, phase := range order.Phases {
		if phase.Parallel {
			t.Fatalf("expected phase %d to be sequential", phase.Number)
		}
	}
	if order.TotalPhases != 3 || order.TotalDeliverables != 3 {
		t.Fatalf("expected 3 phases and 3 deliverables, got %d and %d", order.TotalPhases, order.TotalDeliverables)
	}
}

func TestResolveParallelPhase(t *testing.T) {
	set := Set{
		{ID: "C", Dependencies: deps("A", "B")},
		{ID: "B"},
		{ID: "A"},
	}

	order := Resolve(set)

	if !order.Success {
		t.Fatalf("expected success, got error %q", order.Error)
	}
	if got := strings.Join(phaseIDs(order), "|"); got != "A,B|C" {
		t.Fatalf("expected phases A,B|C, got %s", got)
	}
	if !order.Phases[0].Parallel {
		t.Fatalf("expected first phase to be parallel")
	}
	if order.Phases[1].Parallel {
		t.Fatalf("expected second phase to be sequential")
	}
	if order.Phases[0].Number != 1 || order.Phases[1].Number != 2 {
		t.Fatalf("expected 1-based phase numbers, got %d and %d", order.Phases[0].Number, order.Phases[1].Number)
	}
}

func TestResolveCycleFails(t *testing.T) {
	set := Set{
		{ID: "A", Dependencies: deps("B")},
		{ID: "B", Dependencies: deps("A")},
	}

	order := Resolve(set)

	if order.Success {
		t.Fatalf("expected failure")
	}
	if order.Error != ErrorCircularDependencies {
		t.Fatalf("expected %q, got %q", ErrorCircularDependencies, order.Error)
	}
	if len(order.Phases) != 0 {
		t.Fatalf("expected no phases, got %v", order.Phases)
	}
}

func TestResolveCycleBehindValidPrefixFails(t *testing.T) {
	set := Set{
		{ID: "001"},
		{ID: "002", Dependencies: deps("001", "003")},
		{ID: "003", Dependencies: deps("002")},
	}

	order := Resolve(set)

	if order.Success {
		t.Fatalf("expected partial plan to be rejected")
	}
}

func TestResolveSelfDependencyFails(t *testing.T) {
	order := Resolve(Set{{ID: "003", Dependencies: deps("003")}})

	if order.Success {
		t.Fatalf("expected self dependency to block ordering")
	}
}

func TestResolveIgnoresDanglingDependencies(t *testing.T) {
	set := Set{
		{ID: "001", Dependencies: deps("999")},
		{ID: "002", Dependencies: deps("001")},
	}

	order := Resolve(set)

	if !order.Success {
		t.Fatalf("expected success, got error %q", order.Error)
	}
	if got := strings.Join(phaseIDs(order), "|"); got != "001|002" {
		t.Fatalf("expected phases 001|002, got %s", got)
	}
}

func TestResolveRepeatedDependencyEntries(t *testing.T) {
	set := Set{
		{ID: "a"},
		{ID: "b", Dependencies: deps("a", "a")},
	}

	order := Resolve(set)

	if got := strings.Join(phaseIDs(order), "|"); got != "a|b" {
		t.Fatalf("expected phases a|b, got %s", got)
	}
}

func TestResolveDuplicateIDsFail(t *testing.T) {
	set := Set{
		{ID: "001"},
		{ID: "001", Dependencies: deps("002")},
		{ID: "002"},
	}

	order := Resolve(set)

	if order.Success {
		t.Fatalf("expected duplicate ids to fail, got phases %v", phaseIDs(order))
	}
	if order.Error != ErrorCircularDependencies {
		t.Fatalf("expected %q, got %q", ErrorCircularDependencies, order.Error)
	}
	if len(order.Phases) != 0 || order.TotalDeliverables != 0 {
		t.Fatalf("expected empty failure order, got %+v", order)
	}
}

func TestValidateAndResolveConcurrently(t *testing.T) {
	set := Set{
		{ID: "001"},
		{ID: "002", Dependencies: deps("001")},
		{ID: "003", Dependencies: deps("001", "404")},
		{ID: "004", Dependencies: deps("002", "003")},
		{ID: "005", Dependencies: deps("006")},
		{ID: "006", Dependencies: deps("005")},
	}

	wantReport, err := json.Marshal(Validate(set))
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	wantOrder, err := json.Marshal(Resolve(set[:4]))
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}

	const workers = 8
	reports := make([][]byte, workers)
	orders := make([][]byte, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], _ = json.Marshal(Validate(set))
			orders[i], _ = json.Marshal(Resolve(set[:4]))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if !bytes.Equal(reports[i], wantReport) {
			t.Fatalf("worker %d: expected report %s, got %s", i, wantReport, reports[i])
		}
		if !bytes.Equal(orders[i], wantOrder) {
			t.Fatalf("worker %d: expected order %s, got %s", i, wantOrder, orders[i])
		}
	}
}

func TestResolveEmptySet(t *testing.T) {
	order := Resolve(Set{})

	if !order.Success {
		t.Fatalf("expected empty set to succeed")
	}
	if order.TotalPhases != 0 || len(order.Phases) != 0 {
		t.Fatalf("expected no phases, got %d", order.TotalPhases)
	}

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"phases":[]`)) || !bytes.Contains(data, []byte(`"total_phases":0`)) {
		t.Fatalf("expected empty phases in JSON, got %s", data)
	}
}

func TestResolveHappensBefore(t *testing.T) {
	set := Set{
		{ID: "api", Dependencies: deps("schema")},
		{ID: "schema"},
		{ID: "ui", Dependencies: deps("api", "design")},
		{ID: "design"},
		{ID: "docs", Dependencies: deps("ui", "api")},
		{ID: "billing", Dependencies: deps("schema")},
		{ID: "launch", Dependencies: deps("docs", "billing")},
	}

	order := Resolve(set)
	if !order.Success {
		t.Fatalf("expected success, got error %q", order.Error)
	}

	phaseOf := make(map[string]int)
	for _, phase := range order.Phases {
		for _, id := range phase.IDs() {
			if _, dup := phaseOf[id]; dup {
				t.Fatalf("deliverable %s placed twice", id)
			}
			phaseOf[id] = phase.Number
		}
	}
	if len(phaseOf) != len(set) {
		t.Fatalf("expected every deliverable placed, got %d of %d", len(phaseOf), len(set))
	}
	for _, d := range set {
		for _, dep := range d.Dependencies {
			if phaseOf[dep] >= phaseOf[d.ID] {
				t.Fatalf("dependency %s (phase %d) not before %s (phase %d)", dep, phaseOf[dep], d.ID, phaseOf[d.ID])
			}
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	set := Set{
		{ID: "e", Dependencies: deps("a")},
		{ID: "d", Dependencies: deps("a")},
		{ID: "c"},
		{ID: "b"},
		{ID: "a"},
		{ID: "f", Dependencies: deps("d", "e", "c")},
	}

	first, err := json.Marshal(Resolve(set))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, err := json.Marshal(Resolve(set))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("expected identical output, got\n%s\n%s", first, next)
		}
	}
}

func TestResolveDefaultsPriority(t *testing.T) {
	order := Resolve(Set{{ID: "001", Name: "auth", Title: "Auth", File: "deliverable-001-auth.md"}})

	entry := order.Phases[0].Deliverables[0]
	if entry.Priority != PriorityMedium {
		t.Fatalf("expected medium priority, got %q", entry.Priority)
	}
	if entry.File != "deliverable-001-auth.md" || entry.Title != "Auth" {
		t.Fatalf("expected metadata to carry through, got %+v", entry)
	}
}

func TestOrderFailureJSONShape(t *testing.T) {
	order := Resolve(Set{
		{ID: "A", Dependencies: deps("B")},
		{ID: "B", Dependencies: deps("A")},
	})

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"success":false,"error":"Circular dependencies detected","phases":[]}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestOrderJSONRoundTrip(t *testing.T) {
	order := Resolve(Set{{ID: "a"}, {ID: "b", Dependencies: deps("a")}})
	order.Source = "map.json"

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Order
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Source != "map.json" || decoded.TotalPhases != 2 || strings.Join(phaseIDs(decoded), "|") != "a|b" {
		t.Fatalf("unexpected decoded order: %+v", decoded)
	}
}

func TestOrderFromMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deliverables-map.json")
	content := `{
  "source_prd": "prds/checkout/PRD.md",
  "deliverables": [
    {"id": "002", "name": "cart", "title": "Cart", "file": "deliverable-002-cart.md", "priority": "HIGH", "dependencies": ["001"]},
    {"id": "001", "name": "catalog", "title": "Catalog", "file": "deliverable-001-catalog.md"}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	order := OrderFromMap(path)

	if !order.Success {
		t.Fatalf("expected success, got error %q", order.Error)
	}
	if order.Source != path {
		t.Fatalf("expected source %q, got %q", path, order.Source)
	}
	if got := strings.Join(phaseIDs(order), "|"); got != "001|002" {
		t.Fatalf("expected phases 001|002, got %s", got)
	}
	if order.Phases[1].Deliverables[0].Priority != PriorityHigh {
		t.Fatalf("expected normalized high priority, got %q", order.Phases[1].Deliverables[0].Priority)
	}
}

func TestOrderFromMapLoaderFailures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
		want    string
	}{
		{"missing file", nil, ErrorLoadFailed},
		{"invalid json", strPtr("{not json"), ErrorLoadFailed},
		{"missing deliverables", strPtr(`{"source_prd": "PRD.md"}`), ErrorNoDeliverables},
		{"empty deliverables", strPtr(`{"source_prd": "PRD.md", "deliverables": []}`), ErrorNoDeliverables},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".json")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o644); err != nil {
					t.Fatalf("write map: %v", err)
				}
			}

			order := OrderFromMap(path)

			if order.Success {
				t.Fatalf("expected failure")
			}
			if order.Error != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, order.Error)
			}
		})
	}
}

func strPtr(value string) *string {
	return &value
}
