package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/prdkit/internal/paths"
)

func writeShowFixture(t *testing.T, project paths.Project, feature, mapContent string) {
	t.Helper()

	dir := project.DeliverablesDir(feature)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, paths.DeliverablesMapName), []byte(mapContent), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}
}

const showMap = `{"source_prd": "PRD.md", "deliverables": [
  {"id": "001", "name": "sign-in", "title": "Sign in", "file": "deliverable-001.md"}
]}`

func TestFindDeliverableFile(t *testing.T) {
	project := paths.NewProject(t.TempDir())
	writeShowFixture(t, project, "auth", showMap)
	if err := os.MkdirAll(project.FeatureDir("empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := findDeliverableFile(project, "", "001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(project.DeliverablesDir("auth"), "deliverable-001.md")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindDeliverableFileNotFound(t *testing.T) {
	project := paths.NewProject(t.TempDir())
	writeShowFixture(t, project, "auth", showMap)

	_, err := findDeliverableFile(project, "", "999")
	if !errors.Is(err, errDeliverableNotFound) {
		t.Fatalf("expected errDeliverableNotFound, got %v", err)
	}
}

func TestFindDeliverableFileAmbiguous(t *testing.T) {
	project := paths.NewProject(t.TempDir())
	writeShowFixture(t, project, "auth", showMap)
	writeShowFixture(t, project, "billing", showMap)

	_, err := findDeliverableFile(project, "", "001")
	if err == nil || !strings.Contains(err.Error(), "use --feature") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}

	got, err := findDeliverableFile(project, "billing", "001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, filepath.Join("billing", "deliverables")) {
		t.Fatalf("expected billing deliverable, got %q", got)
	}
}
