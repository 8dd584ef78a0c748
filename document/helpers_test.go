package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDeliverable = `# Deliverable 001: Sign in

**Deliverable ID**: 001
**Source PRD**: prds/auth/PRD.md

## Context

Members need to sign in.

## User Stories

US1 from the PRD.

## Acceptance Criteria

Members can sign in.

## Out of Scope

Password reset ships in deliverable 002.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(replaceFences(content)), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func replaceFences(content string) string {
	return strings.ReplaceAll(content, "'''", "```")
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
