package main

import (
	"errors"
	"testing"
)

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "prd" {
		t.Fatalf("expected root command name prd, got %q", rootCmd.Use)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"validate", "order", "check", "status", "show", "init", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == nil || cmd.Name() != name {
			t.Fatalf("expected %s command to be registered, got %v (%v)", name, cmd, err)
		}
	}
}

func TestExitErrorCode(t *testing.T) {
	var err error = exitError{code: 3}

	var exitErr interface{ ExitCode() int }
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %v", err)
	}
	if err.Error() != "exit 3" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestExitErrorUnwraps(t *testing.T) {
	err := exitError{code: 1, err: errFeatureNotFound}

	if !errors.Is(err, errFeatureNotFound) {
		t.Fatal("expected exitError to unwrap")
	}
	if err.Error() != errFeatureNotFound.Error() {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
