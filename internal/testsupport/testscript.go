package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	prdPath   string
	buildErr  error
)

// BuildPrd builds the prd binary once and returns its path.
func BuildPrd(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "prd-bin-")
		if err != nil {
			buildErr = err
			return
		}

		prdPath = filepath.Join(binDir, "prd")
		cmd := exec.Command("go", "build", "-o", prdPath, "./cmd/prd")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build prd: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return prdPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("PRD", BuildPrd(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdJSONField compares a top-level field of a JSON file against an expected
// value, after encoding the field back to JSON.
func CmdJSONField(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 3 {
		ts.Fatalf("usage: jsonfield FILE FIELD EXPECTED")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &doc); err != nil {
		ts.Fatalf("parse %s: %v", args[0], err)
	}

	raw, ok := doc[args[1]]
	if !ok {
		if neg {
			return
		}
		ts.Fatalf("field %q not found in %s", args[1], args[0])
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		ts.Fatalf("parse field %q: %v", args[1], err)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		ts.Fatalf("encode field %q: %v", args[1], err)
	}

	matched := string(encoded) == args[2]
	if matched == neg {
		if neg {
			ts.Fatalf("field %q unexpectedly equals %s", args[1], args[2])
		}
		ts.Fatalf("field %q = %s, want %s", args[1], encoded, args[2])
	}
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
