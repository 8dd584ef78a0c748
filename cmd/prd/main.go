// Package main implements the prd CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/prdkit/internal/config"
	"github.com/amonks/prdkit/internal/paths"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := ui.NewLogger(os.Stderr, os.Stderr)
		var exitErr exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				logger.Error(exitErr.err.Error())
			}
			os.Exit(exitErr.ExitCode())
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var errFeatureNotFound = errors.New("feature not found")

var rootCmd = &cobra.Command{
	Use:           "prd",
	Short:         "PRD Kit - validate and sequence PRD deliverables",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// resolvePath returns args[0] or the current directory.
func resolvePath(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Clean(args[0]), nil
	}
	return paths.WorkingDir()
}

// currentProject finds the project containing the current directory.
func currentProject() (paths.Project, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return paths.Project{}, err
	}
	return paths.FindProject(cwd)
}

// loadConfig loads configuration for the current project, or for the current
// directory when it is not inside a project.
func loadConfig() (*config.Config, error) {
	project, err := currentProject()
	if err == nil {
		return config.Load(project.Root)
	}
	if !errors.Is(err, paths.ErrNotInitialized) {
		return nil, err
	}
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// featurePath resolves path relative to a feature when feature is set.
func featurePath(feature string, resolve func(paths.Project, string) string) (string, error) {
	project, err := currentProject()
	if err != nil {
		return "", err
	}
	dir := project.FeatureDir(feature)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", errFeatureNotFound, feature)
	}
	return resolve(project, feature), nil
}
