package main

import (
	"github.com/amonks/prdkit/deliverable"
	"github.com/amonks/prdkit/document"
	"github.com/amonks/prdkit/internal/listflags"
	"github.com/amonks/prdkit/internal/paths"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a deliverables directory, map, or deliverable file",
	Long: `Validate a deliverables directory, map, or deliverable file.

A directory (or its deliverables-map.json) is checked as a whole: the map's
structure and dependency graph, every deliverable file it names, and any
deliverable-*.md files it does not name. Any other path is checked as a
single deliverable file.

The JSON report is written to stdout and a summary to stderr. The command
exits 1 when validation fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateFeature string

type validateOutput struct {
	Path string `json:"path"`
	deliverable.Report
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addFeatureFlagAliases(validateCmd)
	listflags.AddFeatureFlag(validateCmd, &validateFeature)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := validatePath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := document.CheckPath(path, document.RulesFromConfig(cfg))
	if err != nil {
		return err
	}

	if err := encodeJSON(cmd.OutOrStdout(), validateOutput{Path: path, Report: report}); err != nil {
		return err
	}

	logger := ui.NewLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	logVerdict(logger, report.Passed)
	logList(logger, "Issues", report.Issues)
	logList(logger, "Warnings", report.Warnings)

	if !report.Passed {
		return exitError{code: 1}
	}
	return nil
}

func validatePath(args []string) (string, error) {
	if validateFeature != "" {
		return featurePath(validateFeature, paths.Project.DeliverablesDir)
	}
	return resolvePath(args)
}
