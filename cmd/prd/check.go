package main

import (
	"github.com/amonks/prdkit/document"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a PRD.md or research.md for completeness",
	Long: `Check a PRD.md or research.md for completeness.

Reports missing required sections, unresolved [NEEDS_DETAIL: ...] tags, and,
for PRD.md, user stories that do not follow the expected format. Placeholder
markers and empty sections are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := document.CheckCompleteness(args[0], document.RulesFromConfig(cfg))
	if err := encodeJSON(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	logger := ui.NewLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	logVerdict(logger, report.Passed)
	if !report.Passed {
		logList(logger, "[NEEDS_DETAIL] tags", report.NeedsDetailTags)
		logList(logger, "Missing sections", report.MissingSections)
		logList(logger, "Issues", report.Issues)
	}
	logList(logger, "Warnings", report.Warnings)

	if !report.Passed {
		return exitError{code: 1}
	}
	return nil
}
