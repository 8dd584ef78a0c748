package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/prdkit/feature"
	"github.com/amonks/prdkit/internal/listflags"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [feature]",
	Short: "Show where each feature stands",
	Long: `Show where each feature stands.

Statuses, in workflow order: not_started, discovery_in_progress,
discovery_complete, drafted, approved, decomposed, deliverables_generated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)
	listflags.AddJSONFlag(statusCmd, &statusJSON)
}

func runStatus(cmd *cobra.Command, args []string) error {
	project, err := currentProject()
	if err != nil {
		return err
	}

	var summaries []feature.Summary
	if len(args) > 0 {
		summary, err := feature.Describe(project, args[0])
		if err != nil {
			return err
		}
		summaries = []feature.Summary{summary}
	} else {
		summaries, err = feature.List(project)
		if err != nil {
			return err
		}
	}

	if statusJSON {
		if len(args) > 0 {
			return encodeJSON(cmd.OutOrStdout(), summaries[0])
		}
		return encodeJSON(cmd.OutOrStdout(), summaries)
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No features found under prds/")
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), formatStatusTable(summaries, time.Now()))
	return err
}

func formatStatusTable(summaries []feature.Summary, now time.Time) string {
	table := ui.NewTable(
		ui.Column{Header: "FEATURE", MaxWidth: 40},
		ui.Column{Header: "STATUS"},
		ui.Column{Header: "DELIVERABLES"},
		ui.Column{Header: "UPDATED"},
		ui.Column{Header: "DOCUMENTS", MaxWidth: 60},
	)
	for _, summary := range summaries {
		documents := "-"
		if len(summary.Documents) > 0 {
			documents = strings.Join(summary.Documents, ", ")
		}
		table.AddRow(
			summary.Name,
			string(summary.Status),
			strconv.Itoa(summary.Deliverables),
			ui.FormatTimeAgo(summary.Updated, now),
			documents,
		)
	}
	return table.String()
}
