package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/prdkit/deliverable"
	"github.com/amonks/prdkit/feature"
	"github.com/amonks/prdkit/internal/listflags"
	"github.com/amonks/prdkit/internal/markdown"
	"github.com/amonks/prdkit/internal/paths"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

var errDeliverableNotFound = errors.New("deliverable not found")

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a deliverable's document",
	Long: `Render a deliverable's document.

The deliverable is looked up by id in each feature's deliverables map, or only
in the given feature's map when --feature is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var (
	showFeature string
	showRaw     bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	addFeatureFlagAliases(showCmd)
	listflags.AddFeatureFlag(showCmd, &showFeature)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the Markdown source without rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	project, err := currentProject()
	if err != nil {
		return err
	}

	path, err := findDeliverableFile(project, showFeature, args[0])
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deliverable: %w", err)
	}

	out := cmd.OutOrStdout()
	if showRaw {
		_, err = out.Write(content)
		return err
	}
	rendered := markdown.SafeRender(ui.TerminalWidth(out), 0, content)
	_, err = fmt.Fprintf(out, "%s\n", rendered)
	return err
}

// findDeliverableFile returns the document path of the deliverable with id.
// Without a feature every feature is searched and the id must be unique.
func findDeliverableFile(project paths.Project, featureName, id string) (string, error) {
	var features []string
	if featureName != "" {
		features = []string{featureName}
	} else {
		summaries, err := feature.List(project)
		if err != nil {
			return "", err
		}
		for _, summary := range summaries {
			features = append(features, summary.Name)
		}
	}

	var matches []string
	for _, name := range features {
		m, err := deliverable.Load(project.DeliverablesMap(name))
		if errors.Is(err, deliverable.ErrMapNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		d, ok := m.Deliverables.Lookup(id)
		if !ok {
			continue
		}
		if d.File == "" {
			return "", fmt.Errorf("deliverable %s in %s has no file", id, name)
		}
		matches = append(matches, filepath.Join(project.DeliverablesDir(name), d.File))
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", errDeliverableNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("deliverable %s exists in %d features (use --feature)", id, len(matches))
	}
}
