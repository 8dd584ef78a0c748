package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/prdkit/deliverable"
	"github.com/amonks/prdkit/internal/fileutil"
	"github.com/amonks/prdkit/internal/listflags"
	"github.com/amonks/prdkit/internal/paths"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order [path]",
	Short: "Compute the implementation order of a feature's deliverables",
	Long: `Compute the implementation order of a feature's deliverables.

Deliverables are grouped into phases: every deliverable's dependencies are
placed in earlier phases, and deliverables sharing a phase can be built in
parallel. The path may name a deliverables-map.json or the directory holding
it.

The JSON plan is written to stdout and a readable plan to stderr. The command
exits 1 when the map cannot be loaded or has circular dependencies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrder,
}

var (
	orderFeature string
	orderWrite   bool
)

func init() {
	rootCmd.AddCommand(orderCmd)
	addFeatureFlagAliases(orderCmd)
	listflags.AddFeatureFlag(orderCmd, &orderFeature)
	orderCmd.Flags().BoolVar(&orderWrite, "write", false, "Also write "+paths.OrderFileName+" next to the map")
}

func runOrder(cmd *cobra.Command, args []string) error {
	mapPath, err := orderMapPath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	order := deliverable.OrderFromMap(mapPath)
	if err := encodeJSON(cmd.OutOrStdout(), order); err != nil {
		return err
	}

	logger := ui.NewLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	logOrder(logger, order, cfg.Order.HandoffCommand)

	if !order.Success {
		return exitError{code: 1}
	}

	if orderWrite {
		target := filepath.Join(filepath.Dir(mapPath), paths.OrderFileName)
		if err := writeOrder(target, order); err != nil {
			return err
		}
		logger.Success("Wrote " + target)
	}
	return nil
}

func orderMapPath(args []string) (string, error) {
	if orderFeature != "" {
		return featurePath(orderFeature, paths.Project.DeliverablesMap)
	}
	path, err := resolvePath(args)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, paths.DeliverablesMapName), nil
	}
	return path, nil
}

func writeOrder(path string, order deliverable.Order) error {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, order); err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func logOrder(logger *ui.Logger, order deliverable.Order, handoff string) {
	if !order.Success {
		logger.Error(order.Error)
		return
	}

	logger.Header("IMPLEMENTATION ORDER")
	logger.Text(fmt.Sprintf("Total Deliverables: %d", order.TotalDeliverables), 0)
	logger.Text(fmt.Sprintf("Total Phases: %d", order.TotalPhases), 0)

	for _, phase := range order.Phases {
		title := fmt.Sprintf("Phase %d:", phase.Number)
		if phase.Parallel {
			title = fmt.Sprintf("Phase %d (can be parallel):", phase.Number)
		}
		logger.Header(title)
		for _, entry := range phase.Deliverables {
			logger.Text(fmt.Sprintf("[%s] %s", entry.ID, entry.Title), 2)
			logger.Text("File: "+entry.File, 7)
			logger.Text("Priority: "+string(entry.Priority), 7)
		}
	}

	if handoff == "" {
		return
	}
	logger.Header("HANDOFF COMMANDS (in order):")
	for _, phase := range order.Phases {
		for _, entry := range phase.Deliverables {
			name := entry.Name
			if name == "" {
				name = entry.ID
			}
			logger.Text(handoff+name, 0)
		}
	}
}
