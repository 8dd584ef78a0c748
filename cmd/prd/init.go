package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amonks/prdkit/internal/config"
	"github.com/amonks/prdkit/internal/fileutil"
	"github.com/amonks/prdkit/internal/paths"
	"github.com/amonks/prdkit/internal/ui"
	"github.com/spf13/cobra"
)

const constitutionTemplate = `# Product Constitution

## Principles

<!-- The product principles every PRD must respect. -->
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Set up a PRD Kit project",
	Long: `Set up a PRD Kit project.

Creates the .prd-kit/ directory, an empty prds/ directory, a starter product
constitution, and a prdkit.toml holding the default configuration. Existing
files are left alone. A directory that already has visible content is only
initialized with --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Initialize even when the directory is not empty")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolvePath(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", root, err)
	}

	if !initForce {
		visible, err := visibleEntries(root)
		if err != nil {
			return err
		}
		if visible > 0 {
			return fmt.Errorf("directory %s is not empty (%d items); use --force to initialize anyway", root, visible)
		}
	}

	logger := ui.NewLogger(cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger.Info("Initializing PRD Kit in " + root)

	project := paths.NewProject(root)
	for _, dir := range project.LayoutDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	defaults, err := config.Encode(config.Default())
	if err != nil {
		return err
	}
	files := []struct {
		path    string
		content []byte
	}{
		{filepath.Join(project.PRDsDir(), ".gitkeep"), nil},
		{project.ConstitutionFile(), []byte(constitutionTemplate)},
		{project.ConfigFile(), defaults},
	}
	for _, file := range files {
		wrote, err := fileutil.WriteFileIfMissing(file.path, file.content, 0o644)
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, file.path)
		if relErr != nil {
			rel = file.path
		}
		if wrote {
			logger.Info("Created " + filepath.ToSlash(rel))
		} else {
			logger.Warn("Kept existing " + filepath.ToSlash(rel))
		}
	}

	logger.Success("PRD Kit initialized")
	logger.Text("Next: edit .prd-kit/memory/product-constitution.md with your product principles.", 0)
	return nil
}

func visibleEntries(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			count++
		}
	}
	return count, nil
}
