// Package paths knows where a PRD kit project keeps its documents.
//
// A project is a directory containing a .prd-kit/ directory. Each feature
// lives under prds/<feature>/ with its research notes, PRD and deliverables.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// KitDirName is the directory that marks a project root.
	KitDirName = ".prd-kit"

	// PRDsDirName holds one directory per feature.
	PRDsDirName = "prds"

	// ConfigFileName is the project configuration file at the project root.
	ConfigFileName = "prdkit.toml"

	// DeliverablesMapName is the decomposition output inside a deliverables directory.
	DeliverablesMapName = "deliverables-map.json"

	// OrderFileName is where `prd order --write` stores the implementation plan.
	OrderFileName = "implementation-order.json"

	// ResearchFileName and PRDFileName are a feature's discovery notes and requirements.
	ResearchFileName = "research.md"
	PRDFileName      = "PRD.md"

	// DeliverableFilePattern matches per-deliverable documents.
	DeliverableFilePattern = "deliverable-*.md"
)

// ErrNotInitialized is returned when no project root can be found.
var ErrNotInitialized = errors.New("PRD Kit not initialized (run 'prd init' first)")

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// GlobalConfigPath returns the user-wide configuration file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "prdkit", "config.toml"), nil
}

// Project resolves document locations relative to a project root.
type Project struct {
	Root string
}

// NewProject returns a project rooted at root.
func NewProject(root string) Project {
	return Project{Root: root}
}

// FindProject walks up from start looking for a .prd-kit directory.
func FindProject(start string) (Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return Project{}, fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, KitDirName))
		if err == nil && info.IsDir() {
			return Project{Root: dir}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Project{}, ErrNotInitialized
		}
		dir = parent
	}
}

// KitDir returns the .prd-kit directory.
func (p Project) KitDir() string {
	return filepath.Join(p.Root, KitDirName)
}

// MemoryDir holds long-lived project memory such as the constitution.
func (p Project) MemoryDir() string {
	return filepath.Join(p.KitDir(), "memory")
}

// TemplatesDir holds document templates.
func (p Project) TemplatesDir() string {
	return filepath.Join(p.KitDir(), "templates")
}

// CommandsDir holds agent command definitions.
func (p Project) CommandsDir() string {
	return filepath.Join(p.KitDir(), "commands")
}

// ConstitutionFile is the product constitution.
func (p Project) ConstitutionFile() string {
	return filepath.Join(p.MemoryDir(), "product-constitution.md")
}

// ConfigFile is the project configuration file.
func (p Project) ConfigFile() string {
	return filepath.Join(p.Root, ConfigFileName)
}

// PRDsDir holds one directory per feature.
func (p Project) PRDsDir() string {
	return filepath.Join(p.Root, PRDsDirName)
}

// FeatureDir returns the directory for a feature.
func (p Project) FeatureDir(feature string) string {
	return filepath.Join(p.PRDsDir(), feature)
}

// ResearchFile returns a feature's discovery notes.
func (p Project) ResearchFile(feature string) string {
	return filepath.Join(p.FeatureDir(feature), ResearchFileName)
}

// PRDFile returns a feature's requirements document.
func (p Project) PRDFile(feature string) string {
	return filepath.Join(p.FeatureDir(feature), PRDFileName)
}

// DeliverablesDir returns a feature's deliverables directory.
func (p Project) DeliverablesDir(feature string) string {
	return filepath.Join(p.FeatureDir(feature), "deliverables")
}

// DeliverablesMap returns a feature's deliverables map.
func (p Project) DeliverablesMap(feature string) string {
	return filepath.Join(p.DeliverablesDir(feature), DeliverablesMapName)
}

// LayoutDirs returns the directories `prd init` creates.
func (p Project) LayoutDirs() []string {
	return []string{
		p.MemoryDir(),
		p.TemplatesDir(),
		p.CommandsDir(),
		filepath.Join(p.KitDir(), "validators"),
		p.PRDsDir(),
	}
}
