// Package config handles loading prdkit.toml configuration files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amonks/prdkit/internal/paths"
)

// Config represents the prdkit.toml configuration file.
type Config struct {
	Deliverables Deliverables `toml:"deliverables"`
	Completeness Completeness `toml:"completeness"`
	Order        Order        `toml:"order"`
}

// Deliverables configures checks on deliverable-*.md files.
type Deliverables struct {
	// RequiredSections are level-2 headings every deliverable must have.
	RequiredSections []string `toml:"required-sections"`

	// RecommendedSections produce warnings rather than issues when absent.
	RecommendedSections []string `toml:"recommended-sections"`
}

// Completeness configures checks on PRD.md and research.md.
type Completeness struct {
	PRDSections      []string `toml:"prd-sections"`
	ResearchSections []string `toml:"research-sections"`
}

// Order configures the implementation order report.
type Order struct {
	// HandoffCommand is prepended verbatim to each deliverable name in the
	// suggested command list.
	HandoffCommand string `toml:"handoff-command"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Deliverables: Deliverables{
			RequiredSections:    []string{"Context", "User Stories", "Acceptance Criteria"},
			RecommendedSections: []string{"Out of Scope"},
		},
		Completeness: Completeness{
			PRDSections: []string{
				"Problem Statement",
				"Solution Overview",
				"User Stories",
				"Non-Functional Requirements",
				"Success Metrics",
				"Risks & Mitigations",
			},
			ResearchSections: []string{
				"Initial Idea",
				"Discovery Questions",
				"Problem Space",
				"User Understanding",
				"Solution Space",
				"Success Criteria",
				"Constitution Alignment",
			},
		},
		Order: Order{
			HandoffCommand: "specify init specs/",
		},
	}
}

// Load loads configuration from the project root and the global config file,
// falling back to Default for anything neither file defines.
func Load(projectRoot string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectRoot, paths.ConfigFileName))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}
	defaults := Default()

	pick := func(key ...string) int {
		switch {
		case projectMeta.IsDefined(key...):
			return 2
		case globalMeta.IsDefined(key...):
			return 1
		default:
			return 0
		}
	}
	mergeList := func(source int, project, global, fallback []string) []string {
		switch source {
		case 2:
			return append([]string{}, project...)
		case 1:
			return append([]string{}, global...)
		default:
			return fallback
		}
	}

	merged := Config{}
	merged.Deliverables.RequiredSections = mergeList(pick("deliverables", "required-sections"),
		projectCfg.Deliverables.RequiredSections, globalCfg.Deliverables.RequiredSections, defaults.Deliverables.RequiredSections)
	merged.Deliverables.RecommendedSections = mergeList(pick("deliverables", "recommended-sections"),
		projectCfg.Deliverables.RecommendedSections, globalCfg.Deliverables.RecommendedSections, defaults.Deliverables.RecommendedSections)
	merged.Completeness.PRDSections = mergeList(pick("completeness", "prd-sections"),
		projectCfg.Completeness.PRDSections, globalCfg.Completeness.PRDSections, defaults.Completeness.PRDSections)
	merged.Completeness.ResearchSections = mergeList(pick("completeness", "research-sections"),
		projectCfg.Completeness.ResearchSections, globalCfg.Completeness.ResearchSections, defaults.Completeness.ResearchSections)

	switch pick("order", "handoff-command") {
	case 2:
		merged.Order.HandoffCommand = projectCfg.Order.HandoffCommand
	case 1:
		merged.Order.HandoffCommand = globalCfg.Order.HandoffCommand
	default:
		merged.Order.HandoffCommand = defaults.Order.HandoffCommand
	}

	return &merged
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
