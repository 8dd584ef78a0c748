package document

import "github.com/amonks/prdkit/internal/config"

// Rules lists the sections each kind of document is expected to contain.
type Rules struct {
	DeliverableSections []string
	RecommendedSections []string
	PRDSections         []string
	ResearchSections    []string
}

// DefaultRules returns the rules from the built-in configuration.
func DefaultRules() Rules {
	return RulesFromConfig(config.Default())
}

// RulesFromConfig builds rules from a loaded configuration.
func RulesFromConfig(cfg *config.Config) Rules {
	if cfg == nil {
		cfg = config.Default()
	}
	return Rules{
		DeliverableSections: cfg.Deliverables.RequiredSections,
		RecommendedSections: cfg.Deliverables.RecommendedSections,
		PRDSections:         cfg.Completeness.PRDSections,
		ResearchSections:    cfg.Completeness.ResearchSections,
	}
}
