package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights holds every constant of the enhanced heuristic.
type Weights struct {
	Base int `yaml:"base"`
	Min  int `yaml:"min"`
	Max  int `yaml:"max"`

	ContactsPresent       int `yaml:"contacts_present"`
	ManyContacts          int `yaml:"many_contacts"`
	ManyContactsThreshold int `yaml:"many_contacts_threshold"`
	LeadershipPresent     int `yaml:"leadership_present"`
	MultipleLeaders       int `yaml:"multiple_leaders"`

	StageMatch           int   `yaml:"stage_match"`
	FundedWithinYear     int   `yaml:"funded_within_year"`
	FundedWithinHalfYear int   `yaml:"funded_within_half_year"`
	FundingThreshold     int64 `yaml:"funding_threshold"`
	FundingBonus         int   `yaml:"funding_bonus"`

	FoundedSince     int   `yaml:"founded_since"`
	FoundedRecently  int   `yaml:"founded_recently"`
	Public           int   `yaml:"public"`
	RevenueThreshold int64 `yaml:"revenue_threshold"`
	RevenueBonus     int   `yaml:"revenue_bonus"`

	DescriptionMinLength int      `yaml:"description_min_length"`
	DescriptionBonus     int      `yaml:"description_bonus"`
	HubCities            []string `yaml:"hub_cities"`
	HubBonus             int      `yaml:"hub_bonus"`
}

// KeywordBonus awards Points when any of Terms appears in the company text.
type KeywordBonus struct {
	Terms  []string `yaml:"terms"`
	Points int      `yaml:"points"`
}

// SimpleWeights holds the constants of the keyword heuristic.
type SimpleWeights struct {
	Base          int            `yaml:"base"`
	Min           int            `yaml:"min"`
	Max           int            `yaml:"max"`
	Keywords      []KeywordBonus `yaml:"keywords"`
	RecentFunding int            `yaml:"recent_funding"`
	EmployeesMin  int            `yaml:"employees_min"`
	EmployeesMax  int            `yaml:"employees_max"`
	SizeSweetSpot int            `yaml:"size_sweet_spot"`
}

// Config bundles both scorers' weights, as stored in SCORING_CONFIG.
type Config struct {
	Enhanced Weights       `yaml:"enhanced"`
	Simple   SimpleWeights `yaml:"simple"`
}

// DefaultEnhancedWeights returns the enhanced scorer defaults (range 60-100).
func DefaultEnhancedWeights() Weights {
	return Weights{
		Base: 60,
		Min:  60,
		Max:  100,

		ContactsPresent:       10,
		ManyContacts:          5,
		ManyContactsThreshold: 3,
		LeadershipPresent:     10,
		MultipleLeaders:       5,

		StageMatch:           10,
		FundedWithinYear:     5,
		FundedWithinHalfYear: 5,
		FundingThreshold:     50_000_000,
		FundingBonus:         5,

		FoundedSince:     2015,
		FoundedRecently:  5,
		Public:           5,
		RevenueThreshold: 10_000_000,
		RevenueBonus:     5,

		DescriptionMinLength: 100,
		DescriptionBonus:     3,
		HubCities: []string{
			"Boston", "Cambridge", "San Francisco", "South San Francisco",
			"San Diego", "New York", "Seattle", "Research Triangle",
			"London", "Basel",
		},
		HubBonus: 5,
	}
}

// DefaultSimpleWeights returns the keyword scorer defaults (range 0-100).
func DefaultSimpleWeights() SimpleWeights {
	return SimpleWeights{
		Base: 50,
		Min:  0,
		Max:  100,
		Keywords: []KeywordBonus{
			{Terms: []string{"biotech", "biotechnology"}, Points: 20},
			{Terms: []string{"drug discovery", "therapeutics"}, Points: 15},
			{Terms: []string{"pharmaceutical"}, Points: 15},
			{Terms: []string{"crispr", "gene"}, Points: 10},
			{Terms: []string{"ai", "machine learning"}, Points: 10},
		},
		RecentFunding: 15,
		EmployeesMin:  25,
		EmployeesMax:  500,
		SizeSweetSpot: 10,
	}
}

// DefaultConfig returns both default weight sets.
func DefaultConfig() Config {
	return Config{Enhanced: DefaultEnhancedWeights(), Simple: DefaultSimpleWeights()}
}

// LoadWeights overlays the YAML file at path on the defaults. Keys missing
// from the file keep their default values. An empty path returns defaults.
func LoadWeights(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scoring config: %w", err)
	}
	if cfg.Enhanced.Max < cfg.Enhanced.Min || cfg.Simple.Max < cfg.Simple.Min {
		return cfg, fmt.Errorf("scoring config: max must not be below min")
	}
	return cfg, nil
}
