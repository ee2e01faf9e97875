// Package config loads the reconciliation configuration: sheet-name alias
// families, check enablement and override tokens, fallback records, and
// advisory hook settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface consumed by the engine, loaded
// from YAML.
type Config struct {
	// EntityName overrides the entity name extracted from the prior
	// report. Usually left empty.
	EntityName string `yaml:"entity_name,omitempty"`

	// FinancialYear is the current reporting year, used only when the
	// prior report yields no "year ended" line. Usually left zero.
	FinancialYear int `yaml:"financial_year,omitempty"`

	// HeadEntity is the current-year tax consolidation head entity
	// disclosure. When empty the prior report's disclosure carries
	// forward unchanged.
	HeadEntity string `yaml:"head_entity,omitempty"`

	// Aliases maps each required workbook region to the sheet names that
	// may identify it. Order matters: earlier names are preferred.
	Aliases AliasConfig `yaml:"aliases"`

	// AliasFuzzyDistance is the maximum Levenshtein distance accepted by
	// the fuzzy sheet-name matcher, applied after exact and
	// case-insensitive matching fail.
	AliasFuzzyDistance int `yaml:"alias_fuzzy_distance"`

	// Checks maps check IDs to their configuration. A check absent from
	// the map runs with defaults.
	Checks map[string]CheckConfig `yaml:"checks,omitempty"`

	// Confirmations lists check IDs whose blocking failures the caller
	// has explicitly accepted for this run.
	Confirmations []string `yaml:"confirmations,omitempty"`

	// Defaults supplies the fallback director and signatory records used
	// when the prior report yields none.
	Defaults DefaultsConfig `yaml:"defaults"`

	// ClosedAccounts lists line item keys for accounts closed in the
	// prior period; current figures for them must be absent or zero.
	ClosedAccounts []string `yaml:"closed_accounts,omitempty"`

	// RelatedPartyRule states the expected classification of related
	// party loan balances: "non_current", "current", or "split".
	RelatedPartyRule string `yaml:"related_party_rule"`

	// TaxNoteAliases are note headings accepted as the explanation for an
	// unrecognized tax benefit.
	TaxNoteAliases []string `yaml:"tax_note_aliases"`

	Advisory AdvisoryConfig `yaml:"advisory"`
}

// AliasConfig holds the acceptable sheet names per required region.
type AliasConfig struct {
	ProfitAndLoss []string `yaml:"profit_and_loss"`
	BalanceSheet  []string `yaml:"balance_sheet"`
}

// CheckConfig configures a single invariant check.
type CheckConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultsConfig supplies fallback records for fields the prior report
// extractor is allowed to miss.
type DefaultsConfig struct {
	Directors []PartyConfig `yaml:"directors"`
	Signatory PartyConfig   `yaml:"signatory"`
}

// PartyConfig is a director or signatory record in the config file.
type PartyConfig struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// AdvisoryConfig configures the optional enrichment hook.
type AdvisoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Model selects the inference model; empty uses the built-in default.
	Model string `yaml:"model,omitempty"`

	// Timeout bounds one advisory assessment, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// MaxConcurrentCalls bounds simultaneous advisory API calls.
	MaxConcurrentCalls int `yaml:"max_concurrent_calls,omitempty"`
}

// ParseTimeout returns the advisory timeout as a duration, or the given
// fallback when unset.
func (a AdvisoryConfig) ParseTimeout(fallback time.Duration) (time.Duration, error) {
	if a.Timeout == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid advisory timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

// Load reads configuration from a YAML file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if len(c.Aliases.ProfitAndLoss) == 0 {
		return fmt.Errorf("aliases.profit_and_loss must list at least one sheet name")
	}
	if len(c.Aliases.BalanceSheet) == 0 {
		return fmt.Errorf("aliases.balance_sheet must list at least one sheet name")
	}
	if c.AliasFuzzyDistance < 0 {
		return fmt.Errorf("alias_fuzzy_distance cannot be negative (got %d)", c.AliasFuzzyDistance)
	}
	switch c.RelatedPartyRule {
	case "", "non_current", "current", "split":
	default:
		return fmt.Errorf("unknown related_party_rule %q", c.RelatedPartyRule)
	}
	if _, err := c.Advisory.ParseTimeout(0); err != nil {
		return err
	}
	return nil
}

// CheckEnabled reports whether a check should run. Checks default to
// enabled; only an explicit entry can disable one.
func (c *Config) CheckEnabled(checkID string) bool {
	if c.Checks == nil {
		return true
	}
	cc, ok := c.Checks[checkID]
	if !ok {
		return true
	}
	return cc.Enabled
}

// Confirmed reports whether the caller supplied an override token for the
// given check.
func (c *Config) Confirmed(checkID string) bool {
	for _, id := range c.Confirmations {
		if id == checkID {
			return true
		}
	}
	return false
}

// Default returns the configuration used when no file is supplied. The
// alias families cover the sheet-name dialects seen in entity management
// workbooks.
func Default() *Config {
	return &Config{
		Aliases: AliasConfig{
			ProfitAndLoss: []string{
				"Consol PL", "ConsolPL", "PL", "Profit Loss",
				"Profit and Loss", "Income Statement",
			},
			BalanceSheet: []string{
				"Consol BS", "ConsolBS", "BS", "Balance Sheet",
				"Statement of Financial Position",
			},
		},
		AliasFuzzyDistance: 2,
		RelatedPartyRule:   "non_current",
		TaxNoteAliases:     []string{"Income tax", "Taxation", "Income tax expense"},
		Defaults: DefaultsConfig{
			Directors: []PartyConfig{
				{Name: "Unconfirmed Director", Title: "Director"},
			},
			Signatory: PartyConfig{Name: "Unconfirmed Signatory", Title: "Chief Financial Officer"},
		},
		Advisory: AdvisoryConfig{
			Enabled:            false,
			Timeout:            "60s",
			MaxConcurrentCalls: 2,
		},
	}
}

// SaveDefault writes the default configuration to a file for editing.
func SaveDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
