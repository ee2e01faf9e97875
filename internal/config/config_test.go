package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Contains(t, cfg.Aliases.ProfitAndLoss, "Consol PL")
	assert.Contains(t, cfg.Aliases.BalanceSheet, "Consol BS")
	assert.Equal(t, 2, cfg.AliasFuzzyDistance)
	assert.False(t, cfg.Advisory.Enabled)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finrecon.yaml")
	require.NoError(t, SaveDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Aliases, cfg.Aliases)
	assert.Equal(t, Default().RelatedPartyRule, cfg.RelatedPartyRule)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finrecon.yaml")
	content := `
aliases:
  profit_and_loss: ["P&L"]
  balance_sheet: ["SoFP"]
alias_fuzzy_distance: 1
checks:
  balance_equation:
    enabled: false
confirmations: ["director_continuity"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"P&L"}, cfg.Aliases.ProfitAndLoss)
	assert.Equal(t, 1, cfg.AliasFuzzyDistance)
	assert.False(t, cfg.CheckEnabled("balance_equation"))
	assert.True(t, cfg.CheckEnabled("retained_earnings_rollforward"), "unlisted checks stay enabled")
	assert.True(t, cfg.Confirmed("director_continuity"))
	assert.False(t, cfg.Confirmed("balance_equation"))
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty alias family",
			content: `
aliases:
  profit_and_loss: []
  balance_sheet: ["BS"]
`,
		},
		{
			name: "negative fuzzy distance",
			content: `
alias_fuzzy_distance: -1
`,
		},
		{
			name: "unknown related party rule",
			content: `
related_party_rule: "sometimes"
`,
		},
		{
			name: "bad advisory timeout",
			content: `
advisory:
  timeout: "soon"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "finrecon.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestAdvisoryParseTimeout(t *testing.T) {
	a := AdvisoryConfig{}
	d, err := a.ParseTimeout(45 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	a.Timeout = "90s"
	d, err = a.ParseTimeout(45 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
