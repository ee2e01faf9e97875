package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	plAliases := []string{"Consol PL", "ConsolPL", "PL", "Profit Loss", "Income Statement"}

	tests := []struct {
		name         string
		aliases      []string
		sheets       []string
		want         string
		wantStrategy string
		wantOK       bool
	}{
		{
			name:         "exact match",
			aliases:      plAliases,
			sheets:       []string{"Summary", "Consol PL", "Consol BS"},
			want:         "Consol PL",
			wantStrategy: "exact",
			wantOK:       true,
		},
		{
			name:         "case insensitive",
			aliases:      plAliases,
			sheets:       []string{"consol pl", "consol bs"},
			want:         "consol pl",
			wantStrategy: "case-insensitive",
			wantOK:       true,
		},
		{
			name:         "fuzzy within distance",
			aliases:      []string{"Consol PL"},
			sheets:       []string{"Consol P&L", "Consol BS"},
			want:         "Consol P&L",
			wantStrategy: "fuzzy",
			wantOK:       true,
		},
		{
			name:         "substring",
			aliases:      []string{"PL"},
			sheets:       []string{"FY24 Consol PL Final"},
			want:         "FY24 Consol PL Final",
			wantStrategy: "substring",
			wantOK:       true,
		},
		{
			name:    "no match",
			aliases: []string{"Consol PL"},
			sheets:  []string{"Payroll", "Forecast"},
			wantOK:  false,
		},
		{
			name:    "empty workbook",
			aliases: plAliases,
			sheets:  nil,
			wantOK:  false,
		},
	}

	strategies := DefaultStrategies(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strategy, ok := ResolveName(tt.aliases, tt.sheets, strategies)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.wantStrategy, strategy)
			}
		})
	}
}

func TestResolveNameSpaceStrippedFuzzy(t *testing.T) {
	// "ConsolPL" in the workbook resolves against the "Consol PL" alias
	// because matching lowercases and strips spaces before measuring
	// distance.
	aliases := []string{"Consol PL", "PL"}
	sheets := []string{"ConsolPL", "ConsolBS"}

	got, _, ok := ResolveName(aliases, sheets, DefaultStrategies(2))
	assert.True(t, ok)
	assert.Equal(t, "ConsolPL", got)
}

func TestResolveNameExactBeatsFuzzyAcrossAliases(t *testing.T) {
	// All aliases are tried under the exact strategy before any fuzzy
	// matching runs, so the later alias's exact hit wins.
	aliases := []string{"Consol PL", "Income Statement"}
	sheets := []string{"Consol XL", "Income Statement"}

	got, strategy, ok := ResolveName(aliases, sheets, DefaultStrategies(2))
	assert.True(t, ok)
	assert.Equal(t, "Income Statement", got)
	assert.Equal(t, "exact", strategy)
}
