package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

type stubExtractor struct {
	source  types.ValueSource
	partial *types.PartialStatement
	err     error
}

func (s *stubExtractor) Source() types.ValueSource { return s.source }

func (s *stubExtractor) Extract(_ context.Context) (*types.PartialStatement, error) {
	return s.partial, s.err
}

type stubAssessor struct {
	results []types.ValidationResult
	err     error
}

func (s *stubAssessor) Assess(_ context.Context, _ *types.MergedStatement) ([]types.ValidationResult, error) {
	return s.results, s.err
}

func spreadsheetPartial() *types.PartialStatement {
	p := types.NewPartialStatement(types.SourceSpreadsheet)

	set := func(kind types.SectionKind, key, label string, v int64) {
		item := p.Section(kind).Upsert(key, label)
		item.Current = money.FromInt(v)
		item.CurrentSource = types.SourceSpreadsheet
	}
	set(types.SectionIncomeStatement, types.KeyRevenue, "Revenue", 1200000)
	set(types.SectionIncomeStatement, types.KeyProfitBeforeTax, "Profit before income tax", 380000)
	set(types.SectionIncomeStatement, types.KeyIncomeTaxExpense, "Income tax expense", 114000)
	set(types.SectionIncomeStatement, types.KeyNetProfitLoss, "Profit for the year", 266000)
	set(types.SectionBalanceSheet, types.KeyTotalAssets, "Total assets", 3045000)
	set(types.SectionBalanceSheet, types.KeyTotalLiabilities, "Total liabilities", 1790000)
	set(types.SectionBalanceSheet, types.KeyRetainedEarnings, "Retained earnings", 1254900)
	set(types.SectionBalanceSheet, types.KeyTotalEquity, "Total equity", 1255000)
	return p
}

func priorPartial() *types.PartialStatement {
	p := types.NewPartialStatement(types.SourcePriorDoc)
	p.EntityName = "Quokka Holdings Pty Ltd"
	p.FinancialYear = 2023

	re := p.Section(types.SectionBalanceSheet).Upsert(types.KeyRetainedEarnings, "Retained earnings")
	re.Prior = money.FromInt(988900)
	re.PriorSource = types.SourcePriorDoc

	p.Notes = []types.NoteRecord{
		{Number: 1, Heading: "Summary of Significant Accounting Policies", PresentInPriorYear: true},
	}
	p.Directors = []types.PartyRecord{{Name: "Matthew Warnken", Title: "Director"}}
	sig := types.PartyRecord{Name: "Jane Citizen", Title: "Principal"}
	p.Signatory = &sig
	return p
}

func TestRunCleanStatement(t *testing.T) {
	outcome, err := Run(context.Background(),
		&stubExtractor{source: types.SourceSpreadsheet, partial: spreadsheetPartial()},
		&stubExtractor{source: types.SourcePriorDoc, partial: priorPartial()},
		Options{Config: config.Default()})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, outcome.RunID)
	assert.Equal(t, 2024, outcome.Statement.FinancialYear)
	assert.True(t, outcome.Finalizable())
	assert.NotEmpty(t, outcome.Results)
}

func TestRunBlockingCheckStopsFinalization(t *testing.T) {
	sheet := spreadsheetPartial()
	item, _ := sheet.Section(types.SectionBalanceSheet).Item(types.KeyTotalAssets)
	item.Current = money.FromInt(item.Current.Value + 1)

	outcome, err := Run(context.Background(),
		&stubExtractor{source: types.SourceSpreadsheet, partial: sheet},
		&stubExtractor{source: types.SourcePriorDoc, partial: priorPartial()},
		Options{Config: config.Default()})
	require.NoError(t, err, "a blocking check result is a product of the run, not an error")

	assert.False(t, outcome.Finalizable())
}

func TestRunExtractionFailureAborts(t *testing.T) {
	_, err := Run(context.Background(),
		&stubExtractor{source: types.SourceSpreadsheet, err: errors.New("corrupt workbook")},
		&stubExtractor{source: types.SourcePriorDoc, partial: priorPartial()},
		Options{Config: config.Default()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet extraction")
}

func TestRunAdvisoryResultsAppendedAndClamped(t *testing.T) {
	assessor := &stubAssessor{results: []types.ValidationResult{
		{Severity: types.SeverityBlocking, Message: "revenue up sharply"},
	}}

	outcome, err := Run(context.Background(),
		&stubExtractor{source: types.SourceSpreadsheet, partial: spreadsheetPartial()},
		&stubExtractor{source: types.SourcePriorDoc, partial: priorPartial()},
		Options{Config: config.Default(), Assessor: assessor, AdvisoryTimeout: time.Second})
	require.NoError(t, err)

	var advisories []types.ValidationResult
	for _, r := range outcome.Results {
		if r.Advisory {
			advisories = append(advisories, r)
		}
	}
	require.Len(t, advisories, 1)
	assert.Equal(t, types.SeverityWarning, advisories[0].Severity)
	assert.True(t, outcome.Finalizable(), "advisory results never block finalization")
}

func TestRunAdvisoryFailureIsSilent(t *testing.T) {
	assessor := &stubAssessor{err: errors.New("api down")}

	outcome, err := Run(context.Background(),
		&stubExtractor{source: types.SourceSpreadsheet, partial: spreadsheetPartial()},
		&stubExtractor{source: types.SourcePriorDoc, partial: priorPartial()},
		Options{Config: config.Default(), Assessor: assessor, AdvisoryTimeout: time.Second})
	require.NoError(t, err)

	for _, r := range outcome.Results {
		assert.False(t, r.Advisory)
	}
	assert.True(t, outcome.Finalizable())
}

func TestNewAssessorDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Advisory.Enabled = false

	a, err := NewAssessor(cfg)
	require.NoError(t, err)
	assert.Nil(t, a)
}
