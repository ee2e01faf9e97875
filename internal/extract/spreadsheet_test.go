package extract

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "current.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSpreadsheetExtract(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Consol PL": {
			{"Statement of Profit or Loss"},
			{"Revenue", "1,200,000"},
			{"Cost of sales", "450,000"},
			{"Gross profit", "750,000"},
			{"Administrative expenses", "320,000"},
			{"Profit before income tax", "430,000"},
			{"Income tax expense", "129,000"},
			{"Profit for the year", "301,000"},
		},
		"Consol BS": {
			{"Statement of Financial Position"},
			{"Cash and cash equivalents", "210,000"},
			{"Trade and other receivables", "340,000"},
			{"Total current assets", "550,000"},
			{"Property, plant and equipment", "900,000"},
			{"Total assets", "1,450,000"},
			{"Trade and other payables", "160,000"},
			{"Total liabilities", "160,000"},
			{"Share capital", "100"},
			{"Retained earnings", "1,289,900"},
			{"Total equity", "1,289,900"},
		},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	partial, err := ex.Extract(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.SourceSpreadsheet, partial.Origin)

	is := partial.Section(types.SectionIncomeStatement)
	revenue, ok := is.Item(types.KeyRevenue)
	require.True(t, ok)
	assert.Equal(t, int64(1200000), revenue.Current.Value)
	assert.Equal(t, types.SourceSpreadsheet, revenue.CurrentSource)
	assert.False(t, revenue.Prior.Present, "spreadsheet must never populate prior figures")
	assert.False(t, revenue.Derived)

	net, ok := is.Item(types.KeyNetProfitLoss)
	require.True(t, ok)
	assert.Equal(t, int64(301000), net.Current.Value)

	bs := partial.Section(types.SectionBalanceSheet)
	equity, ok := bs.Item(types.KeyTotalEquity)
	require.True(t, ok)
	assert.Equal(t, int64(1289900), equity.Current.Value)

	assert.Empty(t, partial.Notes)
	assert.Empty(t, partial.Directors)
}

func TestSpreadsheetExtractFuzzySheetNames(t *testing.T) {
	// "ConsolPL" has no exact or case-insensitive alias match; the fuzzy
	// strategy resolves it within the default edit distance.
	path := writeWorkbook(t, map[string][][]interface{}{
		"ConsolPL": {
			{"Revenue", "500,000"},
		},
		"ConsolBS": {
			{"Cash and cash equivalents", "75,000"},
		},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	partial, err := ex.Extract(context.Background())
	require.NoError(t, err)

	_, ok := partial.Section(types.SectionIncomeStatement).Item(types.KeyRevenue)
	assert.True(t, ok)
	_, ok = partial.Section(types.SectionBalanceSheet).Item(types.KeyCash)
	assert.True(t, ok)
}

func TestSpreadsheetExtractNoUsableSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Payroll":  {{"Wages", "10,000"}},
		"Forecast": {{"Revenue", "999"}},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	_, err := ex.Extract(context.Background())
	require.Error(t, err)

	var notFound *SectionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Available, "Payroll")
}

func TestSpreadsheetExtractMissingBalanceSheetAborts(t *testing.T) {
	// The balance sheet aliases must not fuzzy-match the sheet already
	// claimed for the profit and loss.
	path := writeWorkbook(t, map[string][][]interface{}{
		"Consol PL": {{"Revenue", "500,000"}},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	_, err := ex.Extract(context.Background())

	var notFound *SectionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "balance sheet", notFound.Section)
}

func TestSpreadsheetExtractRightmostCellWins(t *testing.T) {
	// Annotation columns to the left of the figure are ignored; the
	// rightmost normalizable cell is the current-year figure and the one
	// before it is retained as a cross-check.
	path := writeWorkbook(t, map[string][][]interface{}{
		"PL": {
			{"Revenue", "950,000", "1,200,000"},
		},
		"BS": {
			{"Cash and cash equivalents", "see note", "210,000"},
		},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	partial, err := ex.Extract(context.Background())
	require.NoError(t, err)

	revenue, ok := partial.Section(types.SectionIncomeStatement).Item(types.KeyRevenue)
	require.True(t, ok)
	assert.Equal(t, int64(1200000), revenue.Current.Value)
	assert.Equal(t, money.FromInt(950000), revenue.CrossCheck)

	cash, ok := partial.Section(types.SectionBalanceSheet).Item(types.KeyCash)
	require.True(t, ok)
	assert.Equal(t, int64(210000), cash.Current.Value)
	assert.False(t, cash.CrossCheck.Present)
}

func TestSpreadsheetExtractDerivesMissingSubtotals(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Consol PL": {
			{"Revenue", "1,000,000"},
			{"Cost of sales", "400,000"},
			{"Administrative expenses", "100,000"},
			{"Income tax expense", "150,000"},
		},
		"Consol BS": {
			{"Cash and cash equivalents", "50,000"},
			{"Trade and other payables", "20,000"},
			{"Share capital", "100"},
			{"Retained earnings", "29,900"},
		},
	})

	ex := NewSpreadsheetExtractor(path, config.Default())
	partial, err := ex.Extract(context.Background())
	require.NoError(t, err)

	is := partial.Section(types.SectionIncomeStatement)

	gross, ok := is.Item(types.KeyGrossProfit)
	require.True(t, ok)
	assert.Equal(t, int64(600000), gross.Current.Value)
	assert.True(t, gross.Derived)

	pbt, ok := is.Item(types.KeyProfitBeforeTax)
	require.True(t, ok)
	assert.Equal(t, int64(500000), pbt.Current.Value)
	assert.True(t, pbt.Derived)

	net, ok := is.Item(types.KeyNetProfitLoss)
	require.True(t, ok)
	assert.Equal(t, int64(350000), net.Current.Value)
	assert.True(t, net.Derived)

	bs := partial.Section(types.SectionBalanceSheet)

	assets, ok := bs.Item(types.KeyTotalAssets)
	require.True(t, ok)
	assert.Equal(t, int64(50000), assets.Current.Value)
	assert.True(t, assets.Derived)

	equity, ok := bs.Item(types.KeyTotalEquity)
	require.True(t, ok)
	assert.Equal(t, int64(30000), equity.Current.Value)
	assert.True(t, equity.Derived)
}

func TestSpreadsheetExtractMissingFile(t *testing.T) {
	ex := NewSpreadsheetExtractor(filepath.Join(t.TempDir(), "nope.xlsx"), config.Default())
	_, err := ex.Extract(context.Background())
	assert.Error(t, err)
}
