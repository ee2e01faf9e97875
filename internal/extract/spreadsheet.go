package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

// SpreadsheetExtractor reads current-year figures from an .xlsx workbook.
// It owns currentValue slots only: it never emits prior-year figures,
// notes, or party records. The workbook's own prior-year column, when one
// exists, is captured as a cross-check and nothing more.
type SpreadsheetExtractor struct {
	path string
	cfg  *config.Config
}

// NewSpreadsheetExtractor returns an extractor over the workbook at path.
func NewSpreadsheetExtractor(path string, cfg *config.Config) *SpreadsheetExtractor {
	return &SpreadsheetExtractor{path: path, cfg: cfg}
}

// Source implements Extractor.
func (e *SpreadsheetExtractor) Source() types.ValueSource {
	return types.SourceSpreadsheet
}

// Extract opens the workbook, resolves the profit-and-loss and balance
// sheet tabs through the alias strategies, and reads recognized rows.
// A workbook with neither required sheet is unusable and errors out; a
// recognized sheet with unrecognized rows just yields fewer figures.
func (e *SpreadsheetExtractor) Extract(ctx context.Context) (*types.PartialStatement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", e.path, err)
	}
	defer f.Close()

	partial := types.NewPartialStatement(types.SourceSpreadsheet)
	sheets := f.GetSheetList()
	strategies := DefaultStrategies(e.cfg.AliasFuzzyDistance)

	// Both regions are required: without either one, no current-year
	// figure can be trusted, so this aborts the run rather than warns.
	plSheet, plStrategy, plOK := ResolveName(e.cfg.Aliases.ProfitAndLoss, sheets, strategies)
	if !plOK {
		return nil, &SectionNotFoundError{
			Section:   "profit and loss",
			Aliases:   e.cfg.Aliases.ProfitAndLoss,
			Available: sheets,
		}
	}
	// The sheet already claimed for the profit and loss is excluded, so a
	// near-miss alias cannot fuzzy-match both regions onto one sheet.
	remaining := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if s != plSheet {
			remaining = append(remaining, s)
		}
	}
	bsSheet, bsStrategy, bsOK := ResolveName(e.cfg.Aliases.BalanceSheet, remaining, strategies)
	if !bsOK {
		return nil, &SectionNotFoundError{
			Section:   "balance sheet",
			Aliases:   e.cfg.Aliases.BalanceSheet,
			Available: sheets,
		}
	}

	slog.Debug("resolved sheet", "section", "profit_and_loss", "sheet", plSheet, "strategy", plStrategy)
	if err := e.readSheet(f, plSheet, partial.Section(types.SectionIncomeStatement)); err != nil {
		return nil, err
	}
	slog.Debug("resolved sheet", "section", "balance_sheet", "sheet", bsSheet, "strategy", bsStrategy)
	if err := e.readSheet(f, bsSheet, partial.Section(types.SectionBalanceSheet)); err != nil {
		return nil, err
	}

	deriveIncomeSubtotals(partial.Section(types.SectionIncomeStatement))
	deriveBalanceTotals(partial.Section(types.SectionBalanceSheet))
	return partial, nil
}

func (e *SpreadsheetExtractor) readSheet(f *excelize.File, sheet string, section *types.StatementSection) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	for _, row := range rows {
		label, cells := splitRow(row)
		if label == "" {
			continue
		}
		key, ok := classifyLabel(label, section.Kind)
		if !ok {
			continue
		}
		current, crossCheck := rowValues(cells)
		if !current.Present {
			continue
		}
		item := section.Upsert(key, strings.TrimSpace(label))
		if item.Current.Present {
			// First recognized row wins; later duplicates are noise.
			continue
		}
		item.Current = current
		item.CurrentSource = types.SourceSpreadsheet
		item.CrossCheck = crossCheck
	}
	return nil
}

// splitRow separates the row label from the candidate value cells. The
// label is the first non-empty cell; everything after it is a candidate.
func splitRow(row []string) (string, []string) {
	for i, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return strings.TrimSpace(cell), row[i+1:]
		}
	}
	return "", nil
}

// rowValues walks the value cells right to left. The rightmost cell that
// normalizes to a present amount is the current-year figure; the next one
// is kept as the cross-check against the prior report.
func rowValues(cells []string) (current, crossCheck money.Amount) {
	for i := len(cells) - 1; i >= 0; i-- {
		a, err := money.Normalize(cells[i])
		if err != nil || !a.Present {
			continue
		}
		if !current.Present {
			current = a
			continue
		}
		crossCheck = a
		break
	}
	return current, crossCheck
}

// deriveIncomeSubtotals fills in the standard profit subtotals when the
// sheet carries the components but omits the total. Derived figures are
// tagged so downstream provenance stays honest.
func deriveIncomeSubtotals(s *types.StatementSection) {
	derive(s, types.KeyGrossProfit, "Gross profit",
		[]string{types.KeyRevenue}, []string{types.KeyCostOfSales})
	derive(s, types.KeyProfitBeforeTax, "Profit before income tax",
		[]string{types.KeyGrossProfit, types.KeyOtherIncome},
		[]string{types.KeyDistributionCosts, types.KeyAdminExpenses, types.KeyOtherExpenses})
	derive(s, types.KeyNetProfitLoss, "Profit for the year",
		[]string{types.KeyProfitBeforeTax}, []string{types.KeyIncomeTaxExpense})
}

// deriveBalanceTotals fills in the classification totals and the equity
// total the balance equation check depends on.
func deriveBalanceTotals(s *types.StatementSection) {
	derive(s, types.KeyTotalCurrentAssets, "Total current assets",
		[]string{types.KeyCash, types.KeyReceivables, types.KeyInventories, types.KeyOtherCurrentAssets}, nil)
	derive(s, types.KeyTotalNonCurrAssets, "Total non-current assets",
		[]string{types.KeyPPE, types.KeyIntangibles, types.KeyOtherNonCurrAssets}, nil)
	derive(s, types.KeyTotalAssets, "Total assets",
		[]string{types.KeyTotalCurrentAssets, types.KeyTotalNonCurrAssets}, nil)
	derive(s, types.KeyTotalCurrentLiab, "Total current liabilities",
		[]string{types.KeyPayables, types.KeyProvisionsCurrent, types.KeyRelPartyLoansCurrent, types.KeyOtherCurrentLiab}, nil)
	derive(s, types.KeyTotalNonCurrLiab, "Total non-current liabilities",
		[]string{types.KeyBorrowings, types.KeyProvisionsNonCurr, types.KeyRelPartyLoansNonCurr, types.KeyOtherNonCurrLiab}, nil)
	derive(s, types.KeyTotalLiabilities, "Total liabilities",
		[]string{types.KeyTotalCurrentLiab, types.KeyTotalNonCurrLiab}, nil)
	derive(s, types.KeyTotalEquity, "Total equity",
		[]string{types.KeyShareCapital, types.KeyReserves, types.KeyRetainedEarnings}, nil)
}

// derive computes key = sum(plus) - sum(minus) when the key is missing and
// at least one component is present. Absent components count as zero; a
// fully absent input leaves the subtotal absent too.
func derive(s *types.StatementSection, key, label string, plus, minus []string) {
	if item, ok := s.Item(key); ok && item.Current.Present {
		return
	}
	var total int64
	any := false
	for _, k := range plus {
		if item, ok := s.Item(k); ok && item.Current.Present {
			total += item.Current.Value
			any = true
		}
	}
	for _, k := range minus {
		if item, ok := s.Item(k); ok && item.Current.Present {
			total -= item.Current.Value
			any = true
		}
	}
	if !any {
		return
	}
	item := s.Upsert(key, label)
	item.Current = money.FromInt(total)
	item.CurrentSource = types.SourceSpreadsheet
	item.Derived = true
}
