// Package merge combines the two partial statements into one merged
// statement under the ownership rule: the current-year workbook owns
// numbers, the prior-year report owns structure and wording. Ownership is
// data, not convention; a partial that populates a slot it does not own is
// a conflict, never a silent overwrite.
package merge

import (
	"fmt"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

// ConflictError reports a partial statement populating a slot its source
// does not own. It is a programming or extraction defect, not an expected
// reconciliation outcome, so it surfaces as an error rather than a result.
type ConflictError struct {
	Field  string
	Owner  types.ValueSource
	Source types.ValueSource
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict on %s: %s populated a slot owned by %s",
		e.Field, e.Source, e.Owner)
}

// Resolve merges the spreadsheet and prior-report partials. Alongside the
// merged statement it returns the warnings the merge itself produced, at
// most one for substituted directors and one for a substituted signatory.
func Resolve(spreadsheet, prior *types.PartialStatement, cfg *config.Config) (*types.MergedStatement, []types.ValidationResult, error) {
	if spreadsheet.Origin != types.SourceSpreadsheet {
		return nil, nil, fmt.Errorf("spreadsheet partial has origin %q", spreadsheet.Origin)
	}
	if prior.Origin != types.SourcePriorDoc {
		return nil, nil, fmt.Errorf("prior report partial has origin %q", prior.Origin)
	}
	if err := checkOwnership(spreadsheet, prior); err != nil {
		return nil, nil, err
	}

	entity := prior.EntityName
	if entity == "" {
		entity = cfg.EntityName
	}
	if entity == "" {
		return nil, nil, fmt.Errorf("entity name missing from both prior report and config")
	}
	year := prior.FinancialYear + 1
	if prior.FinancialYear == 0 {
		if cfg.FinancialYear == 0 {
			return nil, nil, fmt.Errorf("financial year missing from both prior report and config")
		}
		year = cfg.FinancialYear
	}

	m := &types.MergedStatement{
		EntityName:          entity,
		FinancialYear:       year,
		PriorHeadEntity:     prior.HeadEntity,
		ContingentLiability: prior.ContingentLiability,
	}

	m.HeadEntity = cfg.HeadEntity
	if m.HeadEntity == "" {
		m.HeadEntity = prior.HeadEntity
	}

	mergeSection(&m.IncomeStatement, spreadsheet.Section(types.SectionIncomeStatement), prior.Section(types.SectionIncomeStatement))
	mergeSection(&m.BalanceSheet, spreadsheet.Section(types.SectionBalanceSheet), prior.Section(types.SectionBalanceSheet))
	mergeSection(&m.EquityRollforward, spreadsheet.Section(types.SectionEquityRollforward), prior.Section(types.SectionEquityRollforward))

	m.Notes = append(m.Notes, prior.Notes...)
	for _, n := range prior.Notes {
		m.PriorNoteNumbers = append(m.PriorNoteNumbers, n.Number)
	}

	var results []types.ValidationResult

	m.PriorDirectors = append(m.PriorDirectors, prior.Directors...)
	if len(prior.Directors) > 0 {
		m.Directors = append(m.Directors, prior.Directors...)
	} else {
		for _, d := range cfg.Defaults.Directors {
			m.Directors = append(m.Directors, types.PartyRecord{Name: d.Name, Title: d.Title})
		}
		results = append(results, types.ValidationResult{
			CheckID:     "default_directors",
			Severity:    types.SeverityWarning,
			Message:     "prior report yields no directors; configured defaults substituted",
			SubjectKeys: []string{"directors"},
		})
	}

	m.PriorSignatory = prior.Signatory
	if prior.Signatory != nil {
		m.Signatory = *prior.Signatory
	} else {
		m.Signatory = types.PartyRecord{Name: cfg.Defaults.Signatory.Name, Title: cfg.Defaults.Signatory.Title}
		results = append(results, types.ValidationResult{
			CheckID:     "default_signatory",
			Severity:    types.SeverityWarning,
			Message:     "prior report yields no signatory; configured default substituted",
			SubjectKeys: []string{"signatory"},
		})
	}

	if re, ok := prior.Section(types.SectionBalanceSheet).Item(types.KeyRetainedEarnings); ok {
		m.OpeningRetainedEarnings = re.Prior
	}

	deriveClosingRetainedEarnings(m)
	buildRollforward(m)

	return m, results, nil
}

// checkOwnership rejects any slot populated against the ownership rule.
// The spreadsheet may not carry prior figures, notes, or party records;
// the prior report may not carry current figures.
func checkOwnership(spreadsheet, prior *types.PartialStatement) error {
	for _, kind := range []types.SectionKind{types.SectionIncomeStatement, types.SectionBalanceSheet, types.SectionEquityRollforward} {
		for _, item := range spreadsheet.Section(kind).Items {
			if item.Prior.Present || item.PriorSource != types.SourceUnset {
				return &ConflictError{Field: item.Key, Owner: types.SourcePriorDoc, Source: types.SourceSpreadsheet}
			}
		}
		for _, item := range prior.Section(kind).Items {
			if item.Current.Present || item.CurrentSource != types.SourceUnset {
				return &ConflictError{Field: item.Key, Owner: types.SourceSpreadsheet, Source: types.SourcePriorDoc}
			}
		}
	}
	if len(spreadsheet.Notes) > 0 {
		return &ConflictError{Field: "notes", Owner: types.SourcePriorDoc, Source: types.SourceSpreadsheet}
	}
	if len(spreadsheet.Directors) > 0 || spreadsheet.Signatory != nil {
		return &ConflictError{Field: "directors", Owner: types.SourcePriorDoc, Source: types.SourceSpreadsheet}
	}
	return nil
}

// mergeSection lays the section out in the prior report's order and
// wording, then folds the workbook's figures in. Items the workbook
// introduces that the prior report lacks are appended after the carried
// structure, in workbook order. Absent current figures stay absent; a
// prior figure is never promoted into the current column.
func mergeSection(dst *types.StatementSection, spreadsheet, prior *types.StatementSection) {
	dst.Kind = prior.Kind
	dst.Title = prior.Title

	for _, item := range prior.Items {
		merged := dst.Upsert(item.Key, item.Label)
		merged.Prior = item.Prior
		merged.PriorSource = item.PriorSource
	}
	for _, item := range spreadsheet.Items {
		merged := dst.Upsert(item.Key, item.Label)
		merged.Current = item.Current
		merged.CurrentSource = item.CurrentSource
		merged.Derived = item.Derived
		merged.CrossCheck = item.CrossCheck
	}
}

// deriveClosingRetainedEarnings fills the closing figure as opening plus
// net profit only when the workbook supplied none. A workbook-supplied
// figure is left untouched for the rollforward check to judge.
func deriveClosingRetainedEarnings(m *types.MergedStatement) {
	if existing, ok := m.BalanceSheet.Item(types.KeyRetainedEarnings); ok && existing.Current.Present {
		return
	}
	if !m.OpeningRetainedEarnings.Present {
		return
	}
	net, ok := m.IncomeStatement.Item(types.KeyNetProfitLoss)
	if !ok || !net.Current.Present {
		return
	}
	re := m.BalanceSheet.Upsert(types.KeyRetainedEarnings, "Retained earnings")
	re.Current = money.FromInt(m.OpeningRetainedEarnings.Value + net.Current.Value)
	re.CurrentSource = types.SourceSpreadsheet
	re.Derived = true
}

// buildRollforward lays out the equity rollforward presentation from the
// figures already resolved: opening retained earnings, the current-year
// result, and the closing balance.
func buildRollforward(m *types.MergedStatement) {
	if m.EquityRollforward.Title == "" {
		m.EquityRollforward.Title = "Statement of Changes in Equity"
	}
	m.EquityRollforward.Kind = types.SectionEquityRollforward

	opening := m.EquityRollforward.Upsert(types.KeyOpeningRetainedEarnings, "Retained earnings at the beginning of the year")
	opening.Current = m.OpeningRetainedEarnings
	if m.OpeningRetainedEarnings.Present {
		opening.CurrentSource = types.SourcePriorDoc
	}

	profit := m.EquityRollforward.Upsert(types.KeyNetProfitLoss, "Profit for the year")
	if net, ok := m.IncomeStatement.Item(types.KeyNetProfitLoss); ok {
		profit.Current = net.Current
		profit.CurrentSource = net.CurrentSource
		profit.Derived = net.Derived
	}

	closing := m.EquityRollforward.Upsert(types.KeyClosingRetainedEarnings, "Retained earnings at the end of the year")
	if re, ok := m.BalanceSheet.Item(types.KeyRetainedEarnings); ok {
		closing.Current = re.Current
		closing.CurrentSource = re.CurrentSource
		closing.Derived = re.Derived
	}
}
