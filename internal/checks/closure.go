package checks

import (
	"context"
	"strings"

	"github.com/quokkatech/finrecon/internal/types"
)

// LegacyAccountClosure verifies that accounts recorded as closed carry no
// current-year balance. An absent or zero figure passes; notes that
// merely mention the account do not trigger it.
type LegacyAccountClosure struct {
	Accounts []string
}

func (LegacyAccountClosure) ID() string   { return "legacy_account_closure" }
func (LegacyAccountClosure) Class() Class { return ClassWarning }

func (c LegacyAccountClosure) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	if len(c.Accounts) == 0 {
		return types.ValidationResult{
			Severity: types.SeverityPass,
			Message:  "no closed accounts configured",
		}
	}

	var open []string
	for _, key := range c.Accounts {
		for _, section := range []*types.StatementSection{&m.IncomeStatement, &m.BalanceSheet} {
			item, ok := section.Item(key)
			if !ok {
				continue
			}
			if item.Current.Present && item.Current.Value != 0 {
				open = append(open, key+" "+fmtAmount(item.Current.Value))
			}
		}
	}
	if len(open) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityWarning,
			Message:     "closed accounts still carry balances: " + strings.Join(open, ", "),
			SubjectKeys: c.Accounts,
		}
	}
	return types.ValidationResult{
		Severity:    types.SeverityPass,
		Message:     "closed accounts carry no current balance",
		SubjectKeys: c.Accounts,
	}
}

// RelatedPartySplit verifies related party loan balances sit in the
// classification the engagement expects. The default expectation is the
// full balance non-current.
type RelatedPartySplit struct {
	Rule string
}

func (RelatedPartySplit) ID() string   { return "related_party_split" }
func (RelatedPartySplit) Class() Class { return ClassWarning }

func (c RelatedPartySplit) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{types.KeyRelPartyLoansCurrent, types.KeyRelPartyLoansNonCurr}

	current := currentBalance(&m.BalanceSheet, types.KeyRelPartyLoansCurrent)
	nonCurrent := currentBalance(&m.BalanceSheet, types.KeyRelPartyLoansNonCurr)

	rule := c.Rule
	if rule == "" {
		rule = "non_current"
	}

	switch rule {
	case "non_current":
		if current != 0 {
			return types.ValidationResult{
				Severity: types.SeverityWarning,
				Message: "related party loans expected non-current but " + fmtAmount(current) +
					" is classified current",
				SubjectKeys: subjects,
			}
		}
	case "current":
		if nonCurrent != 0 {
			return types.ValidationResult{
				Severity: types.SeverityWarning,
				Message: "related party loans expected current but " + fmtAmount(nonCurrent) +
					" is classified non-current",
				SubjectKeys: subjects,
			}
		}
	case "split":
		// Both classifications are acceptable under an explicit split.
	}

	return types.ValidationResult{
		Severity: types.SeverityPass,
		Message: "related party loans classified as expected (current " + fmtAmount(current) +
			", non-current " + fmtAmount(nonCurrent) + ")",
		SubjectKeys: subjects,
	}
}

// DeferredTaxNote looks for an unexplained missing tax expense: a profit
// before tax with no income tax expense needs a note saying why.
type DeferredTaxNote struct {
	NoteAliases []string
}

func (DeferredTaxNote) ID() string   { return "deferred_tax_note" }
func (DeferredTaxNote) Class() Class { return ClassWarning }

func (c DeferredTaxNote) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{types.KeyIncomeTaxExpense}

	pbt, ok := m.IncomeStatement.Item(types.KeyProfitBeforeTax)
	if !ok || !pbt.Current.Present || pbt.Current.Value <= 0 {
		return types.ValidationResult{
			Severity:    types.SeverityPass,
			Message:     "no pre-tax profit requiring a tax expense",
			SubjectKeys: subjects,
		}
	}
	tax, ok := m.IncomeStatement.Item(types.KeyIncomeTaxExpense)
	if ok && tax.Current.Present && tax.Current.Value != 0 {
		return types.ValidationResult{
			Severity:    types.SeverityPass,
			Message:     "income tax expense " + fmtAmount(tax.Current.Value) + " recognized",
			SubjectKeys: subjects,
		}
	}

	for _, note := range m.Notes {
		heading := strings.ToLower(note.Heading)
		for _, alias := range c.NoteAliases {
			if strings.Contains(heading, strings.ToLower(alias)) {
				return types.ValidationResult{
					Severity: types.SeverityPass,
					Message: "missing tax expense on profit " + fmtAmount(pbt.Current.Value) +
						" explained by note " + itoa(note.Number),
					SubjectKeys: subjects,
				}
			}
		}
	}
	return types.ValidationResult{
		Severity: types.SeverityWarning,
		Message: "profit before tax " + fmtAmount(pbt.Current.Value) +
			" with no income tax expense and no explanatory note",
		SubjectKeys: subjects,
	}
}

func currentBalance(s *types.StatementSection, key string) int64 {
	if item, ok := s.Item(key); ok {
		return item.Current.Or(0)
	}
	return 0
}
