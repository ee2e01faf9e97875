package checks

import (
	"context"

	"github.com/quokkatech/finrecon/internal/types"
)

// RetainedEarningsRollforward verifies closing retained earnings equal
// the opening balance plus the current-year result, exactly.
type RetainedEarningsRollforward struct{}

func (RetainedEarningsRollforward) ID() string   { return "retained_earnings_rollforward" }
func (RetainedEarningsRollforward) Class() Class { return ClassBlocking }

func (RetainedEarningsRollforward) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{types.KeyRetainedEarnings, types.KeyNetProfitLoss}

	opening := m.OpeningRetainedEarnings
	net, netOK := m.IncomeStatement.Item(types.KeyNetProfitLoss)
	closing, closingOK := m.BalanceSheet.Item(types.KeyRetainedEarnings)

	var missing []string
	if !opening.Present {
		missing = append(missing, "opening retained earnings")
	}
	if !netOK || !net.Current.Present {
		missing = append(missing, "current-year result")
	}
	if !closingOK || !closing.Current.Present {
		missing = append(missing, "closing retained earnings")
	}
	if len(missing) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     "retained earnings rollforward cannot be verified: missing " + joinKeys(missing),
			SubjectKeys: subjects,
		}
	}

	expected := opening.Value + net.Current.Value
	diff := closing.Current.Value - expected
	if diff == 0 {
		return types.ValidationResult{
			Severity: types.SeverityPass,
			Message: "closing retained earnings " + fmtAmount(closing.Current.Value) +
				" equal opening " + fmtAmount(opening.Value) + " plus result " + fmtAmount(net.Current.Value),
			SubjectKeys: subjects,
		}
	}
	return types.ValidationResult{
		Severity: types.SeverityBlocking,
		Message: "closing retained earnings " + fmtAmount(closing.Current.Value) +
			" do not equal opening " + fmtAmount(opening.Value) + " plus result " +
			fmtAmount(net.Current.Value) + ", difference " + fmtAmount(diff),
		SubjectKeys: subjects,
	}
}
