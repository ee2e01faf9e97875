package checks

import (
	"context"

	"github.com/quokkatech/finrecon/internal/types"
)

// BalanceEquation verifies assets equal liabilities plus equity, to the
// dollar. A one dollar discrepancy blocks exactly like a million dollar
// one; the message carries the exact difference either way.
type BalanceEquation struct{}

func (BalanceEquation) ID() string   { return "balance_equation" }
func (BalanceEquation) Class() Class { return ClassBlocking }

func (BalanceEquation) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{types.KeyTotalAssets, types.KeyTotalLiabilities, types.KeyTotalEquity}

	var missing []string
	amounts := make(map[string]int64, len(subjects))
	for _, key := range subjects {
		item, ok := m.BalanceSheet.Item(key)
		if !ok || !item.Current.Present {
			missing = append(missing, key)
			continue
		}
		amounts[key] = item.Current.Value
	}
	if len(missing) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     "balance equation cannot be verified: missing " + joinKeys(missing),
			SubjectKeys: missing,
		}
	}

	assets := amounts[types.KeyTotalAssets]
	liabilities := amounts[types.KeyTotalLiabilities]
	equity := amounts[types.KeyTotalEquity]
	diff := assets - (liabilities + equity)
	if diff == 0 {
		return types.ValidationResult{
			Severity: types.SeverityPass,
			Message: "assets " + fmtAmount(assets) + " equal liabilities " + fmtAmount(liabilities) +
				" plus equity " + fmtAmount(equity),
			SubjectKeys: subjects,
		}
	}
	return types.ValidationResult{
		Severity: types.SeverityBlocking,
		Message: "assets " + fmtAmount(assets) + " do not equal liabilities " + fmtAmount(liabilities) +
			" plus equity " + fmtAmount(equity) + ", difference " + fmtAmount(diff),
		SubjectKeys: subjects,
	}
}
