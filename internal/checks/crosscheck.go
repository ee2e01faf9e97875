package checks

import (
	"context"

	"github.com/quokkatech/finrecon/internal/types"
)

// PriorFigureCrossCheck compares the workbook's own prior-year column,
// where one existed, against the prior report's figures. The report stays
// authoritative; a disagreement is worth a look but never blocks.
type PriorFigureCrossCheck struct{}

func (PriorFigureCrossCheck) ID() string   { return "prior_figure_cross_check" }
func (PriorFigureCrossCheck) Class() Class { return ClassWarning }

func (PriorFigureCrossCheck) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	var mismatched []string
	checked := 0
	for _, section := range []*types.StatementSection{&m.IncomeStatement, &m.BalanceSheet} {
		for _, item := range section.Items {
			if !item.CrossCheck.Present || !item.Prior.Present {
				continue
			}
			checked++
			if item.CrossCheck.Value != item.Prior.Value {
				mismatched = append(mismatched, item.Key)
			}
		}
	}

	if len(mismatched) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityWarning,
			Message:     "workbook prior-year column disagrees with prior report on " + joinKeys(mismatched),
			SubjectKeys: mismatched,
		}
	}
	return types.ValidationResult{
		Severity: types.SeverityPass,
		Message:  "workbook prior-year column consistent with prior report (" + itoa(checked) + " figures compared)",
	}
}
