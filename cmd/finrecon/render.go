package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/pipeline"
	"github.com/quokkatech/finrecon/internal/types"
)

// textRenderer writes the finalized statement as plain text. It is only
// invoked once a run has no blocking findings.
type textRenderer struct {
	path string
}

var _ pipeline.Renderer = (*textRenderer)(nil)

func (r *textRenderer) Render(_ context.Context, m *types.MergedStatement, results []types.ValidationResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nFinancial Statements\nFor the Year Ended 30 June %d\n\n", m.EntityName, m.FinancialYear)

	writeSection := func(s *types.StatementSection) {
		if len(s.Items) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s\n", s.Title)
		for _, item := range s.Items {
			fmt.Fprintf(&b, "  %-48s %14s %14s\n", item.Label,
				money.Format(item.Current), money.Format(item.Prior))
		}
		b.WriteString("\n")
	}
	writeSection(&m.IncomeStatement)
	writeSection(&m.BalanceSheet)
	writeSection(&m.EquityRollforward)

	if len(m.Notes) > 0 {
		b.WriteString("Notes to the Financial Statements\n")
		for _, n := range m.Notes {
			fmt.Fprintf(&b, "%d. %s\n", n.Number, n.Heading)
			if n.Body != "" {
				fmt.Fprintf(&b, "%s\n", n.Body)
			}
		}
		b.WriteString("\n")
	}

	if len(m.Directors) > 0 {
		b.WriteString("Directors' Declaration\n")
		for _, d := range m.Directors {
			fmt.Fprintf(&b, "%s, %s\n", d.Name, d.Title)
		}
		b.WriteString("\n")
	}
	if m.Signatory.Name != "" {
		fmt.Fprintf(&b, "Compiled by %s, %s\n\n", m.Signatory.Name, m.Signatory.Title)
	}

	var warnings int
	for _, res := range results {
		if res.Severity == types.SeverityWarning {
			warnings++
		}
	}
	if warnings > 0 {
		fmt.Fprintf(&b, "Compiled with %d outstanding warnings.\n", warnings)
	}

	if err := os.WriteFile(r.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing statement to %s: %w", r.path, err)
	}
	return nil
}
