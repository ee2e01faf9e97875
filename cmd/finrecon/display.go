package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/pipeline"
	"github.com/quokkatech/finrecon/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

func severityLabel(r types.ValidationResult) string {
	switch r.Severity {
	case types.SeverityPass:
		return green("PASS")
	case types.SeverityWarning:
		if r.Confirmed {
			return yellow("WARN*")
		}
		return yellow("WARN")
	case types.SeverityBlocking:
		return red("BLOCK")
	}
	return string(r.Severity)
}

func renderOutcome(w io.Writer, outcome *pipeline.Outcome) {
	m := outcome.Statement
	fmt.Fprintf(w, "\n%s FY%d (run %s)\n\n", m.EntityName, m.FinancialYear, faint(outcome.RunID.String()))

	renderSection(w, &m.IncomeStatement)
	renderSection(w, &m.BalanceSheet)
	renderSection(w, &m.EquityRollforward)

	fmt.Fprintln(w, "Findings:")
	for _, r := range outcome.Results {
		tag := ""
		if r.Advisory {
			tag = faint(" (advisory)")
		}
		fmt.Fprintf(w, "  %s  %s: %s%s\n", severityLabel(r), r.CheckID, r.Message, tag)
	}
	fmt.Fprintln(w)

	if outcome.Finalizable() {
		fmt.Fprintf(w, "%s statement may be finalized\n", green("✓"))
	} else {
		fmt.Fprintf(w, "%s blocking findings remain\n", red("✗"))
	}
}

func renderSection(w io.Writer, s *types.StatementSection) {
	if len(s.Items) == 0 {
		return
	}
	rows := make([][]string, 0, len(s.Items))
	for _, item := range s.Items {
		label := item.Label
		if item.Derived {
			label += " *"
		}
		rows = append(rows, []string{
			label,
			money.Format(item.Current),
			money.Format(item.Prior),
		})
	}
	fmt.Fprintln(w, s.Title)
	fmt.Fprintln(w, renderTable([]string{"", "Current", "Prior"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight}))
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
