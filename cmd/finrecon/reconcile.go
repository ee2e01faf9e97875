package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/extract"
	"github.com/quokkatech/finrecon/internal/pipeline"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run a full reconciliation and report every finding",
	Long: `Extract the current-year workbook and the prior-year report, merge
them under the ownership rule, and run every invariant check.

Examples:
  # Reconcile a workbook against last year's rendered report text
  finrecon reconcile --workbook current.xlsx --prior prior.txt

  # Accept a known director change for this run only
  finrecon reconcile --workbook current.xlsx --prior prior.txt \
    --confirm director_continuity

  # Use a config file for aliases, closed accounts, and defaults
  finrecon reconcile -c engagement.yaml --workbook current.xlsx --prior prior.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workbook, _ := cmd.Flags().GetString("workbook")
		priorPath, _ := cmd.Flags().GetString("prior")
		confirms, _ := cmd.Flags().GetStringSlice("confirm")
		entity, _ := cmd.Flags().GetString("entity")
		year, _ := cmd.Flags().GetInt("year")
		noAdvisory, _ := cmd.Flags().GetBool("no-advisory")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Confirmations = append(cfg.Confirmations, confirms...)
		if entity != "" {
			cfg.EntityName = entity
		}
		if year != 0 {
			cfg.FinancialYear = year
		}
		if noAdvisory {
			cfg.Advisory.Enabled = false
		}

		stream, err := extract.NewFileTokenStream(priorPath)
		if err != nil {
			return err
		}

		assessor, err := pipeline.NewAssessor(cfg)
		if err != nil {
			return fmt.Errorf("configuring advisory hook: %w", err)
		}
		timeout, err := cfg.Advisory.ParseTimeout(60 * time.Second)
		if err != nil {
			return err
		}

		outcome, err := pipeline.Run(cmd.Context(),
			extract.NewSpreadsheetExtractor(workbook, cfg),
			extract.NewReferenceExtractor(stream),
			pipeline.Options{Config: cfg, Assessor: assessor, AdvisoryTimeout: timeout})
		if err != nil {
			return err
		}

		renderOutcome(cmd.OutOrStdout(), outcome)
		if !outcome.Finalizable() {
			return fmt.Errorf("blocking findings remain; statement must not be finalized")
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			renderer := &textRenderer{path: out}
			if err := renderer.Render(cmd.Context(), outcome.Statement, outcome.Results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote statement to %s\n", out)
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func init() {
	reconcileCmd.Flags().String("workbook", "", "Current-year .xlsx workbook")
	reconcileCmd.Flags().String("prior", "", "Prior-year report as rendered text (form feed page breaks)")
	reconcileCmd.Flags().StringSlice("confirm", nil, "Check IDs whose blocking findings are accepted for this run")
	reconcileCmd.Flags().String("entity", "", "Entity name override when the prior report yields none")
	reconcileCmd.Flags().Int("year", 0, "Reporting year override when the prior report yields none")
	reconcileCmd.Flags().Bool("no-advisory", false, "Skip the advisory enrichment hook for this run")
	reconcileCmd.Flags().String("out", "", "Write the finalized statement text to this path")
	_ = reconcileCmd.MarkFlagRequired("workbook")
	_ = reconcileCmd.MarkFlagRequired("prior")

	rootCmd.AddCommand(reconcileCmd)
}
