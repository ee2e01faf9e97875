package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quokkatech/finrecon/internal/checks"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the invariant checks and how each one fails",
	Long: `List every registered check with its failure class.

Classes:
  blocking                    fails hard; no override can soften it
  blocking_unless_confirmed   fails hard unless --confirm names the check
  warning                     reported for review, never blocks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, 10)
		for _, c := range checks.NewDefault(cfg).Checks() {
			rows = append(rows, []string{c.ID(), string(c.Class())})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Check", "Class"}, rows, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
