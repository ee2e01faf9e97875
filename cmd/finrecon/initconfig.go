package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quokkatech/finrecon/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration to a file for editing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "finrecon.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; remove it first", path)
		}
		if err := config.SaveDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}
