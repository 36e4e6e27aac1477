package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "List visible records as view models",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := openModule(nil)
		if err != nil {
			return err
		}
		defer module.Close()

		reader, err := lookupEntity(module, args[0])
		if err != nil {
			return err
		}
		views, report, err := reader.list(cmd.Context())
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		for _, dropped := range report.Dropped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped row %d (%s): %v\n", dropped.Index, dropped.ID, dropped.Err)
		}
		return printJSON(cmd.OutOrStdout(), views)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
