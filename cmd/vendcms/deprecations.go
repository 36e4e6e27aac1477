package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-vendcms/internal/commands"
	"github.com/goliatone/go-vendcms/internal/commands/deprecationscmd"
)

var resetUsage bool

var deprecationsCmd = &cobra.Command{
	Use:   "deprecations",
	Short: "Show blocked legacy writes recorded by the deprecation registry",
	Long: `Shows usage counts of deprecated write operations. Counts are only shared
between processes when the redis deprecation store is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := openModule(nil)
		if err != nil {
			return err
		}
		defer module.Close()
		ctx := cmd.Context()

		if resetUsage {
			logger := commands.CommandLogger(module.Container().LoggerProvider(), "deprecations")
			handler := deprecationscmd.NewResetHandler(module.Deprecations(), logger)
			if err := handler.Execute(ctx, deprecationscmd.ResetCommand{Confirm: true}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deprecation usage cleared")
			return nil
		}

		usages, err := module.Deprecations().Snapshot(ctx)
		if err != nil {
			return err
		}
		if len(usages) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No deprecated operations recorded.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COMPONENT\tOPERATION\tCOUNT\tFIRST SEEN\tLAST USED")
		for _, u := range usages {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", u.Component, u.Message, u.Count,
				u.FirstSeen.Format(time.RFC3339), u.LastUsed.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	deprecationsCmd.Flags().BoolVar(&resetUsage, "reset", false, "Clear recorded usage")
	rootCmd.AddCommand(deprecationsCmd)
}
