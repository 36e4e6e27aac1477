package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-vendcms/internal/slugs"
)

var (
	exactOnly bool
	byID      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <entity> <slug-or-id>",
	Short: "Resolve a slug the way the public site does",
	Args:  cobra.ExactArgs(2),
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
		ctx := cmd.Context()

		var (
			result any
			found  int
		)
		if byID {
			result, err = reader.byID(ctx, args[1])
			if result != nil {
				found = 1
			}
		} else {
			result, found, err = reader.search(ctx, slugs.Request{Slug: args[1], ExactMatchOnly: exactOnly})
		}
		if err != nil {
			return fmt.Errorf("resolve: %w", err)
		}
		if found == 0 {
			return fmt.Errorf("no %s found for %q", args[0], args[1])
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&exactOnly, "exact", false, "Only accept an exact slug match")
	resolveCmd.Flags().BoolVar(&byID, "id", false, "Treat the argument as a UUID or Contentful entry id")
	rootCmd.AddCommand(resolveCmd)
}
