package main

import (
	"fmt"

	"github.com/spf13/cobra"

	vendcms "github.com/goliatone/go-vendcms"
	"github.com/goliatone/go-vendcms/internal/commands"
	"github.com/goliatone/go-vendcms/internal/commands/synccmd"
	"github.com/goliatone/go-vendcms/internal/migration"
)

var (
	syncEntities []string
	syncDryRun   bool
	syncPublish  bool
)

var syncCmd = &cobra.Command{
	Use:       "sync <pull|push>",
	Short:     "Copy content between Contentful and the database",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(migration.DirectionPull), string(migration.DirectionPush)},
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := openModule(func(cfg *vendcms.Config) {
			cfg.Features.Migration = true
		})
		if err != nil {
			return err
		}
		defer module.Close()

		out := cmd.OutOrStdout()
		logger := commands.CommandLogger(module.Container().LoggerProvider(), "sync")
		handler := synccmd.NewHandler(module.SyncJobs(), logger, func(reports []migration.Report) {
			for _, report := range reports {
				fmt.Fprintln(out, report.String())
				for _, failed := range report.Failed() {
					fmt.Fprintf(out, "  %s: %v\n", failed.Slug, failed.Err)
				}
			}
		})
		return handler.Execute(cmd.Context(), synccmd.SyncCommand{
			Direction: migration.Direction(args[0]),
			Entities:  syncEntities,
			DryRun:    syncDryRun,
			Publish:   syncPublish,
		})
	},
}

func init() {
	syncCmd.Flags().StringSliceVarP(&syncEntities, "entity", "e", nil, "Limit to entities (machine, product_type, technology)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would change without writing")
	syncCmd.Flags().BoolVar(&syncPublish, "publish", true, "Publish entries after pushing")
	rootCmd.AddCommand(syncCmd)
}
