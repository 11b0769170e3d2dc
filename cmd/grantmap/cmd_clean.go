package main

import (
	"fmt"

	"github.com/ganot/grantmap/internal/domain/describe"
	"github.com/spf13/cobra"
)

func newCleanCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Normalize grant descriptions",
		Long: `Rewrite every description to start with "Received funding to " followed by
the description with its funding boilerplate removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			svc := describe.NewService(a.runJournal(), a.logger)
			result, err := svc.Clean(cmd.Context(), describe.Request{Dataset: ds, DryRun: dryRun, Save: a.saveDataset})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d descriptions changed\n", result.RunID, len(result.Changes))
			a.reportWrite(cmd, result.Dataset, dryRun)
			return nil
		},
	}

	addDryRunFlag(cmd, &dryRun)
	return cmd
}
