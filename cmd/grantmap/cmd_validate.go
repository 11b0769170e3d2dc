package main

import (
	"errors"
	"fmt"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/spf13/cobra"
)

var errAnomaliesFound = errors.New("dataset has anomalies")

func newValidateCmd(a *app) *cobra.Command {
	var warnOnly bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for data-quality defects",
		Long: `Report entries without coordinates, unreadable amounts, unknown statuses,
duplicate names and metadata totals that disagree with the entries.
Exits non-zero when anything is found, unless --warn-only is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			anomalies := grant.CheckDataset(ds)

			runID := activity.NewRunID()
			summary := fmt.Sprintf("validated %d grantees: %d anomalies", len(ds.Grantees), len(anomalies))
			if j := a.runJournal(); j != nil {
				if err := j.RecordRun(cmd.Context(), activity.Run{
					ID:        runID,
					Type:      activity.TypeValidationRun,
					Summary:   summary,
					DryRun:    true,
					Anomalies: anomalies,
				}); err != nil {
					a.logger.Warn("failed to journal run", "run_id", runID, "error", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %s\n", runID, summary)
			printAnomalies(out, anomalies)
			if len(anomalies) > 0 && !warnOnly {
				return fmt.Errorf("%w: %d found", errAnomaliesFound, len(anomalies))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&warnOnly, "warn-only", false, "report anomalies without failing")
	return cmd
}
