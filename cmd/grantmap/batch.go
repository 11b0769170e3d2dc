package main

import (
	"fmt"
	"io"

	"github.com/ganot/grantmap/internal/dataset"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/spf13/cobra"
)

func (a *app) loadDataset() (grant.Dataset, error) {
	ds, err := dataset.Load(a.cfg.Dataset.Path)
	if err != nil {
		return grant.Dataset{}, fmt.Errorf("loading dataset: %w", err)
	}
	return ds, nil
}

// saveDataset returns the Save hook handed to batch services. It writes over
// the configured dataset.
func (a *app) saveDataset(ds grant.Dataset) error {
	path := a.cfg.Dataset.Path
	if err := dataset.Save(path, ds); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}
	a.logger.Info("dataset written", "path", path, "grantees", len(ds.Grantees))
	return nil
}

// reportWrite tells the user whether the run's dataset was written.
func (a *app) reportWrite(cmd *cobra.Command, ds grant.Dataset, dryRun bool) {
	path := a.cfg.Dataset.Path
	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry run: %s not written\n", path)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d grantees, %s total\n",
		path, ds.Metadata.TotalGrantees, ds.Metadata.TotalFunding)
}

func printAnomalies(w io.Writer, anomalies []grant.Anomaly) {
	if len(anomalies) == 0 {
		return
	}
	fmt.Fprintf(w, "%d anomalies:\n", len(anomalies))
	for _, an := range anomalies {
		name := an.Name
		if name == "" {
			name = "(dataset)"
		}
		fmt.Fprintf(w, "  %-16s %s: %s\n", an.Kind, name, an.Detail)
	}
}

func addDryRunFlag(cmd *cobra.Command, dryRun *bool) {
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "report what would change without writing the dataset")
}
