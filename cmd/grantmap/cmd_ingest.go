package main

import (
	"fmt"
	"os"

	"github.com/ganot/grantmap/internal/domain/location"
	"github.com/ganot/grantmap/internal/ingest"
	"github.com/spf13/cobra"
)

type ingestOptions struct {
	source           string
	activeSince      int
	includeCancelled bool
	dryRun           bool
}

func newIngestCmd(a *app) *cobra.Command {
	var opts ingestOptions

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the dataset from the grants spreadsheet export (CSV)",
		Long: `Parse the CSV export, geocode each grant from its name and service area,
derive its status and write a fresh, unconsolidated dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "CSV export to read (overrides dataset.source)")
	cmd.Flags().IntVar(&opts.activeSince, "active-since", 0, "first grant year counted as active (overrides ingest.active_since)")
	cmd.Flags().BoolVar(&opts.includeCancelled, "include-cancelled", false, "keep grants marked cancelled")
	addDryRunFlag(cmd, &opts.dryRun)
	return cmd
}

func runIngest(cmd *cobra.Command, a *app, opts ingestOptions) error {
	source := a.cfg.Dataset.Source
	if opts.source != "" {
		source = opts.source
	}
	converter := ingest.Converter{
		ActiveSince:      a.cfg.Ingest.ActiveSince,
		IncludeCancelled: a.cfg.Ingest.IncludeCancelled || opts.includeCancelled,
	}
	if opts.activeSince != 0 {
		converter.ActiveSince = opts.activeSince
	}

	gazetteer, err := a.gazetteer()
	if err != nil {
		return err
	}
	converter.Geocoder = gazetteer

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	svc := ingest.NewService(converter, a.runJournal(), a.logger)
	result, err := svc.Ingest(cmd.Context(), ingest.Request{
		Source:     f,
		SourceName: source,
		DryRun:     opts.dryRun,
		Save:       a.saveDataset,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := result.Report
	fmt.Fprintf(out, "run %s: %d rows, %d grantees, %d cancelled dropped\n", result.RunID, r.Rows, r.Entries, r.Cancelled)
	printAnomalies(out, r.Anomalies)
	a.reportWrite(cmd, result.Dataset, opts.dryRun)
	return nil
}

func (a *app) gazetteer() (*location.Gazetteer, error) {
	if a.cfg.Location.PlacesPath == "" {
		return location.DefaultGazetteer()
	}
	places, err := location.LoadTable(a.cfg.Location.PlacesPath)
	if err != nil {
		return nil, err
	}
	return location.DefaultGazetteerWith(places)
}
