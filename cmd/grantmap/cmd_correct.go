package main

import (
	"fmt"

	"github.com/ganot/grantmap/internal/domain/location"
	"github.com/spf13/cobra"
)

const (
	tableVerified = "verified"
	tablePlaces   = "places"
)

type correctOptions struct {
	table  string
	dryRun bool
}

func newCorrectCmd(a *app) *cobra.Command {
	var opts correctOptions

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Apply name-keyed location corrections",
		Long: `Overwrite the city, county and coordinates of entries named in a correction
table. Only the fields present in the table are changed.

Tables: verified (hand-checked fixes for bad geocodes) and places (coordinates
for every known organization).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorrect(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.table, "table", tableVerified, "correction table: verified or places")
	addDryRunFlag(cmd, &opts.dryRun)
	return cmd
}

func (a *app) correctionTable(name string) (location.Table, error) {
	switch name {
	case tableVerified:
		if p := a.cfg.Location.VerifiedPath; p != "" {
			return location.LoadTable(p)
		}
		return location.DefaultVerified()
	case tablePlaces:
		if p := a.cfg.Location.PlacesPath; p != "" {
			return location.LoadTable(p)
		}
		return location.DefaultPlaces()
	default:
		return nil, fmt.Errorf("unknown table %q", name)
	}
}

func runCorrect(cmd *cobra.Command, a *app, opts correctOptions) error {
	table, err := a.correctionTable(opts.table)
	if err != nil {
		return err
	}
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	svc := location.NewService(table, a.runJournal(), a.logger)
	result, err := svc.Correct(cmd.Context(), location.Request{Dataset: ds, DryRun: opts.dryRun, Save: a.saveDataset})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d corrections applied from %s table\n", result.RunID, len(result.Changes), opts.table)
	for _, c := range result.Changes {
		fmt.Fprintf(out, "  %s: %s\n", c.Name, c.Reason)
	}
	if len(result.Unmatched) > 0 {
		fmt.Fprintf(out, "%d table entries matched no grantee\n", len(result.Unmatched))
	}
	a.reportWrite(cmd, result.Dataset, opts.dryRun)
	return nil
}
