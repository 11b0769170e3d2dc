package main

import (
	"fmt"
	"strings"

	"github.com/ganot/grantmap/internal/config"
	"github.com/ganot/grantmap/internal/domain/consolidate"
	"github.com/ganot/grantmap/internal/domain/normalize"
	"github.com/spf13/cobra"
)

type consolidateOptions struct {
	rule   string
	dryRun bool
}

func newConsolidateCmd(a *app) *cobra.Command {
	var opts consolidateOptions

	rules := make([]string, 0, len(normalize.Rules()))
	for _, r := range normalize.Rules() {
		rules = append(rules, string(r))
	}

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge grants to the same organization into one entry",
		Long: `Group entries whose names normalize to the same key and merge each group
into one organization with a total amount and its constituent grants.

Rules: ` + strings.Join(rules, ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.rule, "rule", "", "name normalization rule (overrides consolidate.rule)")
	a.override(cmd, func(cfg *config.Config) {
		if opts.rule != "" {
			cfg.Consolidate.Rule = opts.rule
		}
	})
	addDryRunFlag(cmd, &opts.dryRun)
	return cmd
}

func runConsolidate(cmd *cobra.Command, a *app, opts consolidateOptions) error {
	normalizer, policy, err := a.cfg.MergePolicy()
	if err != nil {
		return err
	}

	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	svc := consolidate.NewService(normalizer, policy, a.runJournal(), a.logger)
	result, err := svc.Consolidate(cmd.Context(), consolidate.Request{Dataset: ds, DryRun: opts.dryRun, Save: a.saveDataset})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := result.Report
	fmt.Fprintf(out, "run %s: %d entries -> %d organizations (rule %s)\n", result.RunID, r.InputCount, r.OutputCount, r.Rule)
	for _, m := range r.Merged {
		fmt.Fprintf(out, "  %s: %d grants, %s, %s\n", m.Name, m.GrantCount, m.Total, strings.Join(m.Years, ", "))
	}
	printAnomalies(out, r.Anomalies)
	a.reportWrite(cmd, result.Dataset, opts.dryRun)
	return nil
}
