package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ganot/grantmap/internal/config"
	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/sqlite"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dataset    string
	logLevel   string
	dbPath     string
	noJournal  bool
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sqlite.DB
	journal *activity.Service
	closers []io.Closer

	// overrides apply a subcommand's config flags before validation.
	overrides map[*cobra.Command]func(*config.Config)
}

// override registers fn to adjust the config when cmd is the one running.
func (a *app) override(cmd *cobra.Command, fn func(*config.Config)) {
	if a.overrides == nil {
		a.overrides = make(map[*cobra.Command]func(*config.Config))
	}
	a.overrides[cmd] = fn
}

// runJournal returns the journal for batch services, or a nil interface when
// journaling is disabled.
func (a *app) runJournal() activity.Recorder {
	if a.journal == nil {
		return nil
	}
	return a.journal
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	a := &app{}

	cmd := &cobra.Command{
		Use:   "grantmap",
		Short: "Maintain and serve the grantee map dataset",
		Long: `grantmap ingests the grants spreadsheet export into the map dataset,
consolidates grants to the same organization, applies location corrections,
cleans descriptions, validates the result and serves it.

Each batch command rewrites the dataset file in place (use --dry-run to only
report) and records the run in the journal database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default $GRANTMAP_CONFIG_PATH)")
	flags.StringVar(&opts.dataset, "dataset", "", "dataset JSON file (overrides dataset.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flags.StringVar(&opts.dbPath, "db", "", "journal database file (overrides db.path)")
	flags.BoolVar(&opts.noJournal, "no-journal", false, "do not record runs")

	cmd.AddCommand(
		newIngestCmd(a),
		newConsolidateCmd(a),
		newCorrectCmd(a),
		newCleanCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)
	// PersistentPostRun is skipped when RunE fails, so close here instead.
	for _, sub := range cmd.Commands() {
		run := sub.RunE
		sub.RunE = func(c *cobra.Command, args []string) error {
			defer a.close()
			return run(c, args)
		}
	}
	return cmd
}

func (a *app) setup(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if cmd.Flags().Changed("db") {
		cfg.DB.Path = opts.dbPath
	}
	if fn := a.overrides[cmd]; fn != nil {
		fn(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// Logs go to stderr so stdout stays clean for reports and stdio JSON-RPC.
	logWriter := io.Writer(cmd.ErrOrStderr())
	if logPath := os.Getenv("GRANTMAP_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if opts.noJournal || cfg.DB.Path == "" {
		return nil
	}
	db, err := openDB(cfg.DB.Path)
	if err != nil {
		a.close()
		return err
	}
	a.db = db
	a.closers = append(a.closers, db)
	a.journal = activity.NewService(sqlite.NewActivityRepository(db), a.logger)
	return nil
}
