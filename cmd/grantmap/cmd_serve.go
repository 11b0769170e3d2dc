package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/grantmap/internal/browse"
	"github.com/ganot/grantmap/internal/config"
	"github.com/ganot/grantmap/internal/dataset"
	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/mcp"
	"github.com/ganot/grantmap/internal/repository"
	"github.com/ganot/grantmap/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	transport string
	host      string
	port      int
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset over MCP (stdio or HTTP)",
		Long: `Load the dataset, index it for search and serve the map's browsing model as
MCP tools. In http mode the server also exposes /health and the dataset itself
at /data/grantees.json.

A dataset that fails to load is served as an empty catalog carrying the error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, a)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "stdio or http (overrides transport.mode)")
	cmd.Flags().StringVar(&opts.host, "host", "", "HTTP listen host (overrides server.host)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "HTTP listen port (overrides server.port)")
	a.override(cmd, func(cfg *config.Config) {
		if opts.transport != "" {
			cfg.Transport.Mode = opts.transport
		}
		if opts.host != "" {
			cfg.Server.Host = opts.host
		}
		if opts.port != 0 {
			cfg.Server.Port = opts.port
		}
	})
	return cmd
}

func runServe(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	cfg := a.cfg
	logger := a.logger

	catalog := browse.Load(func() (grant.Dataset, error) { return dataset.Load(cfg.Dataset.Path) })
	if err := catalog.Err(); err != nil {
		logger.Warn("serving without data", "path", cfg.Dataset.Path, "error", err)
	}

	mcpCfg := mcp.Config{
		Catalog:      catalog,
		ShareBaseURL: cfg.ShareBaseURL(),
		Logger:       logger,
	}
	if a.db != nil {
		mcpCfg.Search = indexCatalog(ctx, logger, sqlite.NewSearchRepository(a.db), catalog)
	}
	if a.journal != nil {
		mcpCfg.Activity = a.journal
		if err := a.journal.RecordRun(ctx, activity.Run{
			ID:      activity.NewRunID(),
			Type:    activity.TypeServeStarted,
			Summary: fmt.Sprintf("serving %d grantees over %s", catalog.Len(), cfg.Transport.Mode),
		}); err != nil {
			logger.Warn("failed to journal run", "error", err)
		}
	}
	server := mcp.NewServer(mcpCfg)

	if cfg.Transport.Mode == "stdio" {
		logger.Info("starting stdio transport", "grantees", catalog.Len())
		// Run returns when stdin closes or ctx is cancelled.
		if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return runHTTP(ctx, logger, &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(server, catalog),
		ReadHeaderTimeout: 10 * time.Second,
	})
}

func newHTTPHandler(server *sdkmcp.Server, catalog *browse.Catalog) http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	data, encodeErr := dataset.Encode(grant.Dataset{Grantees: catalog.All(), Metadata: catalog.Metadata()})

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /data/grantees.json", func(w http.ResponseWriter, r *http.Request) {
		if msg := catalog.ErrorMessage(); msg != "" {
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	return router
}

// runHTTP serves until ctx is cancelled, then shuts down gracefully.
// indexCatalog rebuilds the search index from the catalog. It returns nil when
// indexing fails, which serves the catalog without search.
func indexCatalog(ctx context.Context, logger *slog.Logger, search repository.SearchRepository, catalog *browse.Catalog) repository.SearchRepository {
	if err := search.Reindex(ctx, catalog.All()); err != nil {
		logger.Warn("search disabled", "error", err)
		return nil
	}
	return search
}

func runHTTP(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
