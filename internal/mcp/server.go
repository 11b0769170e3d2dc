// Package mcp exposes the grantee catalog, search index and run journal as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/grantmap/internal/browse"
	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to clients during initialization.
var Version = "0.1.0"

// ActivityService defines journal operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration. Search and Activity are optional;
// the tools that need them report an error when they are nil.
type Config struct {
	Catalog      *browse.Catalog
	Search       repository.SearchRepository
	Activity     ActivityService
	ShareBaseURL string
	Logger       *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Catalog == nil {
		cfg.Catalog = browse.NewCatalog(grant.Dataset{})
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "grantmap",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		catalog:  cfg.Catalog,
		search:   cfg.Search,
		activity: cfg.Activity,
		baseURL:  cfg.ShareBaseURL,
	})

	return server
}
