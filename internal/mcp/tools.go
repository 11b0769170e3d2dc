package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/ganot/grantmap/internal/browse"
	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/domain/grant"
	"github.com/ganot/grantmap/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultSearchLimit = 20
	defaultRunsLimit   = 50
	maxLimit           = 500
)

type tools struct {
	catalog  *browse.Catalog
	search   repository.SearchRepository
	activity ActivityService
	baseURL  string
}

// FilterInput selects entries the way the map's filter bar does.
type FilterInput struct {
	Year      string `json:"year,omitempty" jsonschema:"grant year, e.g. 2024; omit or 'all' for any"`
	County    string `json:"county,omitempty" jsonschema:"county or region name; omit or 'all' for any"`
	FocusArea string `json:"focus_area,omitempty" jsonschema:"focus area; omit or 'all' for any"`
	Status    string `json:"status,omitempty" jsonschema:"active, completed or cancelled; omit or 'all' for any"`
}

func (in FilterInput) filters() browse.Filters {
	return browse.Filters{Year: in.Year, County: in.County, FocusArea: in.FocusArea, Status: in.Status}
}

// StatsView is browse.Stats with the exact funding total rendered as a JSON
// number.
type StatsView struct {
	Grantees     int     `json:"totalGrantees"`
	TotalFunding float64 `json:"totalFunding"`
	Active       int     `json:"activeProjects"`
}

func viewStats(s browse.Stats) StatsView {
	return StatsView{
		Grantees:     s.Grantees,
		TotalFunding: s.TotalFunding.Decimal().InexactFloat64(),
		Active:       s.Active,
	}
}

type ListOutput struct {
	Markers []browse.Marker `json:"markers"`
	Stats   StatsView       `json:"stats"`
	Error   string          `json:"error,omitempty"`
}

type NameInput struct {
	Name string `json:"name" jsonschema:"grantee name, matched ignoring case"`
}

type GranteeOutput struct {
	Detail browse.Detail     `json:"detail"`
	Share  browse.ShareLinks `json:"share"`
}

type SearchInput struct {
	Query  string `json:"query" jsonschema:"words to find in names, places, focus areas and descriptions"`
	County string `json:"county,omitempty" jsonschema:"only entries in this county or region"`
	Status string `json:"status,omitempty" jsonschema:"only entries with this status"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of hits, default 20"`
	Offset int    `json:"offset,omitempty" jsonschema:"hits to skip"`
}

type SearchOutput struct {
	Hits []grant.SearchHit `json:"hits"`
}

type StatsOutput struct {
	Stats       StatsView `json:"stats"`
	Funding     string    `json:"funding"`
	LastUpdated string    `json:"last_updated,omitempty"`
	DataSource  string    `json:"data_source,omitempty"`
	Note        string    `json:"note,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type OptionsInput struct{}

type OptionsOutput struct {
	Years      []string `json:"years"`
	Counties   []string `json:"counties"`
	FocusAreas []string `json:"focus_areas"`
	Statuses   []string `json:"statuses"`
}

type RunsInput struct {
	RunID  string `json:"run_id,omitempty" jsonschema:"only entries of this run"`
	Type   string `json:"type,omitempty" jsonschema:"only entries of this type, e.g. consolidation_run or anomaly"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of entries, default 50"`
	Offset int    `json:"offset,omitempty" jsonschema:"entries to skip"`
}

// RunEntry is one journal entry. Times are RFC 3339.
type RunEntry struct {
	RunID     string `json:"run_id"`
	Type      string `json:"type"`
	Subject   string `json:"subject,omitempty"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
	CreatedAt string `json:"created_at"`
}

type RunsOutput struct {
	Entries []RunEntry `json:"entries"`
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_grantees",
		Description: "List map markers and headline stats for the grantees passing the filters",
	}, t.listGrantees)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_grantee",
		Description: "Get the detail view of one grantee, including each grant of a multi-grant organization and share links",
	}, t.getGrantee)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_grantees",
		Description: "Full-text search over grantee names, places, focus areas and descriptions",
	}, t.searchGrantees)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_stats",
		Description: "Get total grantees, total funding and active projects for the grantees passing the filters",
	}, t.getStats)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_filter_options",
		Description: "List the values offered by each filter",
	}, t.getFilterOptions)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_share_links",
		Description: "Get the page link and social share links for one grantee",
	}, t.getShareLinks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_runs",
		Description: "List recent pipeline runs and the anomalies they reported, newest first",
	}, t.getRecentRuns)
}

func (t *tools) listGrantees(_ context.Context, _ *sdkmcp.CallToolRequest, in FilterInput) (*sdkmcp.CallToolResult, ListOutput, error) {
	f := in.filters()
	return nil, ListOutput{
		Markers: t.catalog.Markers(f),
		Stats:   viewStats(browse.ComputeStats(t.catalog.Filter(f))),
		Error:   t.catalog.ErrorMessage(),
	}, nil
}

func (t *tools) lookup(name string) (grant.Grantee, error) {
	g, ok := t.catalog.Lookup(name)
	if !ok {
		return grant.Grantee{}, MapError(fmt.Errorf("%w: %q", ErrGranteeNotFound, name))
	}
	return g, nil
}

func (t *tools) getGrantee(_ context.Context, _ *sdkmcp.CallToolRequest, in NameInput) (*sdkmcp.CallToolResult, GranteeOutput, error) {
	g, err := t.lookup(in.Name)
	if err != nil {
		return nil, GranteeOutput{}, err
	}
	return nil, GranteeOutput{
		Detail: browse.NewDetail(g),
		Share:  browse.NewShareLinks(t.baseURL, g.Name),
	}, nil
}

func (t *tools) searchGrantees(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	if t.search == nil {
		return nil, SearchOutput{}, MapError(ErrSearchUnavailable)
	}
	hits, err := t.search.Search(ctx, in.Query, repository.SearchOptions{
		County: in.County,
		Status: grant.Status(in.Status),
		Limit:  clampLimit(in.Limit, defaultSearchLimit),
		Offset: max(in.Offset, 0),
	})
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}
	if hits == nil {
		hits = []grant.SearchHit{}
	}
	return nil, SearchOutput{Hits: hits}, nil
}

func (t *tools) getStats(_ context.Context, _ *sdkmcp.CallToolRequest, in FilterInput) (*sdkmcp.CallToolResult, StatsOutput, error) {
	stats := browse.ComputeStats(t.catalog.Filter(in.filters()))
	meta := t.catalog.Metadata()
	out := StatsOutput{
		Stats:      viewStats(stats),
		Funding:    stats.FundingLabel(),
		DataSource: meta.DataSource,
		Note:       meta.Note,
		Error:      t.catalog.ErrorMessage(),
	}
	if !meta.LastUpdated.IsZero() {
		out.LastUpdated = meta.LastUpdated.Format(time.RFC3339)
	}
	return nil, out, nil
}

func (t *tools) getFilterOptions(_ context.Context, _ *sdkmcp.CallToolRequest, _ OptionsInput) (*sdkmcp.CallToolResult, OptionsOutput, error) {
	return nil, OptionsOutput{
		Years:      t.catalog.YearOptions(),
		Counties:   t.catalog.CountyOptions(),
		FocusAreas: t.catalog.FocusAreaOptions(),
		Statuses:   []string{string(grant.StatusActive), string(grant.StatusCompleted), string(grant.StatusCancelled)},
	}, nil
}

func (t *tools) getShareLinks(_ context.Context, _ *sdkmcp.CallToolRequest, in NameInput) (*sdkmcp.CallToolResult, browse.ShareLinks, error) {
	g, err := t.lookup(in.Name)
	if err != nil {
		return nil, browse.ShareLinks{}, err
	}
	return nil, browse.NewShareLinks(t.baseURL, g.Name), nil
}

func (t *tools) getRecentRuns(ctx context.Context, _ *sdkmcp.CallToolRequest, in RunsInput) (*sdkmcp.CallToolResult, RunsOutput, error) {
	if t.activity == nil {
		return nil, RunsOutput{}, MapError(ErrJournalUnavailable)
	}
	opts := activity.ListActivityOptions{
		RunID:  in.RunID,
		Limit:  clampLimit(in.Limit, defaultRunsLimit),
		Offset: max(in.Offset, 0),
	}
	if in.Type != "" {
		typ := activity.ActivityType(in.Type)
		opts.ActivityType = &typ
	}

	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, RunsOutput{}, MapError(err)
	}
	out := RunsOutput{Entries: make([]RunEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = RunEntry{
			RunID:     e.RunID,
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			Details:   e.Details,
			DryRun:    e.DryRun,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.Subject != nil {
			out.Entries[i].Subject = *e.Subject
		}
	}
	return nil, out, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}
