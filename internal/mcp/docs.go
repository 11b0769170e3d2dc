package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `grantmap serves the NJCIC grantee dataset: one entry per funded organization,
with location, funding, years, status and focus area.

Typical use:
1) get_filter_options to learn the valid years, counties, focus areas and statuses.
2) list_grantees or get_stats with filters for an overview; search_grantees for free text.
3) get_grantee for the full detail of one organization, including each of its grants.
4) get_share_links for a link that opens the map on that organization.
5) get_recent_runs to see when the dataset was rebuilt and what anomalies the pipeline reported.

Docs:
- grantmap://docs/index
- grantmap://docs/dataset
- grantmap://docs/consolidation
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "grantmap://docs/index",
		Name:        "docs_index",
		Title:       "grantmap docs index",
		Description: "What the server exposes and which doc to read next.",
		Content: `# grantmap

Read-only access to the grantee map.

## Tools

- ` + "`list_grantees`" + `: markers (initials label, name, county, amount, status, coordinates) and stats.
- ` + "`get_stats`" + `: total grantees, total funding and active projects.
- ` + "`get_filter_options`" + `: filter values. Counties are sorted, then the regions Statewide, North Jersey, Central Jersey and South Jersey.
- ` + "`get_grantee`" + `: the detail view. Multi-grant organizations list every grant.
- ` + "`search_grantees`" + `: full-text search. Every word must match, as a prefix.
- ` + "`get_share_links`" + `: page, X, Facebook, LinkedIn and email links.
- ` + "`get_recent_runs`" + `: the pipeline run journal.

## Docs

- ` + "`grantmap://docs/dataset`" + `: fields of an entry.
- ` + "`grantmap://docs/consolidation`" + `: how several grants to one organization become one entry.

If the dataset could not be loaded, list and stats tools return zero results and an ` + "`error`" + ` message.
`,
	},
	{
		URI:         "grantmap://docs/dataset",
		Name:        "docs_dataset",
		Title:       "Dataset fields",
		Description: "Field glossary for grantee entries.",
		Content: `# Dataset fields

| Field | Meaning |
|---|---|
| name | Organization name, unique after consolidation |
| county | County, or a region such as Statewide |
| city | City, when known |
| years | Grant years as text, e.g. "2023" |
| amount | Funding in dollars; for multi-grant organizations the total |
| description | What the funding supports |
| lat, lng | Map coordinates |
| status | active, completed or cancelled |
| website | Organization website |
| focusArea | Focus area; multi-grant organizations join theirs with "; " |
| grants | Constituent grants of a multi-grant organization |

Amounts that could not be read as dollars are kept as written and count as zero in totals.
`,
	},
	{
		URI:         "grantmap://docs/consolidation",
		Name:        "docs_consolidation",
		Title:       "Consolidation",
		Description: "How grants to the same organization are merged.",
		Content: `# Consolidation

Entries whose names normalize to the same key are merged into one organization.
The rule is configurable:

- exact: identical names only.
- case-insensitive: names differing only in letter case.
- suffix: names differing only in a trailing " - ..." project part.
- qualifier: names differing only in a project part after ":" or "|", e.g. "Center X: Project A".

A merged entry sums the amounts, unions the years, is active when any grant is active
and keeps each original grant in ` + "`grants`" + ` in dataset order. Location comes from
the first grant.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
