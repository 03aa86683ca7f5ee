// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"net/url"

	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/pkg/types"
)

// PathwayAnalysis searches pathway databases for a free-text term.
// Envelope keys read: "query".
type PathwayAnalysis struct {
	Manager *resource.Manager
}

// Name returns the adapter identifier.
func (r *PathwayAnalysis) Name() string { return "pathway_analysis" }

// Query selects resources for the pathway_analysis rule. KEGG's REST API
// embeds the search term in the path rather than the query string, so the
// term is escaped into the endpoint and no parameters are sent. KEGG
// replies with plain text, which the JSON-only resource client degrades
// to an empty payload; the entry still appears in the results map so the
// caller can see which sources were attempted.
func (r *PathwayAnalysis) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	term := params.String("query")
	if term == "" {
		return types.ErrorResponse(params, "pathway_analysis: query is required")
	}

	ids := r.Manager.Select("pathway_analysis", resource.DataNeeds{
		DataTypes: []string{"pathway"},
	})

	results := r.Manager.FetchMany(ctx, ids, "find/pathway/"+url.PathEscape(term), nil)
	return types.NewResponse(params, results)
}
