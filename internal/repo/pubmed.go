// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/pkg/types"
)

// PubMed searches the NCBI E-utilities literature index.
// Envelope keys read: "query".
type PubMed struct {
	Manager *resource.Manager
}

// Name returns the adapter identifier.
func (r *PubMed) Name() string { return "pubmed" }

// Query runs an esearch against PubMed. A leading "What is" and trailing
// question mark are stripped so conversational phrasings still match
// indexed terms. The envelope count comes from esearchresult.count, the
// total hit count, not the size of the returned ID page.
func (r *PubMed) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	term := strings.TrimSpace(params.String("query"))
	term = strings.TrimPrefix(term, "What is")
	term = strings.TrimPrefix(term, "what is")
	term = strings.Trim(term, " ?")
	if term == "" {
		return types.ErrorResponse(params, "pubmed: query is required")
	}

	payload := r.Manager.Fetch(ctx, "pubmed", "esearch.fcgi", url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmax":  {"10"},
		"retmode": {"json"},
		"sort":    {"relevance"},
	})

	return types.NewResponseWithCount(params, payload, pubmedCount(payload))
}

// pubmedCount extracts esearchresult.count, which E-utilities returns as
// a JSON string.
func pubmedCount(payload map[string]any) int {
	result, ok := payload["esearchresult"].(map[string]any)
	if !ok {
		return 0
	}
	switch v := result["count"].(type) {
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	case float64:
		return int(v)
	}
	return 0
}
