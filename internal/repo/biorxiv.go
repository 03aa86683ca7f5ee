// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meshintel/bioquery/internal/httputil"
	"github.com/meshintel/bioquery/pkg/types"
)

// biorxivAPIBase is the BioRxiv details endpoint. Declared as a var so
// tests can substitute an httptest server.
var biorxivAPIBase = "https://api.biorxiv.org/details/biorxiv"

// BioRxiv searches the BioRxiv preprint server. BioRxiv is the delegated
// resource: its API embeds the date range, cursor, and page size in the
// URL path, which does not fit the generic GET-with-query-params client,
// so this adapter issues the HTTP call itself under the same
// JSON-on-200 / error-envelope-on-failure contract. 429 responses are
// retried with exponential backoff and jitter.
//
// Envelope keys read: "query", and optionally "from", "to" (YYYY-MM-DD),
// "cursor", "limit".
type BioRxiv struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
}

// Name returns the adapter identifier.
func (r *BioRxiv) Name() string { return "biorxiv" }

// Query fetches a page of preprint records and normalizes each collection
// item to {title, abstract, doi, published, authors, source}.
func (r *BioRxiv) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	term := params.String("query")
	if term == "" {
		return types.ErrorResponse(params, "biorxiv: query is required")
	}

	// Wide default window so older preprints still surface.
	from := params.String("from")
	if from == "" {
		from = "2010-01-01"
	}
	to := params.String("to")
	if to == "" {
		to = "2024-12-31"
	}
	cursor := params.Int("cursor", 0)
	limit := params.Int("limit", 10)

	reqURL := fmt.Sprintf("%s/%s/%s/%d/%d?query=%s",
		biorxivAPIBase, from, to, cursor, limit, url.QueryEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.ErrorResponse(params, fmt.Sprintf("biorxiv: building request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, r.Client, req, r.MaxRetries)
	if err != nil {
		return types.ErrorResponse(params, fmt.Sprintf("biorxiv: request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ErrorResponse(params, fmt.Sprintf("biorxiv: API returned HTTP %d", resp.StatusCode))
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.ErrorResponse(params, fmt.Sprintf("biorxiv: parsing response: %v", err))
	}

	collection, _ := body["collection"].([]any)
	formatted := make([]any, 0, len(collection))
	for _, raw := range collection {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		formatted = append(formatted, map[string]any{
			"title":     item["title"],
			"abstract":  item["abstract"],
			"doi":       item["doi"],
			"published": item["published"],
			"authors":   item["authors"],
			"source":    "biorxiv",
		})
	}

	return types.NewResponse(params, formatted)
}
