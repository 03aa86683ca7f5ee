// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"net/url"

	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/pkg/types"
)

// OpenTargets queries the OpenTargets Platform.
// Envelope keys read: "query" (free-text search), "target" and "disease"
// (association filtering by identifier).
type OpenTargets struct {
	Manager *resource.Manager
}

// Name returns the adapter identifier.
func (r *OpenTargets) Name() string { return "opentargets" }

// Query routes by the parameters supplied: a bare free-text query runs a
// platform search; a target or disease identifier filters associations;
// with neither, a broad association fetch is attempted. An empty payload
// means the resource client already degraded a failure, so the envelope
// reports it as an error.
func (r *OpenTargets) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	freeText := params.String("query")
	target := params.String("target")
	disease := params.String("disease")

	switch {
	case target == "" && disease == "" && freeText != "":
		payload := r.Manager.Fetch(ctx, "opentargets", "public/search", url.Values{
			"q":    {freeText},
			"size": {"10"},
		})
		return r.envelope(params, payload)

	case target != "" || disease != "":
		v := url.Values{"size": {"100"}}
		if target != "" {
			v.Set("target", target)
		}
		if disease != "" {
			v.Set("disease", disease)
		}
		payload := r.Manager.Fetch(ctx, "opentargets", "public/association/filter", v)
		return r.envelope(params, payload)

	default:
		payload := r.Manager.Fetch(ctx, "opentargets", "platform/public/association/filter", url.Values{
			"size": {"100"},
		})
		return types.NewResponse(params, payload)
	}
}

func (r *OpenTargets) envelope(params types.QueryEnvelope, payload map[string]any) types.ResponseEnvelope {
	if len(payload) == 0 {
		return types.ErrorResponse(params, "opentargets: no results found")
	}
	return types.NewResponseWithCount(params, payload, dataCount(payload))
}

// dataCount returns the length of the payload's "data" array, the shape
// OpenTargets uses for both search hits and association rows.
func dataCount(payload map[string]any) int {
	if data, ok := payload["data"].([]any); ok {
		return len(data)
	}
	return 0
}
