// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"net/url"

	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/pkg/types"
)

// TargetDisease fans a target–disease association query out to every
// resource the selector ranks for it.
// Envelope keys read: "target", "disease".
type TargetDisease struct {
	Manager *resource.Manager
}

// Name returns the adapter identifier.
func (r *TargetDisease) Name() string { return "target_disease" }

// Query selects resources for the target_disease rule and queries each
// one's evidence filter endpoint. Results is a map of resource identifier
// to raw payload; sources that failed contribute an empty payload without
// affecting the others.
func (r *TargetDisease) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	target := params.String("target")
	disease := params.String("disease")
	if target == "" && disease == "" {
		return types.ErrorResponse(params, "target_disease: target or disease is required")
	}

	ids := r.Manager.Select("target_disease", resource.DataNeeds{
		DataTypes: []string{"target-disease", "evidence"},
	})

	v := url.Values{"size": {"100"}}
	if target != "" {
		v.Set("target", target)
	}
	if disease != "" {
		v.Set("disease", disease)
	}

	results := r.Manager.FetchMany(ctx, ids, "evidence/filter", v)
	return types.NewResponse(params, results)
}
