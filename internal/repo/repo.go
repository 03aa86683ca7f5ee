// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repo contains the repository adapters: one per domain query
// kind, each translating a QueryEnvelope into calls against the external
// biological data APIs and normalizing the reply into the standard
// ResponseEnvelope. Adapters never propagate errors; every failure is
// surfaced as a {status: "error"} envelope.
package repo

import (
	"context"

	"github.com/meshintel/bioquery/pkg/types"
)

// Repository is the sole interface the rest of the system consumes from
// this layer.
type Repository interface {
	Name() string
	Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope
}
