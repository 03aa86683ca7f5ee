// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repo

import (
	"context"
	"net/url"

	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/pkg/types"
)

// uniprotFields is the column set requested from the UniProt search API.
const uniprotFields = "accession,id,gene_names,protein_name,go,keywords"

// ProteinFunction looks up functional annotation for a protein accession.
// Envelope keys read: "protein_id".
type ProteinFunction struct {
	Manager *resource.Manager
}

// Name returns the adapter identifier.
func (r *ProteinFunction) Name() string { return "protein_function" }

// Query selects resources for the protein_function rule and queries each
// with a UniProt-style accession search.
func (r *ProteinFunction) Query(ctx context.Context, params types.QueryEnvelope) types.ResponseEnvelope {
	proteinID := params.String("protein_id")
	if proteinID == "" {
		return types.ErrorResponse(params, "protein_function: protein_id is required")
	}

	ids := r.Manager.Select("protein_function", resource.DataNeeds{
		DataTypes: []string{"protein", "function"},
	})

	results := r.Manager.FetchMany(ctx, ids, "uniprotkb/search", url.Values{
		"query":  {"accession:" + proteinID},
		"format": {"json"},
		"fields": {uniprotFields},
	})
	return types.NewResponse(params, results)
}
