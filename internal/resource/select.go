// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"sort"

	"github.com/meshintel/bioquery/internal/catalog"
)

// DataNeeds describes what a query requires from a resource beyond the
// query type. DataTypes is matched against each descriptor's declared
// data types.
type DataNeeds struct {
	DataTypes []string
}

// Select returns the resource identifiers relevant to a query, ordered by
// priority descending with ties kept in catalog order. Candidates come
// from the selection rule for queryType (empty for unknown types) plus
// every non-delegated resource whose data types intersect needs.
// Identifiers not present in the catalog are dropped. An empty result is
// valid and means "no matching resource".
func Select(cat *catalog.Catalog, queryType string, needs DataNeeds) []string {
	var selected []string
	seen := make(map[string]bool)

	for _, id := range cat.Rule(queryType) {
		if !cat.Has(id) || seen[id] {
			continue
		}
		selected = append(selected, id)
		seen[id] = true
	}

	for _, d := range cat.Resources() {
		if d.Delegated || seen[d.ID] {
			continue
		}
		if matchesNeeds(d, needs) {
			selected = append(selected, d.ID)
			seen[d.ID] = true
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, _ := cat.Lookup(selected[i])
		b, _ := cat.Lookup(selected[j])
		return a.Priority > b.Priority
	})
	return selected
}

func matchesNeeds(d catalog.Descriptor, needs DataNeeds) bool {
	for _, t := range needs.DataTypes {
		if d.HasDataType(t) {
			return true
		}
	}
	return false
}
