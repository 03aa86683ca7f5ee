// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"testing"

	"github.com/meshintel/bioquery/internal/catalog"
)

func selectorCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	resources := []catalog.Descriptor{
		{ID: "a", Name: "A", BaseURL: "https://a.example", Category: catalog.Genomic,
			DataTypes: []string{"evidence"}, RateLimit: 60, Priority: 1},
		{ID: "b", Name: "B", BaseURL: "https://b.example", Category: catalog.Proteomic,
			DataTypes: []string{"protein"}, RateLimit: 30, Priority: 5},
		{ID: "c", Name: "C", BaseURL: "https://c.example", Category: catalog.Pathway,
			DataTypes: []string{"pathway", "evidence"}, RateLimit: 20, Priority: 3},
		{ID: "d", Name: "D", BaseURL: "https://d.example", Category: catalog.Literature,
			DataTypes: []string{"evidence"}, RateLimit: 20, Priority: 4, Delegated: true},
	}
	rules := map[string][]string{
		"everything": {"a", "b", "c"},
		"just_a":     {"a"},
		"with_d":     {"d", "a"},
		"bad_ids":    {"a", "ghost"},
	}
	cat, err := catalog.New(resources, rules)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Select() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Select() = %v, want %v", got, want)
		}
	}
}

func TestSelectPriorityOrdering(t *testing.T) {
	cat := selectorCatalog(t)
	// a(1), b(5), c(3) all in the rule → ordered by priority descending.
	got := Select(cat, "everything", DataNeeds{})
	assertOrder(t, got, []string{"b", "c", "a"})
}

func TestSelectDeduplicates(t *testing.T) {
	cat := selectorCatalog(t)
	// "a" is both in the rule and matched by data needs; it appears once,
	// in the position its priority determines.
	got := Select(cat, "just_a", DataNeeds{DataTypes: []string{"evidence", "pathway"}})
	assertOrder(t, got, []string{"c", "a"})
}

func TestSelectUnknownQueryType(t *testing.T) {
	cat := selectorCatalog(t)

	got := Select(cat, "no_such_rule", DataNeeds{DataTypes: []string{"protein"}})
	assertOrder(t, got, []string{"b"})

	if got := Select(cat, "no_such_rule", DataNeeds{}); len(got) != 0 {
		t.Errorf("Select() with no rule and no needs = %v, want empty", got)
	}
}

func TestSelectSkipsDelegatedForDataNeeds(t *testing.T) {
	cat := selectorCatalog(t)
	// d declares "evidence" but is delegated, so data-need matching must
	// never add it.
	got := Select(cat, "just_a", DataNeeds{DataTypes: []string{"evidence"}})
	assertOrder(t, got, []string{"c", "a"})
}

func TestSelectKeepsDelegatedFromRule(t *testing.T) {
	cat := selectorCatalog(t)
	// An explicit rule entry stays even when delegated; the client
	// short-circuits it at fetch time.
	got := Select(cat, "with_d", DataNeeds{})
	assertOrder(t, got, []string{"d", "a"})
}

func TestSelectDropsUnknownRuleIDs(t *testing.T) {
	cat := selectorCatalog(t)
	got := Select(cat, "bad_ids", DataNeeds{})
	assertOrder(t, got, []string{"a"})
}
