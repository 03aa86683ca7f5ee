// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

// Default returns the built-in catalog of public biological data APIs.
// BioRxiv is delegated: its date-range/cursor API does not fit the generic
// GET-with-query-params client and is handled by its own repository.
func Default() *Catalog {
	c, err := New(defaultResources(), DefaultRules())
	if err != nil {
		// The built-in set is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

func defaultResources() []Descriptor {
	return []Descriptor{
		{
			ID:               "opentargets",
			Name:             "OpenTargets",
			BaseURL:          "https://platform-api.opentargets.io/v3",
			Category:         Genomic,
			DataTypes:        []string{"target-disease", "target-drug", "evidence"},
			UpdateFrequency:  "weekly",
			ReliabilityScore: 0.9,
			RateLimit:        60,
			Priority:         1,
		},
		{
			ID:               "uniprot",
			Name:             "UniProt",
			BaseURL:          "https://rest.uniprot.org",
			Category:         Proteomic,
			DataTypes:        []string{"protein", "sequence", "function"},
			UpdateFrequency:  "monthly",
			ReliabilityScore: 0.95,
			RateLimit:        30,
			Priority:         2,
		},
		{
			ID:               "pubmed",
			Name:             "PubMed",
			BaseURL:          "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			Category:         Literature,
			DataTypes:        []string{"publication", "abstract", "citation"},
			UpdateFrequency:  "daily",
			ReliabilityScore: 0.85,
			RateLimit:        10,
			Priority:         3,
		},
		{
			ID:               "biorxiv",
			Name:             "BioRxiv",
			BaseURL:          "https://api.biorxiv.org/details/biorxiv",
			Category:         Literature,
			DataTypes:        []string{"preprint", "abstract", "citation"},
			UpdateFrequency:  "real-time",
			ReliabilityScore: 0.8,
			RateLimit:        20,
			Priority:         4,
			Delegated:        true,
		},
		{
			ID:               "kegg",
			Name:             "KEGG",
			BaseURL:          "https://rest.kegg.jp",
			Category:         Pathway,
			DataTypes:        []string{"pathway", "compound", "reaction"},
			UpdateFrequency:  "monthly",
			ReliabilityScore: 0.8,
			RateLimit:        20,
			Priority:         5,
		},
	}
}

// DefaultRules maps each supported query type to its base resource list.
// The selector extends these with data-need matches before ranking.
func DefaultRules() map[string][]string {
	return map[string][]string{
		"target_disease":    {"opentargets", "uniprot", "pubmed"},
		"protein_function":  {"uniprot", "pubmed"},
		"pathway_analysis":  {"kegg", "opentargets"},
		"literature_review": {"pubmed", "biorxiv"},
		"drug_target":       {"opentargets", "uniprot"},
	}
}
