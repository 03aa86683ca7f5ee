// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/bioquery/internal/history"
	"github.com/meshintel/bioquery/internal/repo"
	"github.com/meshintel/bioquery/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a domain query against the biological data APIs",
	Long: `Query routes a domain question to the matching repository adapter and
prints the standard response envelope as JSON.

Query types and the keys they read:
  target_disease    --target and/or --disease
  protein_function  --protein
  literature        --query (PubMed)
  preprints         --query, optionally --from/--to/--cursor/--limit (BioRxiv)
  opentargets       --query or --target/--disease
  pathway           --query (KEGG)`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("type", "literature", "query type: target_disease, protein_function, literature, preprints, opentargets, pathway")
	queryCmd.Flags().String("query", "", "free-text query term")
	queryCmd.Flags().String("target", "", "target identifier (e.g. ENSG00000157764)")
	queryCmd.Flags().String("disease", "", "disease identifier (e.g. EFO_0000305)")
	queryCmd.Flags().String("protein", "", "protein accession (e.g. P04637)")
	queryCmd.Flags().String("from", "", "preprint date range start (YYYY-MM-DD)")
	queryCmd.Flags().String("to", "", "preprint date range end (YYYY-MM-DD)")
	queryCmd.Flags().Int("cursor", 0, "preprint pagination cursor")
	queryCmd.Flags().Int("limit", 10, "preprint page size")
	queryCmd.Flags().Bool("no-record", false, "do not record this run in the history store")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	queryType, _ := cmd.Flags().GetString("type")

	repository, err := buildRepository(queryType)
	if err != nil {
		return err
	}

	params := envelopeFromFlags(cmd)
	env := repository.Query(context.Background(), params)

	noRecord, _ := cmd.Flags().GetBool("no-record")
	if !noRecord {
		if err := recordRun(repository.Name(), env); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording history: %v\n", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// buildRepository maps a query type to its adapter, sharing one resource
// manager across the generic adapters.
func buildRepository(queryType string) (repo.Repository, error) {
	cfg := clientConfig()

	if queryType == "preprints" {
		return &repo.BioRxiv{
			Client:     &http.Client{Timeout: cfg.Timeout},
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		}, nil
	}

	mgr, err := buildManager()
	if err != nil {
		return nil, err
	}
	switch queryType {
	case "target_disease":
		return &repo.TargetDisease{Manager: mgr}, nil
	case "protein_function":
		return &repo.ProteinFunction{Manager: mgr}, nil
	case "literature":
		return &repo.PubMed{Manager: mgr}, nil
	case "opentargets":
		return &repo.OpenTargets{Manager: mgr}, nil
	case "pathway":
		return &repo.PathwayAnalysis{Manager: mgr}, nil
	default:
		return nil, fmt.Errorf("unknown query type %q", queryType)
	}
}

// envelopeFromFlags collects the non-empty flag values into a query
// envelope. Keys stay stringly typed; each adapter documents what it reads.
func envelopeFromFlags(cmd *cobra.Command) types.QueryEnvelope {
	params := types.QueryEnvelope{}
	for _, key := range []string{"query", "target", "disease", "from", "to"} {
		if v, _ := cmd.Flags().GetString(key); v != "" {
			params[key] = v
		}
	}
	if v, _ := cmd.Flags().GetString("protein"); v != "" {
		params["protein_id"] = v
	}
	if v, _ := cmd.Flags().GetInt("cursor"); v > 0 {
		params["cursor"] = v
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		params["limit"] = v
	}
	return params
}

func recordRun(repository string, env types.ResponseEnvelope) error {
	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(context.Background(), repository, env)
}
