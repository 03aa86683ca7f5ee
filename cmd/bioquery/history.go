// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/bioquery/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [search term]",
	Short: "List or search past query runs",
	Long: `History lists the most recent recorded query runs, or, given a search
term, runs a full-text match over recorded queries and results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to show (default from config)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")

	var entries []history.Entry
	if len(args) == 1 {
		entries, err = store.Search(context.Background(), args[0], limit)
	} else {
		entries, err = store.Recent(context.Background(), limit)
	}
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No history entries.")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%d  %s  %-16s  %-7s  count=%d",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Repository, e.Status, e.Count)
		if e.Error != "" {
			line += "  error=" + e.Error
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
