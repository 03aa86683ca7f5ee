// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/bioquery/internal/resource"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the configured external data resources",
	Long: `Resources prints the resource catalog: identifier, category, rate
limit, priority, and whether fetching is delegated to a dedicated client.

With --select, it instead shows the selection order the resource selector
would produce for a query type and optional data needs.`,
	RunE: runResources,
}

func init() {
	resourcesCmd.Flags().String("select", "", "show selection order for a query type (e.g. target_disease)")
	resourcesCmd.Flags().String("data-types", "", "comma-separated data needs for --select (e.g. protein,function)")

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}

	queryType, _ := cmd.Flags().GetString("select")
	if queryType != "" {
		var needs resource.DataNeeds
		if raw, _ := cmd.Flags().GetString("data-types"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					needs.DataTypes = append(needs.DataTypes, t)
				}
			}
		}
		ids := resource.Select(cat, queryType, needs)
		if len(ids) == 0 {
			fmt.Fprintln(os.Stdout, "No matching resources.")
			return nil
		}
		for i, id := range ids {
			d, _ := cat.Lookup(id)
			fmt.Fprintf(os.Stdout, "%d. %s (priority %d)\n", i+1, d.ID, d.Priority)
		}
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-12s  %-4s  %-8s  %s\n",
		"ID", "NAME", "CATEGORY", "RPM", "PRIORITY", "DELEGATED")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, d := range cat.Resources() {
		delegated := ""
		if d.Delegated {
			delegated = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-12s  %-4d  %-8d  %s\n",
			d.ID, d.Name, d.Category, d.RateLimit, d.Priority, delegated)
	}
	return nil
}
