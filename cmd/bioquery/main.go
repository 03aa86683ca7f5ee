// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bioquery CLI, a cached,
// rate-limited access layer over public biological data APIs
// (OpenTargets, UniProt, PubMed, BioRxiv, KEGG).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/bioquery/internal/catalog"
	"github.com/meshintel/bioquery/internal/resource"
	"github.com/meshintel/bioquery/internal/secrets"
	"github.com/meshintel/bioquery/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from the secrets directory
// at startup, keyed "<resource id>-api-key".
var loadedSecrets map[string]string

// rootCmd is the base command for the bioquery CLI.
var rootCmd = &cobra.Command{
	Use:   "bioquery",
	Short: "Query public biological data APIs through a cached, rate-limited access layer",
	Long: `bioquery routes domain queries (target-disease association, protein
function, literature and preprint search, pathway lookup) to public
biological data APIs. Requests flow through a shared resource manager
that caches responses, respects per-resource rate limits, and degrades
every failure to an error note instead of aborting.

Each query run is recorded in a local SQLite history that can be listed
and searched with the history subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("secrets_dir")
		if dir == "" {
			dir = ".secrets/"
		}
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bioquery.yaml or ~/.config/bioquery/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bioquery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bioquery"))
		}
	}

	viper.SetEnvPrefix("BIOQUERY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildCatalog assembles the resource catalog: the built-in set, or the
// YAML file named by catalog_file, with secrets-supplied credentials
// injected either way.
func buildCatalog() (*catalog.Catalog, error) {
	var cat *catalog.Catalog
	if path := viper.GetString("catalog_file"); path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	} else {
		cat = catalog.Default()
	}
	cat.ApplyCredentials(loadedSecrets)
	return cat, nil
}

// clientConfig merges configured knobs over the defaults.
func clientConfig() types.ClientConfig {
	cfg := types.DefaultClientConfig()
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetInt("cache.max_size"); v > 0 {
		cfg.Cache.MaxSize = v
	}
	if v := viper.GetDuration("rate_delay_cap"); v > 0 {
		cfg.RateDelayCap = v
	}
	if v := viper.GetInt("max_retries"); v > 0 {
		cfg.MaxRetries = v
	}
	return cfg
}

func historyConfig() types.HistoryConfig {
	cfg := types.DefaultHistoryConfig()
	if v := viper.GetString("history.dir"); v != "" {
		cfg.Dir = v
	}
	if v := viper.GetInt("history.max_results"); v > 0 {
		cfg.MaxResults = v
	}
	return cfg
}

// buildManager wires the catalog and client configuration into a resource
// manager shared by all repository adapters for the run.
func buildManager() (*resource.Manager, error) {
	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}
	return resource.NewManager(cat, clientConfig()), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
