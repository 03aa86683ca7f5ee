// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog describes the known external biological data resources
// and the rules for selecting among them. The catalog is loaded once at
// startup and is read-only afterwards, apart from credential injection.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Category classifies a resource by the kind of data it serves.
type Category string

const (
	Genomic    Category = "genomic"
	Proteomic  Category = "proteomic"
	Literature Category = "literature"
	Pathway    Category = "pathway"
	Disease    Category = "disease"
	Drug       Category = "drug"
)

// ErrUnknownResource is returned by Lookup for an identifier not in the
// catalog. Callers treat it as "no data from this source", never as fatal.
var ErrUnknownResource = errors.New("unknown resource identifier")

// Descriptor is the static configuration for one external resource.
type Descriptor struct {
	// ID is the unique identifier, e.g. "pubmed".
	ID string `yaml:"id"`

	// Name is the display name, e.g. "PubMed".
	Name string `yaml:"name"`

	// BaseURL is the API root all endpoints are resolved against.
	BaseURL string `yaml:"base_url"`

	// Credential, when set, is sent as an Authorization: Bearer header.
	// Normally injected from the secrets directory rather than the file.
	Credential string `yaml:"credential,omitempty"`

	Category Category `yaml:"category"`

	// DataTypes declares what the resource can answer, e.g. "protein",
	// "target-disease". Used by the selector for data-need matching.
	DataTypes []string `yaml:"data_types"`

	// UpdateFrequency is informational only, e.g. "daily", "real-time".
	UpdateFrequency string `yaml:"update_frequency"`

	// ReliabilityScore is a subjective quality score in [0,1].
	ReliabilityScore float64 `yaml:"reliability_score"`

	// RateLimit is the allowed requests per minute. Must be positive.
	RateLimit int `yaml:"rate_limit"`

	// Priority orders selection results; higher is preferred.
	Priority int `yaml:"priority"`

	// Delegated marks a resource fetched by its own dedicated client.
	// The generic resource client must never dial it.
	Delegated bool `yaml:"delegated,omitempty"`

	// InsecureSkipTLSVerify disables certificate verification for this
	// resource. Explicit opt-in only; the client logs loudly when used.
	InsecureSkipTLSVerify bool `yaml:"insecure_skip_tls_verify,omitempty"`
}

// HasDataType reports whether the resource declares the given data type.
func (d Descriptor) HasDataType(t string) bool {
	for _, dt := range d.DataTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Catalog is the validated set of resource descriptors plus the
// query-type selection rules.
type Catalog struct {
	resources []Descriptor
	index     map[string]int
	rules     map[string][]string
}

// New builds a catalog from descriptors and selection rules, validating
// that identifiers are unique, rate limits are positive, and reliability
// scores stay within [0,1]. A nil rules map falls back to DefaultRules.
func New(resources []Descriptor, rules map[string][]string) (*Catalog, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	c := &Catalog{
		resources: resources,
		index:     make(map[string]int, len(resources)),
		rules:     rules,
	}
	for i, d := range resources {
		if d.ID == "" {
			return nil, fmt.Errorf("resource %d: empty identifier", i)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("resource %q: duplicate identifier", d.ID)
		}
		if d.BaseURL == "" {
			return nil, fmt.Errorf("resource %q: empty base URL", d.ID)
		}
		if d.RateLimit <= 0 {
			return nil, fmt.Errorf("resource %q: rate limit must be positive, got %d", d.ID, d.RateLimit)
		}
		if d.ReliabilityScore < 0 || d.ReliabilityScore > 1 {
			return nil, fmt.Errorf("resource %q: reliability score %g outside [0,1]", d.ID, d.ReliabilityScore)
		}
		c.index[d.ID] = i
	}
	return c, nil
}

// catalogFile is the YAML shape accepted by Load.
type catalogFile struct {
	Resources      []Descriptor        `yaml:"resources"`
	SelectionRules map[string][]string `yaml:"selection_rules"`
}

// Load reads a catalog from a YAML file, replacing the built-in resource
// set. Selection rules default to DefaultRules when the file omits them.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	if len(f.Resources) == 0 {
		return nil, fmt.Errorf("catalog file %s declares no resources", path)
	}
	c, err := New(f.Resources, f.SelectionRules)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Lookup returns the descriptor for id or ErrUnknownResource.
func (c *Catalog) Lookup(id string) (Descriptor, error) {
	i, ok := c.index[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownResource, id)
	}
	return c.resources[i], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns all identifiers in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.resources))
	for i, d := range c.resources {
		ids[i] = d.ID
	}
	return ids
}

// Resources returns the descriptors in catalog order.
func (c *Catalog) Resources() []Descriptor {
	out := make([]Descriptor, len(c.resources))
	copy(out, c.resources)
	return out
}

// Rule returns the base resource list for a query type. Unknown query
// types yield nil, which is valid: selection then relies on data-need
// matching alone.
func (c *Catalog) Rule(queryType string) []string {
	return c.rules[queryType]
}

// SetCredential injects a credential for id, reporting whether the
// resource exists. Credentials are the only mutable part of the catalog.
func (c *Catalog) SetCredential(id, credential string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.resources[i].Credential = credential
	return true
}

// ApplyCredentials injects credentials from a secrets map keyed
// "<resource id>-api-key" (e.g. "pubmed-api-key"). Keys that do not match
// a catalog resource are ignored.
func (c *Catalog) ApplyCredentials(secrets map[string]string) {
	for _, d := range c.resources {
		if v, ok := secrets[d.ID+"-api-key"]; ok && v != "" {
			c.SetCredential(d.ID, v)
		}
	}
}
