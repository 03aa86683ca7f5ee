// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meshintel/bioquery/internal/catalog"
	"github.com/meshintel/bioquery/pkg/types"
)

// Manager owns the shared fetch state — cache, rate limiter, HTTP clients
// — and performs the actual network calls. One Manager instance is passed
// by reference to every repository adapter; there is no process-global
// state. Cache and limiter are mutex-guarded, so concurrent use is safe,
// though the intended model is a single logical caller issuing sequential
// fetches.
type Manager struct {
	catalog  *catalog.Catalog
	cache    *Cache
	limiter  *RateLimiter
	client   *http.Client
	insecure *http.Client
	cfg      types.ClientConfig
	log      *logrus.Logger

	sleep func(time.Duration) // test hook
}

// NewManager builds a Manager over the given catalog. The insecure client
// exists only for resources that explicitly opt into skipping TLS
// verification; every use is logged as a warning.
func NewManager(cat *catalog.Catalog, cfg types.ClientConfig) *Manager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultClientConfig().Timeout
	}
	if cfg.RateDelayCap <= 0 {
		cfg.RateDelayCap = types.DefaultClientConfig().RateDelayCap
	}
	return &Manager{
		catalog: cat,
		cache:   NewCache(cfg.Cache),
		limiter: NewRateLimiter(),
		client:  &http.Client{Timeout: cfg.Timeout},
		insecure: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		cfg:   cfg,
		log:   logrus.StandardLogger(),
		sleep: time.Sleep,
	}
}

// SetLogger replaces the diagnostic logger. Mainly for tests.
func (m *Manager) SetLogger(l *logrus.Logger) { m.log = l }

// Catalog returns the catalog the manager was built over.
func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

// Select is a convenience wrapper over the package-level selector.
func (m *Manager) Select(queryType string, needs DataNeeds) []string {
	return Select(m.catalog, queryType, needs)
}

// Fetch performs one GET against {base_url}/{endpoint}?{params} for the
// named resource, consulting the cache and the rate limiter on the way.
//
// Fetch never returns an error: unknown resources, transport failures,
// non-200 statuses, and undecodable bodies all degrade to an empty
// payload with a warning log. A failed attempt still records against the
// rate budget. Delegated resources short-circuit to an empty payload
// without touching cache, limiter, or network.
func (m *Manager) Fetch(ctx context.Context, resourceID, endpoint string, params url.Values) map[string]any {
	desc, err := m.catalog.Lookup(resourceID)
	if err != nil {
		m.log.WithField("resource", resourceID).Warn("fetch: unknown resource")
		return map[string]any{}
	}
	if desc.Delegated {
		return map[string]any{}
	}

	key := CacheKey(resourceID, endpoint, params)
	if payload, ok := m.cache.Get(key); ok {
		return payload
	}

	if wait := m.limiter.Remaining(resourceID, desc.RateLimit); wait > 0 {
		if wait > m.cfg.RateDelayCap {
			wait = m.cfg.RateDelayCap
		}
		m.sleep(wait)
	}

	payload, ok := m.doRequest(ctx, desc, endpoint, params)
	m.limiter.Record(resourceID, time.Now())
	if !ok {
		return map[string]any{}
	}

	m.cache.Put(key, payload)
	return payload
}

// FetchMany calls Fetch once per identifier, sequentially and in the
// given order, collecting payloads into a map. Identifiers missing from
// the catalog are skipped; a failure on one resource never prevents
// attempts on the others.
func (m *Manager) FetchMany(ctx context.Context, resourceIDs []string, endpoint string, params url.Values) map[string]map[string]any {
	results := make(map[string]map[string]any)
	for _, id := range resourceIDs {
		if !m.catalog.Has(id) {
			continue
		}
		results[id] = m.Fetch(ctx, id, endpoint, params)
	}
	return results
}

func (m *Manager) doRequest(ctx context.Context, desc catalog.Descriptor, endpoint string, params url.Values) (map[string]any, bool) {
	reqURL := strings.TrimRight(desc.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if enc := params.Encode(); enc != "" {
		reqURL += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		m.log.WithFields(logrus.Fields{"resource": desc.ID, "endpoint": endpoint}).
			WithError(err).Warn("fetch: building request")
		return nil, false
	}
	req.Header.Set("Accept", "application/json")
	if m.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", m.cfg.UserAgent)
	}
	if desc.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+desc.Credential)
	}

	client := m.client
	if desc.InsecureSkipTLSVerify {
		m.log.WithField("resource", desc.ID).
			Warn("fetch: TLS certificate verification DISABLED by catalog override")
		client = m.insecure
	}

	resp, err := client.Do(req)
	if err != nil {
		m.log.WithFields(logrus.Fields{"resource": desc.ID, "endpoint": endpoint}).
			WithError(err).Warn("fetch: request failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.WithFields(logrus.Fields{
			"resource": desc.ID,
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Warn("fetch: non-200 response")
		return nil, false
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		m.log.WithFields(logrus.Fields{"resource": desc.ID, "endpoint": endpoint}).
			WithError(err).Warn("fetch: decoding response")
		return nil, false
	}
	return payload, true
}
