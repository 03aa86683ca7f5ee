// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meshintel/bioquery/internal/catalog"
	"github.com/meshintel/bioquery/pkg/types"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testClientConfig() types.ClientConfig {
	cfg := types.DefaultClientConfig()
	cfg.Timeout = 5 * time.Second
	return cfg
}

// newTestManager builds a manager over the given descriptors with logging
// silenced and sleeping captured instead of performed.
func newTestManager(t *testing.T, descriptors []catalog.Descriptor) (*Manager, *[]time.Duration) {
	t.Helper()
	cat, err := catalog.New(descriptors, map[string][]string{})
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(cat, testClientConfig())
	m.SetLogger(quietLogger())

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }
	return m, &slept
}

func jsonHandler(calls *int32, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	})
}

func descriptor(id, baseURL string) catalog.Descriptor {
	return catalog.Descriptor{
		ID:        id,
		Name:      id,
		BaseURL:   baseURL,
		Category:  catalog.Literature,
		DataTypes: []string{"abstract"},
		RateLimit: 600,
		Priority:  1,
	}
}

func TestFetchCacheSuppressesNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(jsonHandler(&calls, `{"ok": true}`))
	defer ts.Close()

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", ts.URL)})
	params := url.Values{"term": {"tp53"}}

	first := m.Fetch(context.Background(), "pubmed", "esearch.fcgi", params)
	second := m.Fetch(context.Background(), "pubmed", "esearch.fcgi", params)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}
	if first["ok"] != true || second["ok"] != true {
		t.Errorf("payloads = %v, %v", first, second)
	}
}

func TestFetchDistinctParamsMissCache(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(jsonHandler(&calls, `{}`))
	defer ts.Close()

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", ts.URL)})

	m.Fetch(context.Background(), "pubmed", "esearch.fcgi", url.Values{"term": {"tp53"}})
	m.Fetch(context.Background(), "pubmed", "esearch.fcgi", url.Values{"term": {"brca1"}})

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestFetchDelegatedShortCircuit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(jsonHandler(&calls, `{"collection": []}`))
	defer ts.Close()

	d := descriptor("biorxiv", ts.URL)
	d.Delegated = true
	m, slept := newTestManager(t, []catalog.Descriptor{d})

	payload := m.Fetch(context.Background(), "biorxiv", "anything", nil)

	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("delegated fetch must not touch the network")
	}
	if m.cache.Len() != 0 {
		t.Error("delegated fetch must not touch the cache")
	}
	if len(m.limiter.last) != 0 {
		t.Error("delegated fetch must not touch the rate limiter")
	}
	if len(*slept) != 0 {
		t.Error("delegated fetch must not sleep")
	}
}

func TestFetchUnknownResource(t *testing.T) {
	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", "https://unused.example")})

	payload := m.Fetch(context.Background(), "ghost", "e", nil)
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
}

func TestFetchNon200DegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", ts.URL)})

	payload := m.Fetch(context.Background(), "pubmed", "esearch.fcgi", nil)
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
	if m.cache.Len() != 0 {
		t.Error("failed fetch must not populate the cache")
	}
	// A failed attempt still spends rate budget.
	if _, tracked := m.limiter.last["pubmed"]; !tracked {
		t.Error("failed fetch must still record the rate-limiter timestamp")
	}
}

func TestFetchUndecodableBodyDegradesToEmpty(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(jsonHandler(&calls, `this is not json`))
	defer ts.Close()

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("kegg", ts.URL)})

	payload := m.Fetch(context.Background(), "kegg", "find/pathway/glycolysis", nil)
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
}

func TestFetchTransportErrorDegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(jsonHandler(new(int32), `{}`))
	ts.Close() // connection refused from here on

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", ts.URL)})

	payload := m.Fetch(context.Background(), "pubmed", "esearch.fcgi", nil)
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
}

func TestFetchHeaders(t *testing.T) {
	var gotAccept, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{}`)
	}))
	defer ts.Close()

	withCred := descriptor("opentargets", ts.URL)
	withCred.Credential = "tok-123"
	noCred := descriptor("uniprot", ts.URL)
	m, _ := newTestManager(t, []catalog.Descriptor{withCred, noCred})

	m.Fetch(context.Background(), "opentargets", "public/search", nil)
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}

	m.Fetch(context.Background(), "uniprot", "uniprotkb/search", nil)
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty without a credential", gotAuth)
	}
}

func TestFetchRateLimitSleepsThenProceeds(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(jsonHandler(&calls, `{}`))
	defer ts.Close()

	d := descriptor("pubmed", ts.URL)
	d.RateLimit = 60 // 1s minimum interval
	m, slept := newTestManager(t, []catalog.Descriptor{d})

	m.Fetch(context.Background(), "pubmed", "esearch.fcgi", url.Values{"term": {"a"}})
	m.Fetch(context.Background(), "pubmed", "esearch.fcgi", url.Values{"term": {"b"}})

	if len(*slept) != 1 {
		t.Fatalf("sleeps = %v, want exactly one", *slept)
	}
	if (*slept)[0] <= 0 || (*slept)[0] > m.cfg.RateDelayCap {
		t.Errorf("sleep = %v, want within (0, %v]", (*slept)[0], m.cfg.RateDelayCap)
	}
	// The limiter is advisory: the second request still went out.
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestFetchManyIsolation(t *testing.T) {
	var calls int32
	good := httptest.NewServer(jsonHandler(&calls, `{"data": [1, 2]}`))
	defer good.Close()
	bad := httptest.NewServer(jsonHandler(new(int32), `{}`))
	bad.Close() // transport error for this resource

	m, _ := newTestManager(t, []catalog.Descriptor{
		descriptor("pubmed", bad.URL),
		descriptor("opentargets", good.URL),
	})

	results := m.FetchMany(context.Background(), []string{"pubmed", "opentargets"}, "e", nil)

	if len(results) != 2 {
		t.Fatalf("results = %v, want entries for both resources", results)
	}
	if len(results["pubmed"]) != 0 {
		t.Errorf("pubmed payload = %v, want empty", results["pubmed"])
	}
	if data, ok := results["opentargets"]["data"].([]any); !ok || len(data) != 2 {
		t.Errorf("opentargets payload = %v", results["opentargets"])
	}
}

func TestFetchManySkipsUnknownIDs(t *testing.T) {
	ts := httptest.NewServer(jsonHandler(new(int32), `{}`))
	defer ts.Close()

	m, _ := newTestManager(t, []catalog.Descriptor{descriptor("pubmed", ts.URL)})

	results := m.FetchMany(context.Background(), []string{"pubmed", "ghost"}, "e", nil)
	if len(results) != 1 {
		t.Fatalf("results = %v, want only pubmed", results)
	}
	if _, ok := results["ghost"]; ok {
		t.Error("unknown resource must not appear in results")
	}
}
