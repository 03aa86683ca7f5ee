// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/bioquery/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Dir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "pubmed", types.NewResponseWithCount(
		types.QueryEnvelope{"query": "tp53"}, map[string]any{"esearchresult": map[string]any{}}, 12)))
	require.NoError(t, s.Record(ctx, "biorxiv", types.ErrorResponse(
		types.QueryEnvelope{"query": "crispr"}, "biorxiv: API returned HTTP 502")))

	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "biorxiv", entries[0].Repository)
	assert.Equal(t, types.StatusError, entries[0].Status)
	assert.Equal(t, "biorxiv: API returned HTTP 502", entries[0].Error)

	assert.Equal(t, "pubmed", entries[1].Repository)
	assert.Equal(t, types.StatusSuccess, entries[1].Status)
	assert.Equal(t, 12, entries[1].Count)
	assert.Empty(t, entries[1].Error)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, "pubmed", types.NewResponse(
			types.QueryEnvelope{"query": "tp53"}, []any{})))
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "pubmed", types.NewResponse(
		types.QueryEnvelope{"query": "tp53 apoptosis"}, []any{})))
	require.NoError(t, s.Record(ctx, "pathway_analysis", types.NewResponse(
		types.QueryEnvelope{"query": "glycolysis"}, []any{})))

	entries, err := s.Search(ctx, "glycolysis", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pathway_analysis", entries[0].Repository)

	// Quotes in the term must not break the FTS query.
	entries, err = s.Search(ctx, `"glycolysis"`, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = s.Search(ctx, "nonexistent-term", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
