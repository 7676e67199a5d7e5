package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taperedworks/enquiry-tracker/internal/catalog"
)

type fakeFetcher struct {
	items []catalog.Item
	err   error
}

func (f *fakeFetcher) FetchActiveProjects(_ context.Context, _ string) ([]catalog.Item, error) {
	return f.items, f.err
}

func titled(id, title string) catalog.Item {
	return catalog.Item{
		ID:   id,
		Name: "item-" + id,
		ColumnValues: []catalog.ColumnValue{
			{ID: "text3__1", Text: title},
		},
	}
}

func TestFindMatchesRanking(t *testing.T) {
	fetcher := &fakeFetcher{items: []catalog.Item{
		titled("1", "Riverside Skool"),
		titled("2", "Oak Lane Depot"),
		titled("3", "Riverside School"),
	}}
	m := NewMatcher(fetcher, 0.55, "2021-01-01", nil)

	result, err := m.FindMatches(context.Background(), "Riverside School")
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "3", result.Matches[0].ID)
	assert.InDelta(t, 1.0, result.Matches[0].Similarity, 1e-9)
	assert.Equal(t, "1", result.Matches[1].ID)
	assert.InDelta(t, 0.875, result.Matches[1].Similarity, 1e-9)

	assert.True(t, result.Exists)
	require.NotNil(t, result.Best)
	assert.Equal(t, result.Matches[0], *result.Best)
}

func TestFindMatchesTiesKeepCatalogOrder(t *testing.T) {
	fetcher := &fakeFetcher{items: []catalog.Item{
		titled("a", "Harbour View"),
		titled("b", "Harbour View"),
		titled("c", "Harbour View"),
	}}
	m := NewMatcher(fetcher, 0.55, "", nil)

	result, err := m.FindMatches(context.Background(), "Harbour View")
	require.NoError(t, err)

	require.Len(t, result.Matches, 3)
	assert.Equal(t, "a", result.Matches[0].ID)
	assert.Equal(t, "b", result.Matches[1].ID)
	assert.Equal(t, "c", result.Matches[2].ID)
}

func TestFindMatchesThresholdFilters(t *testing.T) {
	fetcher := &fakeFetcher{items: []catalog.Item{
		titled("1", "Riverside Skool"), // 0.875
	}}
	m := NewMatcher(fetcher, 0.9, "", nil)

	result, err := m.FindMatches(context.Background(), "Riverside School")
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.Empty(t, result.Matches)
	assert.Nil(t, result.Best)
}

func TestFindMatchesTitleFallsBackToName(t *testing.T) {
	fetcher := &fakeFetcher{items: []catalog.Item{
		{ID: "1", Name: "Riverside School"},
	}}
	m := NewMatcher(fetcher, 0.55, "", nil)

	result, err := m.FindMatches(context.Background(), "Riverside School")
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Riverside School", result.Matches[0].Title)
}

func TestFindMatchesFetchErrorPropagates(t *testing.T) {
	boom := errors.New("catalog down")
	m := NewMatcher(&fakeFetcher{err: boom}, 0.55, "", nil)

	result, err := m.FindMatches(context.Background(), "anything")
	assert.ErrorIs(t, err, boom)
	assert.False(t, result.Exists)
	assert.Empty(t, result.Matches)
	assert.Nil(t, result.Best)
}
