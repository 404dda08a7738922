package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitPath(filepath.Join(t.TempDir(), "nested", "finna.db")))
	t.Cleanup(func() { Close() })
}

func TestNotInitialized(t *testing.T) {
	Close()

	assert.ErrorIs(t, AppendHistory([]string{"x"}), ErrNotInitialized)
	assert.ErrorIs(t, AddSearchHistory("x", 1, SearchFilters{}), ErrNotInitialized)
	_, err := GetHistory(10)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAppendAndGetHistory(t *testing.T) {
	openTestDB(t)

	require.NoError(t, AppendHistory([]string{"cat", ":n", ":v 3"}))
	require.NoError(t, AppendHistory(nil))
	require.NoError(t, AppendHistory([]string{":q"}))

	lines, err := GetHistory(10)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "cat", lines[0].Line)
	assert.Equal(t, ":q", lines[3].Line)

	lines, err = GetHistory(2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, ":v 3", lines[0].Line, "limit keeps the most recent lines in order")
	assert.Equal(t, ":q", lines[1].Line)

	require.NoError(t, ClearHistory())
	lines, err = GetHistory(10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSearchHistory(t *testing.T) {
	openTestDB(t)

	store := Store{}
	require.NoError(t, store.RecordSearch("cat", 120, SearchFilters{Lng: "fi", Limit: 20}))
	require.NoError(t, store.RecordSearch("dog", 7, SearchFilters{Filters: []string{`format:"0/Book/"`}}))
	require.NoError(t, store.RecordSearch("cat", 121, SearchFilters{Lng: "sv", Limit: 5}))

	all, err := GetSearchHistory(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unique, err := GetUniqueSearchHistory(10)
	require.NoError(t, err)
	require.Len(t, unique, 2)
	assert.Equal(t, "cat", unique[0].Query)
	assert.Equal(t, 121, unique[0].ResultCount)
	assert.Equal(t, "sv", unique[0].Filters.Lng)
	assert.Equal(t, 5, unique[0].Filters.Limit)
	assert.Equal(t, "dog", unique[1].Query)
	assert.Equal(t, []string{`format:"0/Book/"`}, unique[1].Filters.Filters)
	assert.False(t, unique[1].CreatedAt.IsZero())

	require.NoError(t, DeleteSearchHistoryOlderThan(24*time.Hour))
	all, err = GetSearchHistory(10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "fresh entries are kept")

	require.NoError(t, ClearSearchHistory())
	all, err = GetSearchHistory(10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSearchFiltersString(t *testing.T) {
	assert.Equal(t, "", SearchFilters{Type: "AllFields"}.String())
	assert.Equal(t, `filter=a,b, type=Title, lng=en-gb`,
		SearchFilters{Filters: []string{"a", "b"}, Type: "Title", Lng: "en-gb"}.String())
}

func TestStoreAppendLines(t *testing.T) {
	openTestDB(t)

	require.NoError(t, Store{}.AppendLines([]string{"a", "b"}))
	lines, err := GetHistory(0)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
