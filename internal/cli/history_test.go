package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/billmal071/finna/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSearchHistory(t *testing.T) {
	require.NoError(t, db.InitPath(filepath.Join(t.TempDir(), "finna.db")))
	t.Cleanup(func() { db.Close() })

	var out bytes.Buffer
	require.NoError(t, writeSearchHistory(&out, 10, false))
	assert.Contains(t, out.String(), "No search history.")
	assert.Contains(t, out.String(), "history.enabled")

	store := db.Store{}
	require.NoError(t, store.RecordSearch("cat", 3, db.SearchFilters{Lng: "sv"}))
	require.NoError(t, store.RecordSearch("cat", 4, db.SearchFilters{}))

	out.Reset()
	require.NoError(t, writeSearchHistory(&out, 10, false))
	assert.Contains(t, out.String(), "Recent Searches (1):")
	assert.Contains(t, out.String(), `"cat" (4 results)`)

	out.Reset()
	require.NoError(t, writeSearchHistory(&out, 10, true))
	assert.Contains(t, out.String(), "Recent Searches (2):")
	assert.Contains(t, out.String(), `"cat" (3 results)`)
	assert.Contains(t, out.String(), "Parameters: lng=sv")
}
