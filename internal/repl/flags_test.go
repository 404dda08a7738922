package repl

import (
	"testing"

	"github.com/billmal071/finna/internal/finna"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func current() finna.SearchParameters {
	p := finna.DefaultParameters()
	p.Lookfor = []string{"cat"}
	p.Filters = []string{`format:"0/Book/"`}
	p.Page = 4
	p.Limit = 10
	return p
}

func TestParseSearchLine(t *testing.T) {
	t.Run("new words replace the query and filters", func(t *testing.T) {
		got, err := ParseSearchLine("black dog", current())
		require.NoError(t, err)
		assert.Equal(t, []string{"black", "dog"}, got.Lookfor)
		assert.Empty(t, got.Filters)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, "fi", got.Lng)
	})

	t.Run("options only refine the search", func(t *testing.T) {
		got, err := ParseSearchLine("-l 5 --lng sv", current())
		require.NoError(t, err)
		assert.Equal(t, []string{"cat"}, got.Lookfor)
		assert.Equal(t, []string{`format:"0/Book/"`}, got.Filters)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, "sv", got.Lng)
		assert.Equal(t, 1, got.Page)
	})

	t.Run("filters given with words replace the old ones", func(t *testing.T) {
		got, err := ParseSearchLine("dog -f a -f b -p 3 -t Title -s year", current())
		require.NoError(t, err)
		assert.Equal(t, []string{"dog"}, got.Lookfor)
		assert.Equal(t, []string{"a", "b"}, got.Filters)
		assert.Equal(t, 3, got.Page)
		assert.Equal(t, "Title", got.Type)
		assert.Equal(t, "year", got.Sort)
	})

	t.Run("current is not modified", func(t *testing.T) {
		cur := current()
		_, err := ParseSearchLine("dog -f x", cur)
		require.NoError(t, err)
		assert.Equal(t, current(), cur)
	})
}

func TestParseSearchLineErrors(t *testing.T) {
	lines := []string{
		"cat --bogus",
		"cat -l many",
		"cat -l 0",
		"cat --page -2",
		"cat -f",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			cur := current()
			got, err := ParseSearchLine(line, cur)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, current(), got)
		})
	}

	t.Run("empty query", func(t *testing.T) {
		_, err := ParseSearchLine("-l 5", finna.DefaultParameters())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("help", func(t *testing.T) {
		_, err := ParseSearchLine("--help", current())
		assert.ErrorIs(t, err, pflag.ErrHelp)
	})
}

func TestSearchUsage(t *testing.T) {
	usage := SearchUsage()
	for _, name := range []string{"--filter", "--limit", "--page", "--lng", "--type", "--sort"} {
		assert.Contains(t, usage, name)
	}
}
