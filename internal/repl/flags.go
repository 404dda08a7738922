package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/billmal071/finna/internal/finna"
	"github.com/spf13/pflag"
)

// BindSearchFlags registers the search options on fs, reading into and
// defaulting from p. The root command and ParseSearchLine share it.
func BindSearchFlags(fs *pflag.FlagSet, p *finna.SearchParameters) {
	fs.StringArrayVarP(&p.Filters, "filter", "f", p.Filters, "filter expression, repeatable (e.g. format:\"0/Book/\")")
	fs.IntVarP(&p.Limit, "limit", "l", p.Limit, "results per page")
	fs.IntVarP(&p.Page, "page", "p", p.Page, "page number")
	fs.StringVar(&p.Lng, "lng", p.Lng, "response language (fi, sv, en-gb)")
	fs.StringVarP(&p.Type, "type", "t", p.Type, "search type (AllFields, Title, Author, Subject)")
	fs.StringVarP(&p.Sort, "sort", "s", p.Sort, "sort order (e.g. \"main_date_str desc\")")
}

// SearchUsage describes the options accepted on a search line
func SearchUsage() string {
	p := finna.DefaultParameters()
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	BindSearchFlags(fs, &p)
	return fs.FlagUsages()
}

// ParseSearchLine parses a search line against the current parameters.
//
// Parsing starts from a copy of current with the page reset to 1. Free-text
// words replace the query and drop the filters unless -f is given on the
// same line; a line holding only options refines the current search. On
// error current is returned unchanged.
func ParseSearchLine(line string, current finna.SearchParameters) (finna.SearchParameters, error) {
	next := current.Clone()
	next.Page = 1

	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindSearchFlags(fs, &next)

	if err := fs.Parse(strings.Fields(line)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return current, err
		}
		return current, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if words := fs.Args(); len(words) > 0 {
		next.Lookfor = words
		if !fs.Changed("filter") {
			next.Filters = nil
		}
	}

	if err := validate(next); err != nil {
		return current, err
	}
	return next, nil
}

func validate(p finna.SearchParameters) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", ErrInvalidInput)
	}
	if p.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1", ErrInvalidInput)
	}
	if p.LookforString() == "" && len(p.Filters) == 0 {
		return fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	return nil
}
