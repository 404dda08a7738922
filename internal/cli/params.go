package cli

import (
	"strings"

	"github.com/billmal071/finna/internal/config"
	"github.com/billmal071/finna/internal/db"
	"github.com/billmal071/finna/internal/finna"
	"github.com/spf13/pflag"
)

// defaultParameters returns the configured search defaults
func defaultParameters(cfg *config.Config) finna.SearchParameters {
	p := finna.DefaultParameters()
	if cfg.Search.Limit > 0 {
		p.Limit = cfg.Search.Limit
	}
	if cfg.Search.Lng != "" {
		p.Lng = cfg.Search.Lng
	}
	if cfg.Search.Type != "" {
		p.Type = cfg.Search.Type
	}
	p.Sort = cfg.Search.Sort
	p.Legacy = cfg.API.LegacyFields
	return p
}

// searchParameters merges the options given on the command line into the
// configured defaults. args become the free-text query.
func searchParameters(cfg *config.Config, fs *pflag.FlagSet, flags finna.SearchParameters, args []string) finna.SearchParameters {
	p := defaultParameters(cfg)
	if fs.Changed("filter") {
		p.Filters = append([]string(nil), flags.Filters...)
	}
	if fs.Changed("limit") {
		p.Limit = flags.Limit
	}
	if fs.Changed("page") {
		p.Page = flags.Page
	}
	if fs.Changed("lng") {
		p.Lng = flags.Lng
	}
	if fs.Changed("type") {
		p.Type = flags.Type
	}
	if fs.Changed("sort") {
		p.Sort = flags.Sort
	}
	p.Lookfor = append([]string(nil), args...)
	return p
}

// historyParameters rebuilds the parameters of a saved search
func historyParameters(cfg *config.Config, h *db.SearchHistory) finna.SearchParameters {
	p := defaultParameters(cfg)
	p.Lookfor = strings.Fields(h.Query)
	p.Filters = append([]string(nil), h.Filters.Filters...)
	if h.Filters.Type != "" {
		p.Type = h.Filters.Type
	}
	if h.Filters.Lng != "" {
		p.Lng = h.Filters.Lng
	}
	if h.Filters.Limit > 0 {
		p.Limit = h.Filters.Limit
	}
	if h.Filters.Sort != "" {
		p.Sort = h.Filters.Sort
	}
	return p
}
