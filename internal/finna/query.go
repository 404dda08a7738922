package finna

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// Field profiles requested from the API
var (
	// SearchFields is what the result page renderer needs
	SearchFields = []string{"id", "title", "formats", "buildings", "images", "primaryAuthors", "nonPresenterAuthors", "year"}

	// LegacySearchFields is the subset understood by older API versions
	LegacySearchFields = []string{"id", "title", "formats", "authors", "buildings", "nonPresenterAuthors"}

	// SummaryFields is used for the single record summary view
	SummaryFields = append(append([]string{}, SearchFields...), "summary", "description")

	// FullRecordFields requests the escaped MARC/XML blob
	FullRecordFields = []string{"fullRecord"}

	// RawDataFields requests the unfiltered index data
	RawDataFields = []string{"rawData"}
)

// SearchParameters describe one search request
type SearchParameters struct {
	Lookfor []string `url:"-"`
	Filters []string `url:"filter[],omitempty"`
	Type    string   `url:"type,omitempty"`
	Sort    string   `url:"sort,omitempty"`
	Page    int      `url:"page"`
	Limit   int      `url:"limit"`
	Lng     string   `url:"lng,omitempty"`
	Fields  []string `url:"field[],omitempty"`

	// Legacy selects LegacySearchFields instead of SearchFields
	Legacy bool `url:"-"`
}

// DefaultParameters returns parameters with the API defaults filled in
func DefaultParameters() SearchParameters {
	return SearchParameters{
		Type:  "AllFields",
		Page:  1,
		Limit: 20,
		Lng:   "fi",
	}
}

// LookforString joins the free-text tokens with single spaces
func (p SearchParameters) LookforString() string {
	return strings.TrimSpace(strings.Join(p.Lookfor, " "))
}

// Clone returns a deep copy so callers can modify it without touching p
func (p SearchParameters) Clone() SearchParameters {
	c := p
	c.Lookfor = append([]string(nil), p.Lookfor...)
	c.Filters = append([]string(nil), p.Filters...)
	c.Fields = append([]string(nil), p.Fields...)
	return c
}

// BuildSearchQuery encodes params into the query string of the search endpoint.
// The requested fields are always replaced with the fixed rendering profile and
// lookfor is appended last.
func BuildSearchQuery(params SearchParameters) (string, error) {
	if params.Page < 1 {
		return "", fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidQuery, params.Page)
	}
	if params.Limit < 1 {
		return "", fmt.Errorf("%w: limit must be at least 1, got %d", ErrInvalidQuery, params.Limit)
	}

	lookfor := params.LookforString()

	structured := params.Clone()
	if structured.Legacy {
		structured.Fields = append([]string(nil), LegacySearchFields...)
	} else {
		structured.Fields = append([]string(nil), SearchFields...)
	}
	structured.Lookfor = nil

	values, err := query.Values(structured)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	return values.Encode() + "&lookfor=" + url.QueryEscape(lookfor), nil
}

type recordQuery struct {
	IDs    []string `url:"id[]"`
	Fields []string `url:"field[],omitempty"`
	Lng    string   `url:"lng,omitempty"`
}

// BuildRecordQuery encodes a single record lookup requesting exactly fields
func BuildRecordQuery(id string, fields []string) (string, error) {
	return BuildRecordQueryLng(id, fields, "")
}

// BuildRecordQueryLng is BuildRecordQuery with a response language
func BuildRecordQueryLng(id string, fields []string, lng string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty record id", ErrInvalidQuery)
	}

	values, err := query.Values(recordQuery{
		IDs:    []string{id},
		Fields: fields,
		Lng:    lng,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return values.Encode(), nil
}

// SearchURL returns the web page showing the same search on the site
func SearchURL(siteBase, rawQuery string) string {
	return strings.TrimSuffix(siteBase, "/") + "/Search/Results?" + rawQuery
}

// RecordURL returns the web page of a record
func RecordURL(siteBase, id string) string {
	return strings.TrimSuffix(siteBase, "/") + "/Record/" + url.PathEscape(id)
}

// HoldingsURL returns the record page scrolled to its holdings
func HoldingsURL(siteBase, id string) string {
	return RecordURL(siteBase, id) + "#holdings"
}

// ImageURL makes an absolute URL from an image path fragment
func ImageURL(imageHost, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(imageHost, "/") + path
}

// ImageURLs collects absolute URLs for every image of every record
func ImageURLs(imageHost string, records []*Record) []string {
	var urls []string
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for _, img := range rec.Images {
			urls = append(urls, ImageURL(imageHost, img))
		}
	}
	return urls
}
