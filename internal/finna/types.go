package finna

import (
	"context"
	"errors"
)

var (
	// ErrInvalidQuery indicates the search parameters could not be encoded
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNetwork indicates a transport failure or a non-success response
	ErrNetwork = errors.New("network error")
	// ErrParse indicates a response body that is not the expected shape
	ErrParse = errors.New("parse error")
)

// TranslatedString is a machine code with its localized label
type TranslatedString struct {
	Value      string `json:"value"`
	Translated string `json:"translated"`
}

// Author is a secondary author with an optional role
type Author struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// ResultPage is one page of search results
type ResultPage struct {
	Records     []*Record `json:"records"`
	ResultCount int       `json:"resultCount"`
}

// Gateway defines the interface for Finna API access
type Gateway interface {
	// Search fetches one result page for an encoded search query
	Search(ctx context.Context, query string) (*ResultPage, error)

	// Record fetches exactly one record for an encoded record query
	Record(ctx context.Context, query string) (*Record, error)
}
