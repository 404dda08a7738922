package repl

import (
	"fmt"

	"github.com/billmal071/finna/internal/finna"
)

// Settings are the addresses the session derives links from
type Settings struct {
	SiteBaseURL string
	ImageHost   string
}

// Session is the state of one interactive run. It is owned by the loop
// goroutine; a search result replaces Params, Page and LastQuery together.
type Session struct {
	Params    finna.SearchParameters
	Page      *finna.ResultPage
	LastQuery string
	Settings  Settings
}

// NewSession creates a session with no search yet
func NewSession(params finna.SearchParameters, settings Settings) *Session {
	return &Session{Params: params, Settings: settings}
}

// HasResults reports whether a search has completed
func (s *Session) HasResults() bool {
	return s.Page != nil
}

// commit replaces the search state after a successful request
func (s *Session) commit(params finna.SearchParameters, query string, page *finna.ResultPage) {
	*s = Session{
		Params:    params,
		Page:      page,
		LastQuery: query,
		Settings:  s.Settings,
	}
}

// Lookup returns the record at a 0-based position of the current page
func (s *Session) Lookup(index int) (*finna.Record, error) {
	if s.Page == nil {
		return nil, fmt.Errorf("%w: no results yet", ErrInvalidIndex)
	}
	if index < 0 || index >= len(s.Page.Records) {
		return nil, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidIndex, index+1, len(s.Page.Records))
	}
	rec := s.Page.Records[index]
	if rec == nil || rec.ID == "" {
		return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidIndex, index+1)
	}
	return rec, nil
}
