package finna

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL+"/api/v1/", WithTimeout(5*time.Second), WithUserAgent("finna-test"))
}

func TestSearch(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resultCount": 1234,
			"records": [
				{"id": "a.1", "title": "First"},
				null,
				{"id": "a.2", "title": "Second"}
			],
			"status": "OK"
		}`))
	})

	page, err := client.Search(context.Background(), "limit=2&lookfor=cat")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/search", gotPath)
	assert.Equal(t, "limit=2&lookfor=cat", gotQuery)
	assert.Equal(t, "finna-test", gotUA)
	assert.Equal(t, 1234, page.ResultCount)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "a.1", page.Records[0].ID)
	assert.Equal(t, "a.2", page.Records[1].ID)
}

func TestSearchNoRecords(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultCount": 0, "status": "OK"}`))
	})

	page, err := client.Search(context.Background(), "lookfor=zzz")
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Equal(t, 0, page.ResultCount)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrNetwork},
		{"bad request", http.StatusBadRequest, `{"status":"ERROR","statusMessage":"Invalid parameter"}`, ErrNetwork},
		{"api status error", http.StatusOK, `{"status":"ERROR","statusMessage":"Invalid parameter"}`, ErrNetwork},
		{"malformed json", http.StatusOK, `{"records": [`, ErrParse},
		{"wrong shape", http.StatusOK, `{"records": {"id": "a"}}`, ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			page, err := client.Search(context.Background(), "lookfor=x")
			assert.Nil(t, page)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewAPIClient(url)
	_, err := client.Search(context.Background(), "lookfor=x")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestSearchCancelledContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "lookfor=x")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestRecord(t *testing.T) {
	var gotPath string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"resultCount": 1, "records": [{"id": "a.1", "fullRecord": "<record/>"}], "status": "OK"}`))
	})

	rec, err := client.Record(context.Background(), "id%5B%5D=a.1&field%5B%5D=fullRecord")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/record", gotPath)
	assert.Equal(t, "a.1", rec.ID)
	assert.Equal(t, "<record/>", rec.ExtraString("fullRecord"))
}

func TestRecordNotExactlyOne(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultCount": 0, "records": [], "status": "OK"}`))
	})

	rec, err := client.Record(context.Background(), "id%5B%5D=missing")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrParse)
}

func TestProgressOutput(t *testing.T) {
	var progress bytes.Buffer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultCount": 1, "records": [{"id": "a.1"}]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewAPIClient(srv.URL, WithProgress(&progress))
	page, err := client.Search(context.Background(), "lookfor=x")
	require.NoError(t, err)
	assert.Len(t, page.Records, 1)
}
