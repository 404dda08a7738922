package db

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrNotInitialized is returned when the database has not been opened
var ErrNotInitialized = errors.New("database not initialized")

// SearchHistory represents a saved search
type SearchHistory struct {
	ID          int64
	Query       string
	ResultCount int
	Filters     SearchFilters
	CreatedAt   time.Time
}

// SearchFilters stores the parameters used in a search besides the query text
type SearchFilters struct {
	Filters []string `json:"filters,omitempty"`
	Type    string   `json:"type,omitempty"`
	Lng     string   `json:"lng,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Sort    string   `json:"sort,omitempty"`
}

// String returns a human-readable representation of the parameters
func (f SearchFilters) String() string {
	var parts []string
	if len(f.Filters) > 0 {
		parts = append(parts, "filter="+strings.Join(f.Filters, ","))
	}
	if f.Type != "" && f.Type != "AllFields" {
		parts = append(parts, "type="+f.Type)
	}
	if f.Lng != "" {
		parts = append(parts, "lng="+f.Lng)
	}
	return strings.Join(parts, ", ")
}

// AddSearchHistory adds a search to history
func AddSearchHistory(query string, resultCount int, filters SearchFilters) error {
	if database == nil {
		return ErrNotInitialized
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		filtersJSON = []byte("{}")
	}

	_, err = database.Exec(`
		INSERT INTO search_history (query, result_count, filters)
		VALUES (?, ?, ?)`,
		query, resultCount, string(filtersJSON),
	)
	return err
}

// GetSearchHistory retrieves recent search history
func GetSearchHistory(limit int) ([]*SearchHistory, error) {
	return querySearchHistory(`
		SELECT id, query, result_count, filters, created_at
		FROM search_history
		ORDER BY id DESC
		LIMIT ?`, limit)
}

// GetUniqueSearchHistory retrieves unique recent searches (no duplicates)
func GetUniqueSearchHistory(limit int) ([]*SearchHistory, error) {
	return querySearchHistory(`
		SELECT id, query, result_count, filters, created_at
		FROM search_history
		WHERE id IN (
			SELECT MAX(id) FROM search_history GROUP BY query
		)
		ORDER BY id DESC
		LIMIT ?`, limit)
}

func querySearchHistory(stmt string, limit int) ([]*SearchHistory, error) {
	if database == nil {
		return nil, ErrNotInitialized
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.Query(stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*SearchHistory
	for rows.Next() {
		h := &SearchHistory{}
		var filtersJSON string
		err := rows.Scan(&h.ID, &h.Query, &h.ResultCount, &filtersJSON, &h.CreatedAt)
		if err != nil {
			return nil, err
		}

		if filtersJSON != "" {
			json.Unmarshal([]byte(filtersJSON), &h.Filters)
		}

		history = append(history, h)
	}
	return history, rows.Err()
}

// ClearSearchHistory removes all search history
func ClearSearchHistory() error {
	if database == nil {
		return ErrNotInitialized
	}
	_, err := database.Exec(`DELETE FROM search_history`)
	return err
}

// DeleteSearchHistoryOlderThan removes history older than the given duration
func DeleteSearchHistoryOlderThan(d time.Duration) error {
	if database == nil {
		return ErrNotInitialized
	}
	cutoff := time.Now().UTC().Add(-d)
	_, err := database.Exec(`DELETE FROM search_history WHERE created_at < ?`, cutoff.Format("2006-01-02 15:04:05"))
	return err
}
