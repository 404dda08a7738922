package db

import "time"

// HistoryLine is one line entered in the interactive prompt
type HistoryLine struct {
	ID        int64
	Line      string
	CreatedAt time.Time
}

// AppendHistory stores lines in one transaction, preserving their order
func AppendHistory(lines []string) error {
	if database == nil {
		return ErrNotInitialized
	}
	if len(lines) == 0 {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO repl_history (line) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.Exec(line); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetHistory returns the most recent lines, oldest first
func GetHistory(limit int) ([]*HistoryLine, error) {
	if database == nil {
		return nil, ErrNotInitialized
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := database.Query(`
		SELECT id, line, created_at FROM (
			SELECT id, line, created_at FROM repl_history
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*HistoryLine
	for rows.Next() {
		h := &HistoryLine{}
		if err := rows.Scan(&h.ID, &h.Line, &h.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, h)
	}
	return lines, rows.Err()
}

// ClearHistory removes all prompt lines
func ClearHistory() error {
	if database == nil {
		return ErrNotInitialized
	}
	_, err := database.Exec(`DELETE FROM repl_history`)
	return err
}

// Store adapts the package-level history functions to the REPL's history interface
type Store struct{}

// AppendLines implements the REPL history sink
func (Store) AppendLines(lines []string) error {
	return AppendHistory(lines)
}

// RecordSearch implements the REPL search recorder
func (Store) RecordSearch(query string, resultCount int, filters SearchFilters) error {
	return AddSearchHistory(query, resultCount, filters)
}
