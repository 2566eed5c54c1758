// Package repo queries the program database.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mash/internal/domain/consts"

	"github.com/Masterminds/squirrel"
)

// HistoryStore records and lists download outcomes.
type HistoryStore struct {
	DB *sql.DB
}

// GetHistoryStore returns a history store with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{DB: db}
}

// HistoryRow is one recorded download outcome.
type HistoryRow struct {
	ID        int64
	URL       string
	Preset    string
	Profile   string
	Success   bool
	ErrorMsg  string
	CreatedAt time.Time
}

// RecordOutcome inserts one download outcome.
func (hs *HistoryStore) RecordOutcome(ctx context.Context, url, preset, profile string, success bool, errMsg string) error {
	query := squirrel.
		Insert(consts.DBHistory).
		Columns(
			consts.QHistURL,
			consts.QHistPreset,
			consts.QHistProfile,
			consts.QHistSuccess,
			consts.QHistError,
			consts.QHistCreatedAt,
		).
		Values(url, preset, profile, success, errMsg, time.Now()).
		RunWith(hs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to record outcome for %q: %w", url, err)
	}
	return nil
}

// RecentOutcomes returns the most recent outcomes, newest first.
func (hs *HistoryStore) RecentOutcomes(ctx context.Context, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = 20
	}

	query := squirrel.
		Select(
			consts.QHistID,
			consts.QHistURL,
			consts.QHistPreset,
			consts.QHistProfile,
			consts.QHistSuccess,
			consts.QHistError,
			consts.QHistCreatedAt,
		).
		From(consts.DBHistory).
		OrderBy(consts.QHistID + " DESC").
		Limit(uint64(limit)).
		RunWith(hs.DB)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var r HistoryRow
		if err := rows.Scan(&r.ID, &r.URL, &r.Preset, &r.Profile, &r.Success, &r.ErrorMsg, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return out, nil
}
