// Package repository contains the SQLite-backed persistence for leads,
// submitted quotations and quotation drafts.
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DraftRepository stores quotation draft envelopes, one row per trip id.
// It implements draft.Store: writes are full-snapshot overwrites and a
// missing draft reads back as (nil, nil).
type DraftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *sql.DB, logger *zap.Logger) *DraftRepository {
	return &DraftRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the stored envelope for a trip id, or (nil, nil) when none
// exists.
func (r *DraftRepository) Get(tripID string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRow(
		"SELECT payload FROM quotation_drafts WHERE trip_id = ?", tripID,
	).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to read draft", zap.String("trip_id", tripID), zap.Error(err))
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return payload, nil
}

// Set overwrites the draft for a trip id.
func (r *DraftRepository) Set(tripID string, raw []byte) error {
	query := `
		INSERT INTO quotation_drafts (trip_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(trip_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, tripID, raw, time.Now()); err != nil {
		r.logger.Error("Failed to write draft", zap.String("trip_id", tripID), zap.Error(err))
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// Delete removes the draft for a trip id. Deleting a missing draft is not
// an error.
func (r *DraftRepository) Delete(tripID string) error {
	if _, err := r.db.Exec("DELETE FROM quotation_drafts WHERE trip_id = ?", tripID); err != nil {
		r.logger.Error("Failed to delete draft", zap.String("trip_id", tripID), zap.Error(err))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
