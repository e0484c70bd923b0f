package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/models"
)

// QuotationRepository stores submitted quotations.
type QuotationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *sql.DB, logger *zap.Logger) *QuotationRepository {
	return &QuotationRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a submitted quotation.
func (r *QuotationRepository) Create(q *models.Quotation) error {
	query := `
		INSERT INTO quotations (
			trip_id, lead_id, client_name, destination, travel_date,
			days, total_cost, payload, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if q.SubmittedAt.IsZero() {
		q.SubmittedAt = time.Now()
	}

	result, err := r.db.Exec(query,
		q.TripID,
		q.LeadID,
		q.ClientName,
		q.Destination,
		q.TravelDate,
		q.Days,
		q.TotalCost,
		q.Payload,
		q.SubmittedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create quotation", zap.String("trip_id", q.TripID), zap.Error(err))
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	q.ID = id
	return nil
}

// GetByTripID retrieves a submitted quotation, (nil, nil) when absent.
func (r *QuotationRepository) GetByTripID(tripID string) (*models.Quotation, error) {
	query := `
		SELECT id, trip_id, lead_id, client_name, destination, travel_date,
			days, total_cost, payload, submitted_at
		FROM quotations
		WHERE trip_id = ?
	`

	var q models.Quotation
	err := r.db.QueryRow(query, tripID).Scan(
		&q.ID,
		&q.TripID,
		&q.LeadID,
		&q.ClientName,
		&q.Destination,
		&q.TravelDate,
		&q.Days,
		&q.TotalCost,
		&q.Payload,
		&q.SubmittedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get quotation", zap.String("trip_id", tripID), zap.Error(err))
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}
	return &q, nil
}

// List returns submitted quotations newest first.
func (r *QuotationRepository) List(limit, offset int) ([]*models.Quotation, error) {
	query := `
		SELECT id, trip_id, lead_id, client_name, destination, travel_date,
			days, total_cost, payload, submitted_at
		FROM quotations
		ORDER BY submitted_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list quotations", zap.Error(err))
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	var quotations []*models.Quotation
	for rows.Next() {
		var q models.Quotation
		if err := rows.Scan(
			&q.ID,
			&q.TripID,
			&q.LeadID,
			&q.ClientName,
			&q.Destination,
			&q.TravelDate,
			&q.Days,
			&q.TotalCost,
			&q.Payload,
			&q.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		quotations = append(quotations, &q)
	}
	return quotations, rows.Err()
}
