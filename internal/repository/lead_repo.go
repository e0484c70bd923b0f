package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/models"
)

// LeadRepository handles lead database operations
type LeadRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *sql.DB, logger *zap.Logger) *LeadRepository {
	return &LeadRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new lead record.
func (r *LeadRepository) Create(lead *models.Lead) error {
	query := `
		INSERT INTO leads (
			id, full_name, contact, email, destination, travel_date,
			days, adult_count, child_count, budget, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := r.db.Exec(query,
		lead.ID,
		lead.FullName,
		lead.Contact,
		lead.Email,
		lead.Destination,
		lead.TravelDate,
		lead.Days,
		lead.AdultCount,
		lead.ChildCount,
		lead.Budget,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create lead", zap.String("id", lead.ID), zap.Error(err))
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// GetByID retrieves a lead by id, (nil, nil) when absent.
func (r *LeadRepository) GetByID(id string) (*models.Lead, error) {
	query := `
		SELECT id, full_name, contact, email, destination, travel_date,
			days, adult_count, child_count, budget, status, created_at, updated_at
		FROM leads
		WHERE id = ?
	`

	var lead models.Lead
	err := r.db.QueryRow(query, id).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Contact,
		&lead.Email,
		&lead.Destination,
		&lead.TravelDate,
		&lead.Days,
		&lead.AdultCount,
		&lead.ChildCount,
		&lead.Budget,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get lead", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}

// List returns leads newest first.
func (r *LeadRepository) List(limit, offset int) ([]*models.Lead, error) {
	query := `
		SELECT id, full_name, contact, email, destination, travel_date,
			days, adult_count, child_count, budget, status, created_at, updated_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list leads", zap.Error(err))
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FullName,
			&lead.Contact,
			&lead.Email,
			&lead.Destination,
			&lead.TravelDate,
			&lead.Days,
			&lead.AdultCount,
			&lead.ChildCount,
			&lead.Budget,
			&lead.Status,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, &lead)
	}
	return leads, rows.Err()
}

// UpdateStatus moves a lead through the pipeline.
func (r *LeadRepository) UpdateStatus(id, status string) error {
	query := "UPDATE leads SET status = ?, updated_at = ? WHERE id = ?"
	result, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update lead status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check lead update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead %s not found", id)
	}
	return nil
}
