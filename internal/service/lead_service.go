// Package service implements the application operations behind the HTTP
// API: lead intake and the quotation session lifecycle.
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/models"
	"github.com/voyagedesk/tripquote/internal/quotation"
)

// LeadStore is the persistence surface the lead service needs.
type LeadStore interface {
	Create(lead *models.Lead) error
	GetByID(id string) (*models.Lead, error)
	List(limit, offset int) ([]*models.Lead, error)
	UpdateStatus(id, status string) error
}

var validLeadStatuses = map[string]bool{
	models.LeadStatusNew:       true,
	models.LeadStatusContacted: true,
	models.LeadStatusQuoted:    true,
	models.LeadStatusWon:       true,
	models.LeadStatusLost:      true,
}

// CreateLeadInput carries the fields an agent captures for a new lead.
type CreateLeadInput struct {
	FullName    string `json:"fullName"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"`
	Days        string `json:"days"`
	AdultCount  string `json:"adultCount"`
	ChildCount  string `json:"childCount"`
	Budget      string `json:"budget"`
}

// LeadService manages the lead pipeline.
type LeadService struct {
	store  LeadStore
	logger *zap.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(store LeadStore, logger *zap.Logger) *LeadService {
	return &LeadService{
		store:  store,
		logger: logger,
	}
}

// Create registers a new lead in status NEW.
func (s *LeadService) Create(input CreateLeadInput) (*models.Lead, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("lead name is required")
	}

	lead := &models.Lead{
		ID:          uuid.New().String(),
		FullName:    strings.TrimSpace(input.FullName),
		Contact:     input.Contact,
		Email:       input.Email,
		Destination: input.Destination,
		TravelDate:  input.TravelDate,
		Days:        input.Days,
		AdultCount:  input.AdultCount,
		ChildCount:  input.ChildCount,
		Budget:      input.Budget,
		Status:      models.LeadStatusNew,
	}

	if err := s.store.Create(lead); err != nil {
		return nil, err
	}

	s.logger.Info("Lead created",
		zap.String("lead_id", lead.ID),
		zap.String("destination", lead.Destination))
	return lead, nil
}

// Get returns a lead, (nil, nil) when absent.
func (s *LeadService) Get(id string) (*models.Lead, error) {
	return s.store.GetByID(id)
}

// List returns leads newest first. A non-positive limit falls back to 50.
func (s *LeadService) List(limit, offset int) ([]*models.Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(limit, offset)
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadService) UpdateStatus(id, status string) error {
	if !validLeadStatuses[status] {
		return fmt.Errorf("invalid lead status: %s", status)
	}
	return s.store.UpdateStatus(id, status)
}

// QuotationDefaults builds the starting form for a quotation seeded from a
// lead. Fields the lead does not carry stay at their form defaults.
func (s *LeadService) QuotationDefaults(leadID string) (quotation.Form, error) {
	lead, err := s.store.GetByID(leadID)
	if err != nil {
		return quotation.Form{}, err
	}
	if lead == nil {
		return quotation.Form{}, fmt.Errorf("lead %s not found", leadID)
	}

	f := quotation.NewForm()
	f.FullName = lead.FullName
	f.Contact = lead.Contact
	f.Email = lead.Email
	f.Destination = lead.Destination
	f.TravelDate = lead.TravelDate
	f.Days = lead.Days
	f.AdultCount = lead.AdultCount
	f.ChildCount = lead.ChildCount
	f.Budget = lead.Budget
	return f, nil
}
