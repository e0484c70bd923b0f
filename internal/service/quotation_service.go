package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/draft"
	"github.com/voyagedesk/tripquote/internal/models"
	"github.com/voyagedesk/tripquote/internal/quotation"
)

// ErrSessionNotFound is returned for operations on a trip id with no open
// quotation session.
var ErrSessionNotFound = errors.New("quotation session not found")

// ErrAlreadySubmitted is returned when opening a session for a trip whose
// quotation was already finalized.
var ErrAlreadySubmitted = errors.New("quotation already submitted")

// QuotationStore is the persistence surface for submitted quotations.
type QuotationStore interface {
	Create(q *models.Quotation) error
	GetByTripID(tripID string) (*models.Quotation, error)
	List(limit, offset int) ([]*models.Quotation, error)
}

// PDFRenderer renders a form snapshot to a PDF file and returns its path.
type PDFRenderer interface {
	Render(form quotation.Form) (string, error)
}

type sessionEntry struct {
	sess   *draft.Session
	leadID string
}

// QuotationService owns the open quotation sessions. Each session wraps a
// live form state with draft autosave; the service routes edits to the
// right session and handles the submit handoff from draft to permanent
// record.
type QuotationService struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry

	drafts     draft.Store
	leads      *LeadService
	quotations QuotationStore
	renderer   PDFRenderer
	debounce   time.Duration
	logger     *zap.Logger
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	drafts draft.Store,
	leads *LeadService,
	quotations QuotationStore,
	renderer PDFRenderer,
	debounce time.Duration,
	logger *zap.Logger,
) *QuotationService {
	if debounce <= 0 {
		debounce = draft.DefaultDebounce
	}
	return &QuotationService{
		sessions:   make(map[string]*sessionEntry),
		drafts:     drafts,
		leads:      leads,
		quotations: quotations,
		renderer:   renderer,
		debounce:   debounce,
		logger:     logger,
	}
}

// Open starts (or resumes) the quotation session for a trip. An empty trip
// id gets a fresh one assigned. When leadID is set and no draft exists yet
// the form starts from the lead's details. Returns the trip id and the
// initial snapshot.
func (s *QuotationService) Open(tripID, leadID string) (string, quotation.Form, error) {
	if tripID == "" {
		tripID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[tripID]; ok {
		return tripID, entry.sess.State().Snapshot(), nil
	}

	submitted, err := s.quotations.GetByTripID(tripID)
	if err != nil {
		return "", quotation.Form{}, err
	}
	if submitted != nil {
		return "", quotation.Form{}, ErrAlreadySubmitted
	}

	defaults := quotation.NewForm()
	if leadID != "" {
		defaults, err = s.leads.QuotationDefaults(leadID)
		if err != nil {
			return "", quotation.Form{}, err
		}
	}
	defaults.TripID = tripID

	sess := draft.Open(tripID, defaults, s.drafts,
		draft.WithDebounce(s.debounce),
		draft.WithLogger(s.logger))

	// A resumed draft may predate the trip id field; the live form always
	// carries it. Leave the state alone otherwise so opening does not count
	// as an edit.
	if sess.State().Snapshot().TripID != tripID {
		sess.State().Update(func(f *quotation.Form) { f.TripID = tripID })
	}

	s.sessions[tripID] = &sessionEntry{sess: sess, leadID: leadID}

	s.logger.Info("Quotation session opened",
		zap.String("trip_id", tripID),
		zap.String("lead_id", leadID))
	return tripID, sess.State().Snapshot(), nil
}

// Snapshot returns the current form of an open session.
func (s *QuotationService) Snapshot(tripID string) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}
	return entry.sess.State().Snapshot(), nil
}

// ApplyPatch merges a partial form JSON document into the session's form.
// Only the keys present in the patch change; the trip id and the derived
// total cannot be patched. A malformed patch leaves the form untouched.
func (s *QuotationService) ApplyPatch(tripID string, patch []byte) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}

	var applyErr error
	snapshot := entry.sess.State().Update(func(f *quotation.Form) {
		tmp := f.Clone()
		if err := json.Unmarshal(patch, &tmp); err != nil {
			applyErr = fmt.Errorf("invalid form patch: %w", err)
			return
		}
		tmp.TripID = f.TripID
		*f = tmp
	})
	if applyErr != nil {
		return quotation.Form{}, applyErr
	}
	return snapshot, nil
}

// SetDays sets the trip duration, which reconciles the itinerary length.
func (s *QuotationService) SetDays(tripID, days string) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}
	return entry.sess.State().Update(func(f *quotation.Form) { f.Days = days }), nil
}

// SetTravelDate sets the trip start date, which re-derives itinerary dates
// for a growing itinerary.
func (s *QuotationService) SetTravelDate(tripID, date string) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}
	return entry.sess.State().Update(func(f *quotation.Form) { f.TravelDate = date }), nil
}

// SetDayDate edits a single itinerary day's date.
func (s *QuotationService) SetDayDate(tripID string, index int, date string) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}
	return entry.sess.State().SetDayDate(index, date)
}

// DayContent is the editable text of one itinerary day.
type DayContent struct {
	Title       string `json:"title"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// EditDay replaces the text content of one itinerary day. The day's date,
// date key and number are untouched.
func (s *QuotationService) EditDay(tripID string, index int, content DayContent) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}

	var editErr error
	snapshot := entry.sess.State().Update(func(f *quotation.Form) {
		if index < 0 || index >= len(f.ItineraryDays) {
			editErr = fmt.Errorf("itinerary day %d out of range", index+1)
			return
		}
		day := &f.ItineraryDays[index]
		day.Title = content.Title
		day.Activity = content.Activity
		day.Description = content.Description
		day.ImageURL = content.ImageURL
	})
	if editErr != nil {
		return quotation.Form{}, editErr
	}
	return snapshot, nil
}

// AddHotel appends a blank hotel row.
func (s *QuotationService) AddHotel(tripID string) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}
	return entry.sess.State().Update(func(f *quotation.Form) {
		f.Hotels = append(f.Hotels, quotation.Hotel{})
	}), nil
}

// RemoveHotel removes one hotel row. Removing the last row leaves a single
// blank one; the form always shows at least one hotel entry.
func (s *QuotationService) RemoveHotel(tripID string, index int) (quotation.Form, error) {
	entry, err := s.entry(tripID)
	if err != nil {
		return quotation.Form{}, err
	}

	var removeErr error
	snapshot := entry.sess.State().Update(func(f *quotation.Form) {
		if index < 0 || index >= len(f.Hotels) {
			removeErr = fmt.Errorf("hotel %d out of range", index+1)
			return
		}
		f.Hotels = append(f.Hotels[:index], f.Hotels[index+1:]...)
	})
	if removeErr != nil {
		return quotation.Form{}, removeErr
	}
	return snapshot, nil
}

// Submit finalizes an open session: the snapshot becomes a permanent
// quotation record, the draft is deleted and the session closed. When the
// session was seeded from a lead, the lead moves to QUOTED.
func (s *QuotationService) Submit(tripID string) (*models.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[tripID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	snapshot := entry.sess.State().Snapshot()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotation payload: %w", err)
	}

	record := &models.Quotation{
		TripID:      tripID,
		LeadID:      entry.leadID,
		ClientName:  snapshot.FullName,
		Destination: snapshot.Destination,
		TravelDate:  snapshot.TravelDate,
		Days:        snapshot.Days,
		TotalCost:   snapshot.TotalCost,
		Payload:     string(payload),
	}
	if err := s.quotations.Create(record); err != nil {
		// The session stays open so the agent can retry.
		return nil, err
	}

	if err := entry.sess.Discard(); err != nil {
		s.logger.Warn("Draft cleanup after submit failed",
			zap.String("trip_id", tripID),
			zap.Error(err))
	}
	entry.sess.Close()
	delete(s.sessions, tripID)

	if entry.leadID != "" {
		if err := s.leads.UpdateStatus(entry.leadID, models.LeadStatusQuoted); err != nil {
			s.logger.Warn("Lead status update after submit failed",
				zap.String("lead_id", entry.leadID),
				zap.Error(err))
		}
	}

	s.logger.Info("Quotation submitted",
		zap.String("trip_id", tripID),
		zap.Float64("total_cost", record.TotalCost))
	return record, nil
}

// Discard abandons an open session: the stored draft is deleted and the
// session closed without submitting.
func (s *QuotationService) Discard(tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[tripID]
	if !ok {
		return ErrSessionNotFound
	}
	err := entry.sess.Discard()
	entry.sess.Close()
	delete(s.sessions, tripID)
	return err
}

// RenderPDF renders the quotation PDF for a trip, from the live session
// when one is open, otherwise from the submitted record.
func (s *QuotationService) RenderPDF(tripID string) (string, error) {
	s.mu.Lock()
	entry, ok := s.sessions[tripID]
	s.mu.Unlock()

	var form quotation.Form
	if ok {
		form = entry.sess.State().Snapshot()
	} else {
		submitted, err := s.quotations.GetByTripID(tripID)
		if err != nil {
			return "", err
		}
		if submitted == nil {
			return "", ErrSessionNotFound
		}
		if err := json.Unmarshal([]byte(submitted.Payload), &form); err != nil {
			return "", fmt.Errorf("failed to decode quotation payload: %w", err)
		}
	}
	return s.renderer.Render(form)
}

// ListSubmitted returns submitted quotations newest first.
func (s *QuotationService) ListSubmitted(limit, offset int) ([]*models.Quotation, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.quotations.List(limit, offset)
}

// Shutdown flushes every open session's draft so no edits are lost on
// process exit. Sessions stay open; the process is going away anyway.
func (s *QuotationService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for tripID, entry := range s.sessions {
		entry.sess.Flush()
		s.logger.Debug("Session flushed on shutdown", zap.String("trip_id", tripID))
	}
}

func (s *QuotationService) entry(tripID string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[tripID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}
