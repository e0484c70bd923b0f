package quotation

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Observer receives a snapshot of the form after a user mutation has been
// applied and the derived passes have run.
type Observer func(f Form)

type namedObserver struct {
	name string
	fn   Observer
}

// State owns a Form and keeps it consistent: every user mutation goes
// through Update, which runs the itinerary reconciler when the duration or
// start date changed, recomputes the derived total, and then notifies
// subscribers in registration order with a snapshot. Derived writes happen
// inside the same pass and never re-notify.
//
// State is safe for concurrent use; there is still one logical writer per
// quotation, but HTTP handlers may race on the lock.
type State struct {
	mu     sync.Mutex
	form   Form
	subs   []namedObserver
	logger *zap.Logger
	now    func() time.Time
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger attaches a logger for subscriber panic reports.
func WithLogger(logger *zap.Logger) StateOption {
	return func(s *State) { s.logger = logger }
}

// WithClock overrides the time source used when generating itinerary dates
// without a travel date.
func WithClock(now func() time.Time) StateOption {
	return func(s *State) { s.now = now }
}

// NewState wraps an initial form. When the form already carries a trip
// duration (or existing itinerary days) the derived passes run once so the
// published state starts consistent; an untouched form keeps its empty
// itinerary until the first duration edit.
func NewState(initial Form, opts ...StateOption) *State {
	s := &State{
		form: initial.Clone(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.form.Days != "" || len(s.form.ItineraryDays) > 0 {
		s.form.ItineraryDays = ReconcileItinerary(s.form.ItineraryDays, s.form.Days, s.form.TravelDate, s.now())
	}
	s.applyInvariants()
	return s
}

// Subscribe registers an observer under a name. Observers run synchronously
// after each mutation, in registration order.
func (s *State) Subscribe(name string, fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, namedObserver{name: name, fn: fn})
}

// Unsubscribe removes the observer registered under name.
func (s *State) Unsubscribe(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.subs[:0]
	for _, sub := range s.subs {
		if sub.name != name {
			filtered = append(filtered, sub)
		}
	}
	s.subs = filtered
}

// Snapshot returns a deep copy of the current form.
func (s *State) Snapshot() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// Update applies a mutation to the form, runs the derived passes and
// notifies subscribers. The returned snapshot reflects the post-derivation
// state.
func (s *State) Update(mutate func(f *Form)) Form {
	s.mu.Lock()

	prevDays := s.form.Days
	prevTravelDate := s.form.TravelDate

	mutate(&s.form)

	if s.form.Days != prevDays || s.form.TravelDate != prevTravelDate {
		s.form.ItineraryDays = ReconcileItinerary(s.form.ItineraryDays, s.form.Days, s.form.TravelDate, s.now())
	}
	s.applyInvariants()

	snapshot := s.form.Clone()
	subs := append([]namedObserver(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		s.notify(sub, snapshot)
	}
	return snapshot
}

// SetDayDate edits a single itinerary day's date and recomputes only that
// day's date key. Sibling days keep their numbers and dates.
func (s *State) SetDayDate(index int, date string) (Form, error) {
	var outOfRange error
	snapshot := s.Update(func(f *Form) {
		if index < 0 || index >= len(f.ItineraryDays) {
			outOfRange = fmt.Errorf("itinerary day %d out of range", index+1)
			return
		}
		f.ItineraryDays[index].Date = date
		f.ItineraryDays[index].DateKey = DateKey(date)
	})
	return snapshot, outOfRange
}

// applyInvariants runs the derived passes that hold on every published
// state: at least one hotel row, and TotalCost always the engine's output.
// Caller holds the lock.
func (s *State) applyInvariants() {
	if len(s.form.Hotels) == 0 {
		s.form.Hotels = []Hotel{{}}
	}
	s.form.TotalCost = TotalCost(s.form)
}

// notify runs one observer with panic recovery so a misbehaving subscriber
// cannot take down the form session.
func (s *State) notify(sub namedObserver, snapshot Form) {
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Error("Form observer panic recovered",
				zap.String("observer", sub.name),
				zap.Any("panic", r))
		}
	}()
	sub.fn(snapshot)
}
