package draft

import (
	"time"

	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/quotation"
)

// DefaultDebounce is the quiet period between the last form mutation and
// the draft write.
const DefaultDebounce = 700 * time.Millisecond

const autosaveObserver = "draft-autosave"

// Session ties one open quotation form to the draft store. Opening a
// session loads any stored draft, merges it over the caller's defaults and
// publishes the merged state; from then on every mutation schedules a
// debounced full-snapshot write. Sessions without a trip id never persist:
// a draft cannot exist before a trip id is assigned.
//
// Draft I/O failures degrade, never escalate: a failed load starts fresh,
// a failed save is logged and retried by the next mutation's debounce
// cycle.
type Session struct {
	tripID string
	store  Store
	state  *quotation.State
	sched  *saveScheduler
	logger *zap.Logger
}

// SessionOption configures an opened session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	debounce time.Duration
	logger   *zap.Logger
	clock    func() time.Time
}

// WithDebounce overrides the save quiet period.
func WithDebounce(d time.Duration) SessionOption {
	return func(c *sessionConfig) { c.debounce = d }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(c *sessionConfig) { c.logger = logger }
}

// WithClock overrides the itinerary date base used when no travel date is
// set. Tests pin it.
func WithClock(now func() time.Time) SessionOption {
	return func(c *sessionConfig) { c.clock = now }
}

// Open loads the draft for tripID, merges it over defaults and returns a
// ready session.
func Open(tripID string, defaults quotation.Form, store Store, opts ...SessionOption) *Session {
	cfg := sessionConfig{
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	merged := defaults
	if tripID != "" {
		raw, err := store.Get(tripID)
		switch {
		case err != nil:
			cfg.logger.Warn("Draft load failed, starting from defaults",
				zap.String("trip_id", tripID),
				zap.Error(err))
		case raw != nil:
			merged = MergeOverDefaults(defaults, raw)
		}
	}

	s := &Session{
		tripID: tripID,
		store:  store,
		state: quotation.NewState(merged,
			quotation.WithLogger(cfg.logger),
			quotation.WithClock(cfg.clock)),
		logger: cfg.logger,
	}
	s.sched = newSaveScheduler(cfg.debounce, s.save)

	s.state.Subscribe(autosaveObserver, func(quotation.Form) {
		if s.tripID == "" {
			return
		}
		s.sched.Reset()
	})

	return s
}

// TripID returns the trip id this session persists under.
func (s *Session) TripID() string {
	return s.tripID
}

// State exposes the live form state for mutation and subscription.
func (s *Session) State() *quotation.State {
	return s.state
}

// Flush cancels any pending debounce and writes the current snapshot
// immediately. Used on shutdown so the last burst of edits is not lost.
func (s *Session) Flush() {
	if s.tripID == "" {
		return
	}
	s.sched.Stop()
	s.save()
}

// Discard deletes the stored draft. The caller invokes this after a
// successful upstream submission; the session never deletes on its own.
func (s *Session) Discard() error {
	s.sched.Stop()
	if s.tripID == "" {
		return nil
	}
	return s.store.Delete(s.tripID)
}

// Close detaches the session from the form state and cancels any pending
// save without writing.
func (s *Session) Close() {
	s.state.Unsubscribe(autosaveObserver)
	s.sched.Stop()
}

func (s *Session) save() {
	snapshot := s.state.Snapshot()
	raw, err := Encode(snapshot)
	if err != nil {
		s.logger.Error("Draft encode failed",
			zap.String("trip_id", s.tripID),
			zap.Error(err))
		return
	}
	if err := s.store.Set(s.tripID, raw); err != nil {
		// Dropped on purpose: the next mutation re-arms the debounce with
		// fresh data, so there is no retry queue to maintain.
		s.logger.Warn("Draft save failed",
			zap.String("trip_id", s.tripID),
			zap.Error(err))
		return
	}
	s.logger.Debug("Draft saved",
		zap.String("trip_id", s.tripID),
		zap.Int("bytes", len(raw)))
}
