// Package clock runs the draft countdown. The next deadline for every room
// is persisted by the engine; the scheduler sleeps until the soonest one,
// fetches rooms that are due, and dispatches them to a worker pool that
// invokes the engine's deadline handler. Because the handler funnels into
// the store's conditional commit, a fire that loses to a human pick is a
// no-op by construction.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/draft/store"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_handler.go github.com/mcdev12/draftroom/internal/draft/clock Handler,DeadlineStore

// Handler receives expired room deadlines; implemented by the engine.
type Handler interface {
	HandleDeadline(ctx context.Context, roomID uuid.UUID) error
}

// DeadlineStore is the slice of the store the scheduler reads.
type DeadlineStore interface {
	FetchNextDeadline(ctx context.Context) (*store.NextDeadline, error)
	FetchRoomsDueForPick(ctx context.Context, limit int32, now time.Time) ([]uuid.UUID, error)
}

// Config tunes the scheduler loop.
type Config struct {
	// BatchSize bounds how many due rooms are claimed per wakeup.
	BatchSize int32
	// NumWorkers sizes the pool that processes expirations.
	NumWorkers int
	// IdlePoll is how long to sleep when no deadline exists.
	IdlePoll time.Duration
	Clock    clockwork.Clock
}

// DefaultConfig returns production scheduler settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:  25,
		NumWorkers: 10,
		IdlePoll:   5 * time.Second,
		Clock:      clockwork.NewRealClock(),
	}
}

// Scheduler drives pick timeouts for all in-progress rooms.
type Scheduler struct {
	store   DeadlineStore
	handler Handler
	clock   clockwork.Clock
	config  Config

	instanceID string
	wakeCh     chan struct{}
	workCh     chan uuid.UUID

	// Track in-flight rooms so a slow handler is not queued twice.
	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewScheduler creates a scheduler; Run must be called to start it.
func NewScheduler(st DeadlineStore, handler Handler, cfg Config) *Scheduler {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = DefaultConfig().NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.IdlePoll <= 0 {
		cfg.IdlePoll = DefaultConfig().IdlePoll
	}
	return &Scheduler{
		store:      st,
		handler:    handler,
		clock:      cfg.Clock,
		config:     cfg,
		instanceID: uuid.New().String()[:8],
		wakeCh:     make(chan struct{}, 1),
		workCh:     make(chan uuid.UUID, cfg.NumWorkers*2),
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Wake nudges the scheduler to re-read the next deadline; called by the
// engine whenever it writes a deadline that may be sooner than the one the
// scheduler sleeps on.
func (s *Scheduler) Wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// Run loops until ctx is cancelled, sleeping until the next deadline and
// dispatching due rooms to the worker pool.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Info().
		Str("instance", s.instanceID).
		Int("workers", s.config.NumWorkers).
		Msg("draft clock scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer func() {
		cancelWorkers()
		wg.Wait()
		log.Info().Str("instance", s.instanceID).Msg("draft clock scheduler stopped")
	}()

	for i := 0; i < s.config.NumWorkers; i++ {
		wg.Add(1)
		go s.worker(workerCtx, &wg, i)
	}

	timer := s.clock.NewTimer(0)
	defer stopAndDrainTimer(timer)

	retryCount := 0
	const maxRetries = 3

	for {
		// Drain any pending wake before reading the deadline so a wake
		// arriving after the read still interrupts the sleep below.
		select {
		case <-s.wakeCh:
		default:
		}

		nd, err := s.store.FetchNextDeadline(ctx)
		if err != nil {
			retryCount++
			if retryCount > maxRetries {
				log.Error().Err(err).Str("instance", s.instanceID).Msg("failed to fetch next deadline after retries")
				return err
			}
			log.Warn().
				Err(err).
				Int("retry", retryCount).
				Str("instance", s.instanceID).
				Msg("failed to fetch next deadline; retrying")
			if !s.sleep(ctx, timer, time.Second*time.Duration(retryCount)) {
				return nil
			}
			continue
		}
		retryCount = 0

		if nd == nil || nd.Deadline == nil {
			// No armed rooms; idle until woken or the poll elapses.
			if !s.sleep(ctx, timer, s.config.IdlePoll) {
				return nil
			}
			continue
		}

		if wait := nd.Deadline.Sub(s.clock.Now()); wait > 0 {
			if !s.sleep(ctx, timer, wait) {
				return nil
			}
			continue
		}

		due, err := s.store.FetchRoomsDueForPick(ctx, s.config.BatchSize, s.clock.Now())
		if err != nil {
			log.Error().Err(err).Str("instance", s.instanceID).Msg("failed to fetch due rooms")
			if !s.sleep(ctx, timer, time.Second) {
				return nil
			}
			continue
		}

		for _, roomID := range due {
			if !s.enqueue(ctx, roomID) {
				return nil
			}
		}
	}
}

// sleep waits for d, a wake, or cancellation. Returns false on shutdown.
func (s *Scheduler) sleep(ctx context.Context, timer clockwork.Timer, d time.Duration) bool {
	timer.Reset(d)
	select {
	case <-timer.Chan():
		return true
	case <-s.wakeCh:
		log.Debug().Str("instance", s.instanceID).Msg("woken early; re-reading deadlines")
		return true
	case <-ctx.Done():
		return false
	}
}

// enqueue hands a due room to the worker pool, skipping rooms already being
// processed. Returns false on shutdown.
func (s *Scheduler) enqueue(ctx context.Context, roomID uuid.UUID) bool {
	s.inFlightMu.Lock()
	if s.inFlight[roomID] {
		s.inFlightMu.Unlock()
		log.Debug().Str("room_id", roomID.String()).Msg("room already in flight; skipping")
		return true
	}
	s.inFlight[roomID] = true
	s.inFlightMu.Unlock()

	select {
	case s.workCh <- roomID:
		return true
	case <-ctx.Done():
		s.inFlightMu.Lock()
		delete(s.inFlight, roomID)
		s.inFlightMu.Unlock()
		return false
	}
}

func (s *Scheduler) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case roomID := <-s.workCh:
			if err := s.handler.HandleDeadline(ctx, roomID); err != nil {
				log.Error().
					Err(err).
					Str("room_id", roomID.String()).
					Str("instance", s.instanceID).
					Int("worker_id", workerID).
					Msg("deadline handling failed")
			}
			s.inFlightMu.Lock()
			delete(s.inFlight, roomID)
			s.inFlightMu.Unlock()
		}
	}
}

// stopAndDrainTimer stops a timer and drains its channel so a fired-but-
// unread tick cannot leak.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
