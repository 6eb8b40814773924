package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventSource is the slice of the repository the relay reads: unsent events
// in insertion order, plus the sent-stamp. Satisfied by *Repository.
type EventSource interface {
	FetchUnsent(ctx context.Context, limit int32) ([]Event, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

// WorkerConfig tunes the relay loop.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int32
	MaxRetries   int
	RetryDelay   time.Duration
}

// DefaultWorkerConfig returns production relay settings.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: time.Second,
		BatchSize:    100,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}
}

// Worker relays unsent outbox rows to the publisher in insertion order.
// Delivery is at-least-once: overlapping relay instances may publish the
// same row, and the broker deduplicates on the event's message ID.
type Worker struct {
	repo      EventSource
	publisher Publisher
	config    WorkerConfig

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewWorker creates a relay worker; Start begins polling.
func NewWorker(repo EventSource, publisher Publisher, cfg WorkerConfig) *Worker {
	return &Worker{
		repo:      repo,
		publisher: publisher,
		config:    cfg,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the relay loop.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx)

	log.Info().
		Dur("poll_interval", w.config.PollInterval).
		Int32("batch_size", w.config.BatchSize).
		Msg("outbox worker started")
	return nil
}

// Stop halts the relay loop and waits for it to finish.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("outbox worker not running")
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()

	log.Info().Msg("outbox worker stopped")
	return nil
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on start.
	w.processOutbox(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.processOutbox(ctx)
		}
	}
}

func (w *Worker) processOutbox(ctx context.Context) {
	batch, err := w.repo.FetchUnsent(ctx, w.config.BatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch unsent outbox events")
		return
	}
	if len(batch) == 0 {
		return
	}

	for _, event := range batch {
		if err := w.publishWithRetry(ctx, event); err != nil {
			// Stop the batch at the first failure to preserve
			// per-room ordering; the next poll retries from here.
			log.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish outbox event")
			return
		}
		if err := w.repo.MarkSent(ctx, event.ID, time.Now()); err != nil {
			log.Error().
				Err(err).
				Str("event_id", event.ID.String()).
				Msg("failed to mark outbox event sent; it will be republished")
			return
		}
	}

	log.Debug().Int("count", len(batch)).Msg("relayed outbox batch")
}

func (w *Worker) publishWithRetry(ctx context.Context, event Event) error {
	var err error
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if err = w.publisher.Publish(ctx, event); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.config.RetryDelay * time.Duration(attempt+1)):
		}
	}
	return err
}
