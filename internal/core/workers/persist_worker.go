package workers

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultSaveDelay   = 500 * time.Millisecond
	defaultSaveTimeout = 5 * time.Second
	breakerThreshold   = 5
	breakerCooldown    = 30 * time.Second
)

type SnapshotWriter interface {
	Save(ctx context.Context, userID string, data *domain.AppData) error
}

type pendingSave struct {
	data  *domain.AppData
	timer *time.Timer
}

// PersistWorker coalesces snapshot writes per user. Each Schedule restarts the
// user's timer, so a burst of changes produces a single write of the latest
// snapshot once the burst has been quiet for the save delay.
type PersistWorker struct {
	repo    SnapshotWriter
	delay   time.Duration
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[any]

	mu       sync.Mutex
	pending  map[string]*pendingSave
	writing  map[string]int
	failed   map[string]bool
	inflight sync.WaitGroup
	stopped  bool
}

func NewPersistWorker(repo SnapshotWriter, delay time.Duration) *PersistWorker {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}

	settings := gobreaker.Settings{
		Name:        "snapshot-writes",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[PERSIST] circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &PersistWorker{
		repo:    repo,
		delay:   delay,
		timeout: defaultSaveTimeout,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		pending: make(map[string]*pendingSave),
		writing: make(map[string]int),
		failed:  make(map[string]bool),
	}
}

// Schedule replaces the user's pending snapshot and restarts its timer. The
// caller must not mutate data afterwards.
func (w *PersistWorker) Schedule(userID string, data *domain.AppData) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		log.Printf("[PERSIST] worker stopped, dropping save for user %s", userID)
		return
	}

	if prev, ok := w.pending[userID]; ok {
		prev.timer.Stop()
	}

	entry := &pendingSave{data: data}
	entry.timer = time.AfterFunc(w.delay, func() { w.fire(userID, entry) })
	w.pending[userID] = entry
}

func (w *PersistWorker) fire(userID string, entry *pendingSave) {
	w.mu.Lock()
	// A newer Schedule or a Flush may have superseded this timer.
	if w.pending[userID] != entry {
		w.mu.Unlock()
		return
	}
	delete(w.pending, userID)
	w.writing[userID]++
	w.inflight.Add(1)
	w.mu.Unlock()

	defer w.inflight.Done()
	w.save(context.Background(), userID, entry.data)
}

// Flush writes the user's pending snapshot now, if there is one.
func (w *PersistWorker) Flush(ctx context.Context, userID string) error {
	w.mu.Lock()
	entry, ok := w.pending[userID]
	if ok {
		entry.timer.Stop()
		delete(w.pending, userID)
		w.writing[userID]++
	}
	w.mu.Unlock()

	if !ok {
		return nil
	}
	return w.save(ctx, userID, entry.data)
}

// Cancel drops the user's pending snapshot without writing it.
func (w *PersistWorker) Cancel(userID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry, ok := w.pending[userID]; ok {
		entry.timer.Stop()
		delete(w.pending, userID)
	}
	delete(w.failed, userID)
}

// Settled reports whether the user has nothing pending, nothing being
// written and no failed last write, so the stored snapshot is current.
func (w *PersistWorker) Settled(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, pending := w.pending[userID]
	return !pending && w.writing[userID] == 0 && !w.failed[userID]
}

func (w *PersistWorker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Stop cancels every timer, writes the pending snapshots and waits for writes
// already in progress. Later Schedule calls are dropped.
func (w *PersistWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	w.stopped = true
	drained := w.pending
	w.pending = make(map[string]*pendingSave)
	for userID, entry := range drained {
		entry.timer.Stop()
		w.writing[userID]++
	}
	w.mu.Unlock()

	log.Printf("[PERSIST] flushing %d pending snapshot(s)", len(drained))
	for userID, entry := range drained {
		if err := ctx.Err(); err != nil {
			w.mu.Lock()
			w.writing[userID]--
			w.failed[userID] = true
			w.mu.Unlock()
			continue
		}
		w.save(ctx, userID, entry.data)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// save writes one snapshot. The caller has already counted it in w.writing.
func (w *PersistWorker) save(ctx context.Context, userID string, data *domain.AppData) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	_, err := w.breaker.Execute(func() (any, error) {
		return nil, w.repo.Save(ctx, userID, data)
	})

	w.mu.Lock()
	if w.writing[userID]--; w.writing[userID] <= 0 {
		delete(w.writing, userID)
	}
	if err != nil {
		w.failed[userID] = true
	} else {
		delete(w.failed, userID)
	}
	w.mu.Unlock()

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		log.Printf("[PERSIST] circuit open, skipped save for user %s", userID)
	default:
		log.Printf("[PERSIST] failed to save snapshot for user %s: %v", userID, err)
	}
	return err
}
