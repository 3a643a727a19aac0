package persist

import (
	"context"
	"sync"
	"time"

	"github.com/wudi/pdfdeck/observability"
)

// DefaultDebounce is how long the saver waits after the last scheduled
// change before writing.
const DefaultDebounce = 500 * time.Millisecond

// SaverConfig configures the debounced saver. The zero value plus a Store
// and Take function is usable.
type SaverConfig struct {
	Store Store
	// Take produces the snapshot to write; called on the timer goroutine
	// after the debounce window closes.
	Take     func() *Snapshot
	Debounce time.Duration
	Logger   observability.Logger
}

// Saver debounces snapshot writes. Schedule is fire-and-forget from the
// engine's point of view: each call restarts the window, and a later
// schedule supersedes an earlier pending write (last-write-wins, safe
// because every write is a full snapshot).
type Saver struct {
	store    Store
	take     func() *Snapshot
	debounce time.Duration
	log      observability.Logger

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

func NewSaver(cfg SaverConfig) *Saver {
	d := cfg.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Saver{
		store:    cfg.Store,
		take:     cfg.Take,
		debounce: d,
		log:      observability.OrNop(cfg.Logger),
	}
}

// Schedule (re)starts the debounce window.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done() // superseded before it fired
	}
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.write()
	})
}

// Flush cancels any pending window and writes immediately.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		if s.timer.Stop() {
			s.wg.Done()
		}
		s.timer = nil
	}
	s.mu.Unlock()
	snap := s.take()
	if snap == nil {
		return nil
	}
	return s.store.Persist(ctx, snap)
}

// Close stops the pending timer without writing and waits for any in-flight
// write to finish.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.timer != nil {
		if s.timer.Stop() {
			s.wg.Done()
		}
		s.timer = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Saver) write() {
	snap := s.take()
	if snap == nil {
		return
	}
	start := time.Now()
	if err := s.store.Persist(context.Background(), snap); err != nil {
		s.log.Error("snapshot write failed", observability.Error("err", err))
		return
	}
	s.log.Debug("snapshot written",
		observability.Int("pages", len(snap.Pages)),
		observability.Int("history", len(snap.History)),
		observability.Any(observability.MetricSaveTime, time.Since(start)))
}
