package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// asyncQueueCapacity bounds the fire-and-forget queue. Overflow drops the
// event and increments a counter; tracking must never block a tool call.
const asyncQueueCapacity = 512

// ErrCollectorClosed is returned by Track after Shutdown.
var ErrCollectorClosed = errors.New("analytics collector closed")

// FlushResult reports one flush.
type FlushResult struct {
	EventsFlushed int `json:"eventsFlushed"`
}

// CollectorStats is a snapshot of the collector's counters.
type CollectorStats struct {
	SessionID     string `json:"sessionId"`
	Enabled       bool   `json:"enabled"`
	Pending       int    `json:"pending"`
	TotalTracked  int64  `json:"totalTracked"`
	TotalFlushed  int64  `json:"totalFlushed"`
	FlushFailures int64  `json:"flushFailures"`
	Dropped       int64  `json:"dropped"`
}

// Collector buffers events in memory and flushes them to the store in
// batches. A flush happens when the buffer reaches the configured batch
// size, when the background timer fires, or on demand.
//
// When the configuration disables analytics, the collector starts no
// goroutines and every tracking call returns immediately. When consent is
// missing, tracking is an equally cheap no-op, but the machinery stays up
// so a consent grant takes effect without a restart.
type Collector struct {
	cfg    Config
	gate   *ConsentGate
	store  *FileStore
	logger *slog.Logger

	sessionID string

	mu    sync.Mutex
	batch []Event

	queue chan Event
	done  chan struct{}
	wg    sync.WaitGroup

	closed       atomic.Bool
	flushPending atomic.Bool

	totalTracked  atomic.Int64
	totalFlushed  atomic.Int64
	flushFailures atomic.Int64
	dropped       atomic.Int64
}

// NewCollector builds a collector and, if the configuration enables
// analytics, starts its background drain and timer goroutines. Callers
// must eventually call Shutdown.
func NewCollector(cfg Config, gate *ConsentGate, store *FileStore, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}

	c := &Collector{
		cfg:       cfg,
		gate:      gate,
		store:     store,
		logger:    logger,
		sessionID: NewSessionID(),
		done:      make(chan struct{}),
	}
	if cfg.Enabled {
		c.queue = make(chan Event, asyncQueueCapacity)
		c.wg.Add(2)
		go c.drainLoop()
		go c.timerLoop()
	}
	return c
}

// SessionID returns the random token shared by every event this collector
// records.
func (c *Collector) SessionID() string { return c.sessionID }

// ActiveCollector returns the collector itself. It satisfies
// CollectorSource, so a bare collector can be wired wherever a runtime
// otherwise would.
func (c *Collector) ActiveCollector() *Collector { return c }

// Enabled reports whether events are currently recorded: the
// configuration must enable analytics and consent must be granted.
func (c *Collector) Enabled() bool {
	return c.cfg.Enabled && c.gate.Granted()
}

// Track buffers one event. When tracking is disabled it returns nil
// without touching any state. Reaching the batch size triggers an
// asynchronous flush; Track itself never waits on I/O.
func (c *Collector) Track(ctx context.Context, ev Event) error {
	if !c.Enabled() {
		return nil
	}
	if c.closed.Load() {
		return ErrCollectorClosed
	}
	c.ingest(ev)
	return nil
}

// TrackAsync queues one event for the background drain goroutine. It
// never blocks; when the queue is full the event is dropped and counted.
// This is the variant tool instrumentation uses on the hot path.
func (c *Collector) TrackAsync(ev Event) {
	if !c.Enabled() || c.closed.Load() {
		return
	}
	select {
	case c.queue <- ev:
	default:
		c.dropped.Add(1)
	}
}

func (c *Collector) ingest(ev Event) {
	c.totalTracked.Add(1)
	c.mu.Lock()
	c.batch = append(c.batch, ev)
	n := len(c.batch)
	c.mu.Unlock()
	if n >= c.cfg.BatchSize {
		c.requestFlush()
	}
}

// requestFlush starts at most one background flush at a time. Further
// requests while one is pending coalesce into it.
func (c *Collector) requestFlush() {
	if c.closed.Load() {
		return
	}
	if !c.flushPending.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.flushPending.Store(false)
		if _, err := c.Flush(context.Background()); err != nil {
			c.logger.Warn("background flush failed", "error", err)
		}
	}()
}

// Flush writes the current batch to the store. The batch is swapped out
// under the lock, so events tracked during the write land in a fresh
// batch and nothing is lost or written twice. On failure the events that
// did not reach disk are pushed back to the front of the batch and the
// error is returned; they will ride along with the next flush.
func (c *Collector) Flush(ctx context.Context) (FlushResult, error) {
	c.mu.Lock()
	if len(c.batch) == 0 {
		c.mu.Unlock()
		return FlushResult{}, nil
	}
	events := c.batch
	c.batch = make([]Event, 0, c.cfg.BatchSize)
	c.mu.Unlock()

	res, err := c.store.AppendEvents(ctx, events)
	if err != nil {
		unwritten := res.Unwritten
		if unwritten == nil {
			// A store that fails without naming the unwritten events
			// forfeits partial-success accounting; retry everything.
			unwritten = events
		}
		c.mu.Lock()
		restored := make([]Event, 0, len(unwritten)+len(c.batch))
		restored = append(restored, unwritten...)
		restored = append(restored, c.batch...)
		c.batch = restored
		c.mu.Unlock()

		c.flushFailures.Add(1)
		c.totalFlushed.Add(int64(res.EventsWritten))
		return FlushResult{EventsFlushed: res.EventsWritten}, fmt.Errorf("flush: %w", err)
	}

	c.totalFlushed.Add(int64(res.EventsWritten))
	return FlushResult{EventsFlushed: res.EventsWritten}, nil
}

// Shutdown stops the background goroutines, drains the async queue into
// the batch, and flushes one last time. Tracking calls made after
// Shutdown are refused. Calling Shutdown twice is a no-op.
func (c *Collector) Shutdown(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.done)
	c.wg.Wait()

	if c.queue != nil {
	drained:
		for {
			select {
			case ev := <-c.queue:
				c.ingestFinal(ev)
			default:
				break drained
			}
		}
	}

	_, err := c.Flush(ctx)
	return err
}

// Abort is Shutdown without the final flush: buffered and queued events
// are discarded. Used when the user has just asked for their data to be
// deleted; flushing would write it right back.
func (c *Collector) Abort() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	c.wg.Wait()

	if c.queue != nil {
	drained:
		for {
			select {
			case <-c.queue:
			default:
				break drained
			}
		}
	}
	c.mu.Lock()
	c.batch = nil
	c.mu.Unlock()
}

// ingestFinal buffers an event during shutdown without triggering a
// background flush; the final Flush picks it up.
func (c *Collector) ingestFinal(ev Event) {
	c.totalTracked.Add(1)
	c.mu.Lock()
	c.batch = append(c.batch, ev)
	c.mu.Unlock()
}

// Stats returns a snapshot of the collector's counters.
func (c *Collector) Stats() CollectorStats {
	c.mu.Lock()
	pending := len(c.batch)
	c.mu.Unlock()
	return CollectorStats{
		SessionID:     c.sessionID,
		Enabled:       c.Enabled(),
		Pending:       pending,
		TotalTracked:  c.totalTracked.Load(),
		TotalFlushed:  c.totalFlushed.Load(),
		FlushFailures: c.flushFailures.Load(),
		Dropped:       c.dropped.Load(),
	}
}

func (c *Collector) drainLoop() {
	defer c.wg.Done()
	for {
		select {
		case ev := <-c.queue:
			c.ingest(ev)
		case <-c.done:
			return
		}
	}
}

func (c *Collector) timerLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			pending := len(c.batch)
			c.mu.Unlock()
			if pending == 0 {
				continue
			}
			if _, err := c.Flush(context.Background()); err != nil {
				c.logger.Warn("scheduled flush failed", "error", err)
			}
		case <-c.done:
			return
		}
	}
}
