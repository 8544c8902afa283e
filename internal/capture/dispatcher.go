package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/store"
	"github.com/AngelCh415/leadcalc/internal/telemetry"
)

type Sender interface {
	Send(ctx context.Context, sub models.Submission) (int, error)
}

// Dispatcher delivers submissions in the background so an unlock never waits
// on the webhook. Outcomes are written back to the store.
type Dispatcher struct {
	s       Sender
	st      *store.MemoryStore
	log     *slog.Logger
	tm      *telemetry.Metrics
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan models.Submission
	wg     sync.WaitGroup
}

func NewDispatcher(s Sender, st *store.MemoryStore, log *slog.Logger, tm *telemetry.Metrics, workers, queue int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	d := &Dispatcher{s: s, st: st, log: log, tm: tm, timeout: timeout, queue: make(chan models.Submission, queue)}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Enqueue hands sub to a worker without blocking. When the queue is full or
// the dispatcher is closed the submission is marked failed and false returned.
func (d *Dispatcher) Enqueue(sub models.Submission) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		select {
		case d.queue <- sub:
			return true
		default:
		}
	}
	d.finish(sub.ID, 0, "dispatch queue unavailable", 0)
	return false
}

// Close stops accepting work and waits for queued deliveries or ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() { d.wg.Wait(); close(done) }()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for sub := range d.queue {
		d.deliver(sub)
	}
}

func (d *Dispatcher) deliver(sub models.Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	attempts, err := d.s.Send(ctx, sub)
	if err != nil {
		d.finish(sub.ID, attempts, err.Error(), time.Since(start))
		return
	}
	d.finish(sub.ID, attempts, "", time.Since(start))
}

func (d *Dispatcher) finish(id string, attempts int, errMsg string, took time.Duration) {
	status := models.StatusDelivered
	if errMsg != "" {
		status = models.StatusFailed
	}
	d.st.Update(id, func(s *models.Submission) {
		s.Status = status
		s.Attempts += attempts
		s.LastError = errMsg
		s.UpdatedAt = time.Now().UTC()
	})
	d.tm.Delivery(string(status), took)
	if errMsg != "" {
		d.log.Error("lead delivery failed", slog.String("submission", id), slog.Int("attempts", attempts), slog.String("err", errMsg))
		return
	}
	d.log.Info("lead delivered", slog.String("submission", id), slog.Int("attempts", attempts), slog.Duration("took", took))
}
