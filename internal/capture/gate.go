package capture

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/store"
	"github.com/AngelCh415/leadcalc/internal/telemetry"
)

// Gate turns a contact form into a recorded submission and schedules its
// delivery. Unlocking is optimistic: the caller gets the results whether or
// not the webhook later succeeds.
type Gate struct {
	st  *store.MemoryStore
	d   *Dispatcher
	tm  *telemetry.Metrics
	log *slog.Logger
	now func() time.Time
}

func NewGate(st *store.MemoryStore, d *Dispatcher, tm *telemetry.Metrics, log *slog.Logger) *Gate {
	return &Gate{st: st, d: d, tm: tm, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Unlock validates c and records it against est. A repeat unlock for the same
// email and inputs returns the earlier submission with duplicate set and is
// not posted again, unless that delivery failed: then the submission is
// queued again under its original ID.
func (g *Gate) Unlock(c models.Contact, est models.Estimate) (sub models.Submission, duplicate bool, err error) {
	c = Normalize(c)
	if err := Validate(c); err != nil {
		g.tm.Unlock("invalid")
		return models.Submission{}, false, err
	}

	now := g.now()
	sub = models.Submission{
		ID:        uuid.NewString(),
		Contact:   c,
		Estimate:  est,
		Status:    models.StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sub, fresh := g.st.Claim(dedupeKey(c, est.Inputs), sub)
	if !fresh {
		if retry, ok := g.requeue(sub.ID, c, now); ok {
			g.tm.Unlock("retried")
			g.log.Info("lead resubmitted", slog.String("submission", retry.ID), slog.Int("attempts", retry.Attempts))
			g.d.Enqueue(retry)
			return retry, false, nil
		}
		g.tm.Unlock("duplicate")
		return sub, true, nil
	}

	g.tm.Unlock("accepted")
	g.log.Info("lead captured", slog.String("submission", sub.ID), slog.String("location", est.Inputs.Location))
	g.d.Enqueue(sub)
	return sub, false, nil
}

// requeue flips a failed submission back to queued. The check and the flip
// happen under the store lock so concurrent retries enqueue once.
func (g *Gate) requeue(id string, c models.Contact, now time.Time) (models.Submission, bool) {
	var out models.Submission
	var ok bool
	g.st.Update(id, func(s *models.Submission) {
		if s.Status != models.StatusFailed {
			return
		}
		s.Contact = c
		s.Status = models.StatusQueued
		s.LastError = ""
		s.UpdatedAt = now
		out, ok = *s, true
	})
	return out, ok
}

func (g *Gate) Submission(id string) (models.Submission, bool) { return g.st.Get(id) }

func dedupeKey(c models.Contact, in models.Inputs) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%s", c.Email, in.PropertyType, in.LaunchType,
		in.Location, in.Configuration, in.MarketingChannels, in.SellUnits, in.Duration)
}
