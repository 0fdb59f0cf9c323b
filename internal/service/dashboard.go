package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/models"

	"github.com/rs/zerolog"
)

// Dashboard keeps the latest calendar counts per company and month. A refresh
// that was started before a newer refresh, or before a reservation change,
// is discarded instead of committed.
type Dashboard struct {
	reservations domain.ReservationService
	gens         *Generations
	loc          *time.Location
	ttl          time.Duration
	now          func() time.Time
	logger       *zerolog.Logger

	mu     sync.RWMutex
	months map[string]monthSnapshot
	subs   []*events.Subscription
}

type monthSnapshot struct {
	counts    models.MonthlyCounts
	fetchedAt time.Time
}

// NewDashboard builds the snapshot store. Snapshots older than ttl are
// refetched by Counts; a zero ttl keeps them until a reservation event.
func NewDashboard(reservations domain.ReservationService, bus domain.EventSubscriber, loc *time.Location, ttl time.Duration, logger *zerolog.Logger) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	d := &Dashboard{
		reservations: reservations,
		gens:         NewGenerations(),
		loc:          loc,
		ttl:          ttl,
		now:          time.Now,
		logger:       nopLogger(logger),
		months:       make(map[string]monthSnapshot),
	}
	if bus != nil {
		d.subs = append(d.subs,
			bus.Subscribe(events.EventReservationStatusChanged, d.onReservationChanged),
			bus.Subscribe(events.EventReservationCancelled, d.onReservationChanged),
		)
	}
	return d
}

// RefreshMonth fetches the month containing anchor and stores it unless a
// newer generation has started meanwhile. The caller always gets the counts
// it fetched.
func (d *Dashboard) RefreshMonth(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	if !company.HasCompany() {
		return d.reservations.GetMonthlyReservations(ctx, anchor, company)
	}

	key := monthKey(company.CompanyID, anchor.In(d.loc))
	token := d.gens.Begin(key)
	counts := d.reservations.GetMonthlyReservations(ctx, anchor, company)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.gens.IsCurrent(key, token) {
		d.logger.Debug().Str("month", key).Msg("discarding superseded calendar refresh")
		return counts
	}
	d.months[key] = monthSnapshot{counts: counts, fetchedAt: d.now()}
	return counts
}

// Counts serves the calendar from the stored snapshot and refreshes it when
// it is missing, invalidated or expired.
func (d *Dashboard) Counts(ctx context.Context, anchor time.Time, company *models.CompanyContext) models.MonthlyCounts {
	if company.HasCompany() {
		if counts, ok := d.Month(company.CompanyID, anchor); ok {
			return counts
		}
	}
	return d.RefreshMonth(ctx, anchor, company)
}

// Month returns the stored snapshot if it has not expired.
func (d *Dashboard) Month(companyID int64, anchor time.Time) (models.MonthlyCounts, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap, ok := d.months[monthKey(companyID, anchor.In(d.loc))]
	if !ok || (d.ttl > 0 && d.now().Sub(snap.fetchedAt) >= d.ttl) {
		return nil, false
	}
	return snap.counts, true
}

// Close ends the event subscriptions.
func (d *Dashboard) Close() {
	for _, s := range d.subs {
		s.Unsubscribe()
	}
}

func (d *Dashboard) onReservationChanged(event *events.Event) error {
	var payload events.ReservationEventPayload
	if err := event.Decode(&payload); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if payload.CompanyID == 0 {
		d.gens.InvalidateAll()
		d.months = make(map[string]monthSnapshot)
		return nil
	}

	prefix := fmt.Sprintf("%d:", payload.CompanyID)
	for key := range d.months {
		if strings.HasPrefix(key, prefix) {
			delete(d.months, key)
		}
	}
	d.gens.InvalidatePrefix(prefix)
	return nil
}

func monthKey(companyID int64, t time.Time) string {
	return fmt.Sprintf("%d:%s", companyID, t.Format("2006-01"))
}
