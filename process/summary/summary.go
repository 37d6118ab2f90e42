// Package summary logs a periodic digest of tracked hours.
package summary

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"timetracker/models"
	"timetracker/pkg/dashboard"
)

// Lister is the part of the entry service the digest reads from.
type Lister interface {
	List(ctx context.Context) ([]models.TimeEntry, error)
}

// Digest is the day total for a given date plus the overall total.
type Digest struct {
	Date       models.Date
	DayTotal   int
	DayEntries int
	GrandTotal int
	Days       int
}

func (d Digest) String() string {
	return fmt.Sprintf("daily summary %s: %s across %d entries; %s over %d days",
		d.Date, dashboard.HoursLabel(d.DayTotal), d.DayEntries, dashboard.HoursLabel(d.GrandTotal), d.Days)
}

// Build computes the digest for day from the full entry list.
func Build(ctx context.Context, svc Lister, day models.Date) (Digest, error) {
	entries, err := svc.List(ctx)
	if err != nil {
		return Digest{}, err
	}
	d := Digest{Date: day, GrandTotal: dashboard.GrandTotal(entries)}
	groups := dashboard.Group(entries)
	d.Days = len(groups)
	for _, g := range groups {
		if g.Date == day {
			d.DayTotal = g.TotalHours
			d.DayEntries = len(g.Entries)
			break
		}
	}
	return d, nil
}

// Scheduler runs the digest on a cron spec (with a seconds field).
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, svc Lister) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithSeconds())
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d, err := Build(ctx, svc, models.DateOf(time.Now().UTC()))
		if err != nil {
			log.Printf("summary: %v", err)
			return
		}
		log.Println(d)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_CRON %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
