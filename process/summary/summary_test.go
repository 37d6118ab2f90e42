package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"timetracker/models"
)

type staticLister struct {
	entries []models.TimeEntry
	err     error
}

func (s staticLister) List(context.Context) ([]models.TimeEntry, error) { return s.entries, s.err }

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildDigest(t *testing.T) {
	svc := staticLister{entries: []models.TimeEntry{
		{ID: 3, EntryDate: day("2024-01-03"), Hours: 3},
		{ID: 2, EntryDate: day("2024-01-03"), Hours: 4},
		{ID: 1, EntryDate: day("2024-01-01"), Hours: 5},
	}}
	d, err := Build(context.Background(), svc, day("2024-01-03"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.DayTotal != 7 || d.DayEntries != 2 || d.GrandTotal != 12 || d.Days != 2 {
		t.Fatalf("unexpected digest %+v", d)
	}
	if s := d.String(); !strings.Contains(s, "7 hours across 2 entries") || !strings.Contains(s, "12 hours over 2 days") {
		t.Fatalf("unexpected digest line %q", s)
	}

	empty, err := Build(context.Background(), svc, day("2024-01-02"))
	if err != nil || empty.DayTotal != 0 || empty.DayEntries != 0 {
		t.Fatalf("day without entries: %+v %v", empty, err)
	}
}

func TestBuildDigestError(t *testing.T) {
	boom := errors.New("db down")
	if _, err := Build(context.Background(), staticLister{err: boom}, day("2024-01-01")); !errors.Is(err, boom) {
		t.Fatalf("expected list error got %v", err)
	}
}

func TestNewSchedulerValidatesSpec(t *testing.T) {
	if _, err := NewScheduler("not a cron spec", staticLister{}); err == nil {
		t.Fatalf("expected error for bad spec")
	}
	s, err := NewScheduler("0 0 18 * * *", staticLister{})
	if err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
}
