package timeentry

import (
	"context"
	"log"
	"time"

	"timetracker/models"
)

// Publisher is notified after an entry has been stored.
type Publisher interface {
	PublishEntryCreated(ctx context.Context, entry models.TimeEntry) error
}

// Service applies the entry rules on top of a Store.
type Service struct {
	store     Store
	projects  []string
	publisher Publisher
	now       func() time.Time
}

type Option func(*Service)

// WithProjects overrides the accepted project set.
func WithProjects(projects []string) Option {
	return func(s *Service) { s.projects = projects }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock replaces time.Now for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, projects: DefaultProjects, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Projects returns the accepted project set.
func (s *Service) Projects() []string { return s.projects }

// Create validates in, enforces the daily cap and stores a new entry.
//
// The cap check and the insert are separate statements, so two concurrent creates for
// the same date can together exceed MaxHoursPerDay.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.TimeEntry, error) {
	if verr := Validate(in, s.projects); verr != nil {
		return nil, verr
	}
	hours := RoundHours(*in.Hours)
	if hours < 1 {
		return nil, invalid(MsgHoursPositive)
	}
	date, err := ParseEntryDate(in.Date)
	if err != nil {
		return nil, invalid(MsgInvalidDate)
	}

	existing, err := s.store.SumHoursForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if existing+hours > MaxHoursPerDay {
		return nil, ErrDailyCapExceeded
	}

	entry := &models.TimeEntry{
		EntryDate:   date,
		Project:     in.Project,
		Hours:       hours,
		Description: in.WorkDescription,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEntryCreated(ctx, *entry); err != nil {
			log.Printf("publish entry %d: %v", entry.ID, err)
		}
	}
	return entry, nil
}

// List returns every entry, newest date first, then newest creation first.
func (s *Service) List(ctx context.Context) ([]models.TimeEntry, error) {
	return s.store.List(ctx)
}
