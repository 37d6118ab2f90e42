package timeentry

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"timetracker/models"
)

// Store is the persistence the service needs.
type Store interface {
	SumHoursForDate(ctx context.Context, date models.Date) (int, error)
	Insert(ctx context.Context, entry *models.TimeEntry) error
	List(ctx context.Context) ([]models.TimeEntry, error)
}

// GormStore keeps time entries in a single table through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SumHoursForDate(ctx context.Context, date models.Date) (int, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.TimeEntry{}).
		Where("entry_date = ?", date).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum hours for %s: %w", date, err)
	}
	return int(total), nil
}

func (s *GormStore) Insert(ctx context.Context, entry *models.TimeEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}
	if err := s.db.WithContext(ctx).
		Order("entry_date DESC, created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return entries, nil
}

var _ Store = (*GormStore)(nil)
