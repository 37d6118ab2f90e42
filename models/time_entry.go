package models

import "time"

// TimeEntry is one record of hours worked on a project on a given date.
// Entries are only ever inserted; there is no update or delete path.
type TimeEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntryDate   Date      `gorm:"type:date;not null;index" json:"entryDate"`
	Project     string    `gorm:"size:255;not null" json:"project"`
	Hours       int       `gorm:"not null" json:"hours"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
}

// TableName keeps the table name stable regardless of the struct name.
func (TimeEntry) TableName() string { return "time_entries" }
