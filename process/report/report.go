// Package report builds month-bounded hour totals per project straight from the database.
package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"timetracker/models"
)

// ProjectTotal is the hours booked on one project within the month.
type ProjectTotal struct {
	Project string
	Entries int64
	Hours   int64
}

// Month is the report for one calendar month. End is exclusive.
type Month struct {
	Start    models.Date
	End      models.Date
	Projects []ProjectTotal
	Entries  int64
	Hours    int64
	Rows     []models.TimeEntry
}

// ParseMonth turns YYYY-MM into the [start, end) date range of that month.
func ParseMonth(month string) (models.Date, models.Date, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return models.Date{}, models.Date{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return models.DateOf(start), models.DateOf(start.AddDate(0, 1, 0)), nil
}

// Build aggregates time_entries for month (YYYY-MM). With list set the matching rows are
// loaded as well, oldest first.
func Build(ctx context.Context, db *gorm.DB, month string, list bool) (Month, error) {
	start, end, err := ParseMonth(month)
	if err != nil {
		return Month{}, err
	}
	rep := Month{Start: start, End: end}

	q := db.WithContext(ctx).Model(&models.TimeEntry{}).
		Where("entry_date >= ? AND entry_date < ?", start, end)
	if err := q.Select("project, COUNT(*) AS entries, COALESCE(SUM(hours), 0) AS hours").
		Group("project").Order("hours DESC, project").
		Scan(&rep.Projects).Error; err != nil {
		return Month{}, fmt.Errorf("report totals: %w", err)
	}
	for _, p := range rep.Projects {
		rep.Entries += p.Entries
		rep.Hours += p.Hours
	}

	if list {
		if err := db.WithContext(ctx).
			Where("entry_date >= ? AND entry_date < ?", start, end).
			Order("entry_date, created_at, id").
			Find(&rep.Rows).Error; err != nil {
			return Month{}, fmt.Errorf("report rows: %w", err)
		}
	}
	return rep, nil
}

// Print writes rep in the plain layout used by ttctl.
func Print(w io.Writer, rep Month) {
	fmt.Fprintf(w, "Report for %s .. %s (exclusive):\n", rep.Start, rep.End)
	fmt.Fprintf(w, "  entries=%d total_hours=%d\n", rep.Entries, rep.Hours)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range rep.Projects {
		fmt.Fprintf(tw, "  %s\t%d\t%d entries\n", p.Project, p.Hours, p.Entries)
	}
	tw.Flush()
	for _, r := range rep.Rows {
		fmt.Fprintf(w, "%d|%s|%s|%d|%s\n", r.ID, r.EntryDate, r.Project, r.Hours, r.CreatedAt.Format(time.RFC3339))
	}
}
