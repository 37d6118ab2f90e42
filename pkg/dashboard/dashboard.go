// Package dashboard turns the flat entry list into the day-grouped, paginated view
// shown on the dashboard.
package dashboard

import (
	"fmt"
	"sort"

	"timetracker/models"
)

// PageSize is the number of date groups per page.
const PageSize = 5

// DateGroup is every entry that shares one calendar date.
type DateGroup struct {
	Date       models.Date        `json:"date"`
	Label      string             `json:"label"`
	TotalHours int                `json:"totalHours"`
	Entries    []models.TimeEntry `json:"entries"`
}

// View is one page of the dashboard.
type View struct {
	Groups     []DateGroup `json:"groups"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	GrandTotal int         `json:"grandTotal"`
	EntryCount int         `json:"entryCount"`
}

// Build groups entries by date, newest date first, and returns the requested page.
// Out of range pages are clamped. The grand total covers all entries, not just the page.
func Build(entries []models.TimeEntry, page int) View {
	groups := Group(entries)
	v := View{
		GrandTotal: GrandTotal(entries),
		EntryCount: len(entries),
		TotalPages: (len(groups) + PageSize - 1) / PageSize,
	}
	v.Page = clampPage(page, v.TotalPages)
	v.Groups = Paginate(groups, v.Page)
	if v.Groups == nil {
		v.Groups = []DateGroup{}
	}
	return v
}

// Group buckets entries by their calendar date. Entries keep their input order within a
// group; groups are sorted newest date first.
func Group(entries []models.TimeEntry) []DateGroup {
	index := make(map[models.Date]int)
	var groups []DateGroup
	for _, e := range entries {
		i, ok := index[e.EntryDate]
		if !ok {
			i = len(groups)
			index[e.EntryDate] = i
			groups = append(groups, DateGroup{Date: e.EntryDate, Label: FormatDate(e.EntryDate)})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].TotalHours += e.Hours
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[b].Date.Before(groups[a].Date)
	})
	return groups
}

// Paginate returns the groups on the 1-based page. Groups are never split.
func Paginate(groups []DateGroup, page int) []DateGroup {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(groups) {
		return nil
	}
	end := min(start+PageSize, len(groups))
	return groups[start:end]
}

func GrandTotal(entries []models.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

func clampPage(page, totalPages int) int {
	if page < 1 || totalPages == 0 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// Paginated reports whether the page controls should be shown at all.
func (v View) Paginated() bool { return v.TotalPages > 1 }

// Pages lists the page numbers 1..TotalPages.
func (v View) Pages() []int {
	pages := make([]int, v.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// FormatDate renders d for display, e.g. "Jan 3, 2024". It is a label only and is never
// used to compare or group dates.
func FormatDate(d models.Date) string {
	return d.Time().Format("Jan 2, 2006")
}

// HoursLabel renders "1 hour" or "N hours".
func HoursLabel(n int) string {
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}
