package timeentry

import (
	"math"
	"slices"
	"strings"
	"time"

	"timetracker/models"
)

const (
	// MaxHoursPerEntry caps a single entry after rounding.
	MaxHoursPerEntry = 24
	// MaxHoursPerDay caps the sum of all entries sharing a calendar date.
	MaxHoursPerDay = 24
)

const (
	MsgRequired       = "All fields are required."
	MsgHoursPositive  = "Hours must be a positive number."
	MsgHoursEntryCap  = "Hours for a single entry cannot exceed 24."
	MsgInvalidDate    = "Invalid date format."
	MsgUnknownProject = "Unknown project."
)

// DefaultProjects is the project set offered by the entry form.
var DefaultProjects = []string{
	"Viso Internal",
	"Client A",
	"Client B",
	"Personal Development",
}

// CreateInput is the raw creation request. A nil Hours means the field was absent;
// a non-numeric value should be passed as NaN.
type CreateInput struct {
	Date            string   `json:"date"`
	Project         string   `json:"project"`
	Hours           *float64 `json:"hours"`
	WorkDescription string   `json:"workDescription"`
}

// Validate checks in against the field rules and returns the first failure, or nil.
// An empty projects list disables the project membership check.
func Validate(in CreateInput, projects []string) *ValidationError {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Project) == "" ||
		in.Hours == nil || strings.TrimSpace(in.WorkDescription) == "" {
		return invalid(MsgRequired)
	}
	h := *in.Hours
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return invalid(MsgHoursPositive)
	}
	if math.Floor(h+0.5) > MaxHoursPerEntry {
		return invalid(MsgHoursEntryCap)
	}
	if _, err := ParseEntryDate(in.Date); err != nil {
		return invalid(MsgInvalidDate)
	}
	if len(projects) > 0 && !slices.Contains(projects, in.Project) {
		return invalid(MsgUnknownProject)
	}
	return nil
}

// RoundHours rounds to the nearest whole hour, halves rounding up.
func RoundHours(h float64) int {
	return int(math.Floor(h + 0.5))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	models.DateLayout,
}

// ParseEntryDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD and returns the
// calendar date of the instant in UTC.
func ParseEntryDate(s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return models.DateOf(t.UTC()), nil
		}
		lastErr = err
	}
	return models.Date{}, lastErr
}
