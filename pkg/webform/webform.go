// Package webform mirrors the entry rules for the HTML form, reporting every field
// that needs attention instead of stopping at the first one.
package webform

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"timetracker/pkg/timeentry"
)

// Form is the raw form post.
type Form struct {
	Date            string
	Project         string
	Hours           string
	WorkDescription string
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Validate checks every field of f. The result is empty when the form can be submitted.
func Validate(f Form, projects []string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Date) == "" {
		errs["date"] = "Date is required"
	} else if _, err := timeentry.ParseEntryDate(f.Date); err != nil {
		errs["date"] = timeentry.MsgInvalidDate
	}

	if f.Project == "" || (len(projects) > 0 && !slices.Contains(projects, f.Project)) {
		errs["project"] = "Project is required"
	}

	if strings.TrimSpace(f.Hours) == "" {
		errs["hours"] = "Hours is required"
	} else if h, err := strconv.ParseFloat(strings.TrimSpace(f.Hours), 64); err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		errs["hours"] = "Hours is required"
	} else if h <= 0 {
		errs["hours"] = "Hours must be a positive number"
	} else if h > timeentry.MaxHoursPerEntry {
		errs["hours"] = "Hours cannot exceed 24 per day"
	}

	if strings.TrimSpace(f.WorkDescription) == "" {
		errs["workDescription"] = "Work description cannot be empty"
	}
	return errs
}

// Input converts a form that passed Validate into a service request. The description
// is trimmed, as the form shows it.
func (f Form) Input() timeentry.CreateInput {
	in := timeentry.CreateInput{
		Date:            strings.TrimSpace(f.Date),
		Project:         f.Project,
		WorkDescription: strings.TrimSpace(f.WorkDescription),
	}
	if h, err := strconv.ParseFloat(strings.TrimSpace(f.Hours), 64); err == nil {
		in.Hours = &h
	}
	return in
}
