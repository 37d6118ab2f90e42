package webform

import (
	"testing"

	"timetracker/pkg/timeentry"
)

func goodForm() Form {
	return Form{Date: "2024-01-03", Project: "Client A", Hours: "7.5", WorkDescription: "  standup and reviews "}
}

func TestValidateGoodForm(t *testing.T) {
	if errs := Validate(goodForm(), timeentry.DefaultProjects); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	errs := Validate(Form{}, timeentry.DefaultProjects)
	for _, field := range []string{"date", "project", "hours", "workDescription"} {
		if !errs.Has(field) {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
	if errs["date"] != "Date is required" || errs["hours"] != "Hours is required" {
		t.Fatalf("unexpected messages %v", errs)
	}
}

func TestValidateHoursMessages(t *testing.T) {
	cases := map[string]string{
		"abc":   "Hours is required",
		"0":     "Hours must be a positive number",
		"-2":    "Hours must be a positive number",
		"24.25": "Hours cannot exceed 24 per day",
		"24":    "",
		"0.25":  "",
	}
	for hours, want := range cases {
		f := goodForm()
		f.Hours = hours
		if got := Validate(f, timeentry.DefaultProjects)["hours"]; got != want {
			t.Fatalf("hours=%q: got %q want %q", hours, got, want)
		}
	}
}

func TestValidateDateAndProject(t *testing.T) {
	f := goodForm()
	f.Date = "03/01/2024"
	f.Project = "Unknown"
	errs := Validate(f, timeentry.DefaultProjects)
	if errs["date"] != timeentry.MsgInvalidDate {
		t.Fatalf("unexpected date error %q", errs["date"])
	}
	if errs["project"] != "Project is required" {
		t.Fatalf("unexpected project error %q", errs["project"])
	}
}

func TestInput(t *testing.T) {
	in := goodForm().Input()
	if in.Hours == nil || *in.Hours != 7.5 {
		t.Fatalf("hours not carried over: %v", in.Hours)
	}
	if in.WorkDescription != "standup and reviews" {
		t.Fatalf("description not trimmed: %q", in.WorkDescription)
	}
	if err := timeentry.Validate(in, timeentry.DefaultProjects); err != nil {
		t.Fatalf("a valid form must produce a valid input, got %q", err.Message)
	}
}
