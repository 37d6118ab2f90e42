package timeentry

import (
	"math"
	"testing"

	"timetracker/models"
)

func hoursPtr(h float64) *float64 { return &h }

func validInput(h float64) CreateInput {
	return CreateInput{
		Date:            "2024-01-03T10:00:00.000Z",
		Project:         "Client A",
		Hours:           hoursPtr(h),
		WorkDescription: "API work",
	}
}

func TestValidateAcceptsHoursUpTo24(t *testing.T) {
	for _, h := range []float64{0.25, 0.5, 1, 2.6, 7.75, 23.9, 24, 24.4} {
		if err := Validate(validInput(h), DefaultProjects); err != nil {
			t.Fatalf("hours=%v: unexpected error %q", h, err.Message)
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := map[string]func(*CreateInput){
		"date":        func(in *CreateInput) { in.Date = "" },
		"project":     func(in *CreateInput) { in.Project = "" },
		"hours":       func(in *CreateInput) { in.Hours = nil },
		"description": func(in *CreateInput) { in.WorkDescription = "   " },
	}
	for name, mutate := range cases {
		in := validInput(4)
		mutate(&in)
		err := Validate(in, DefaultProjects)
		if err == nil || err.Message != MsgRequired {
			t.Fatalf("%s missing: got %v want %q", name, err, MsgRequired)
		}
	}
}

func TestValidateHoursPositive(t *testing.T) {
	for _, h := range []float64{0, -1, -0.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Validate(validInput(h), DefaultProjects)
		if err == nil || err.Message != MsgHoursPositive {
			t.Fatalf("hours=%v: got %v want %q", h, err, MsgHoursPositive)
		}
	}
}

func TestValidateSingleEntryCap(t *testing.T) {
	for _, h := range []float64{24.5, 25, 100, 1e300} {
		err := Validate(validInput(h), DefaultProjects)
		if err == nil || err.Message != MsgHoursEntryCap {
			t.Fatalf("hours=%v: got %v want %q", h, err, MsgHoursEntryCap)
		}
	}
}

func TestValidateOrderShortCircuits(t *testing.T) {
	// hours cap is reported before a bad date
	in := validInput(30)
	in.Date = "not a date"
	if err := Validate(in, DefaultProjects); err == nil || err.Message != MsgHoursEntryCap {
		t.Fatalf("got %v want %q", err, MsgHoursEntryCap)
	}
}

func TestValidateDate(t *testing.T) {
	for _, d := range []string{"2024-13-01", "yesterday", "2024/01/03", "2024-02-30"} {
		in := validInput(2)
		in.Date = d
		if err := Validate(in, DefaultProjects); err == nil || err.Message != MsgInvalidDate {
			t.Fatalf("date=%q: got %v want %q", d, err, MsgInvalidDate)
		}
	}
}

func TestValidateProject(t *testing.T) {
	in := validInput(2)
	in.Project = "Side Hustle"
	if err := Validate(in, DefaultProjects); err == nil || err.Message != MsgUnknownProject {
		t.Fatalf("got %v want %q", err, MsgUnknownProject)
	}
	if err := Validate(in, nil); err != nil {
		t.Fatalf("empty project set should accept any project, got %q", err.Message)
	}
}

func TestRoundHours(t *testing.T) {
	cases := map[float64]int{0.4: 0, 0.5: 1, 2.4: 2, 2.5: 3, 2.6: 3, 23.5: 24}
	for in, want := range cases {
		if got := RoundHours(in); got != want {
			t.Fatalf("RoundHours(%v) = %d want %d", in, got, want)
		}
	}
}

func TestParseEntryDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-03":                "2024-01-03",
		"2024-01-03T23:30:00Z":      "2024-01-03",
		"2024-01-03T23:30:00-02:00": "2024-01-04",
		"2024-01-03T01:00:00+03:00": "2024-01-02",
		"2024-01-03T08:15:00":       "2024-01-03",
		"2024-01-03T08:15:00.123Z":  "2024-01-03",
	}
	for in, want := range cases {
		got, err := ParseEntryDate(in)
		if err != nil {
			t.Fatalf("ParseEntryDate(%q): %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("ParseEntryDate(%q) = %s want %s", in, got, want)
		}
	}
	if _, err := ParseEntryDate(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
	var zero models.Date
	if !zero.IsZero() {
		t.Fatalf("zero date should report IsZero")
	}
}
