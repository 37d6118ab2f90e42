package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timetracker/models"
	"timetracker/pkg/dashboard"
)

func TestPrintReport(t *testing.T) {
	d1, _ := models.ParseDate("2024-01-03")
	d2, _ := models.ParseDate("2024-01-01")
	v := dashboard.Build([]models.TimeEntry{
		{ID: 2, EntryDate: d1, Project: "Client A", Hours: 3, Description: "api"},
		{ID: 1, EntryDate: d2, Project: "Client B", Hours: 1, Description: "call"},
	}, 1)

	var buf bytes.Buffer
	printReport(&buf, v)
	out := buf.String()
	for _, want := range []string{"Jan 3, 2024  (Total: 3 hours)", "Jan 1, 2024  (Total: 1 hour)", "Grand Total: 4 hours"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Jan 3") > strings.Index(out, "Jan 1") {
		t.Fatalf("newest date should be printed first:\n%s", out)
	}
}

func TestPrintReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, dashboard.Build(nil, 1))
	if !strings.Contains(buf.String(), "No time entries yet.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"token", "--username", "alice", "--ttl", "1h"})
	if err := root.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}
	if parts := strings.Split(strings.TrimSpace(buf.String()), "."); len(parts) != 3 {
		t.Fatalf("expected a JWT, got %q", buf.String())
	}
}

func TestImportAndReportCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", filepath.Join(dir, "tt.db"))
	t.Setenv("PROJECTS", "")

	run := func(args ...string) string {
		t.Helper()
		root := newRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return buf.String()
	}

	run("migrate")
	csvPath := filepath.Join(dir, "entries.csv")
	if err := os.WriteFile(csvPath, []byte("date,project,hours,description\n2024-01-03,Client A,2.6,api\n2024-01-03,Client A,30,too long\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if out := run("import", csvPath); !strings.Contains(out, "1 created, 1 rejected") {
		t.Fatalf("unexpected import output %q", out)
	}
	if out := run("report"); !strings.Contains(out, "Jan 3, 2024  (Total: 3 hours)") {
		t.Fatalf("unexpected report output %q", out)
	}
	if out := run("month", "2024-01"); !strings.Contains(out, "entries=1 total_hours=3") {
		t.Fatalf("unexpected month output %q", out)
	}
}
