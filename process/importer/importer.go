// Package importer loads time entries from CSV files, either one file at a time or by
// watching a drop folder. Every row goes through the same service as the HTTP API.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"timetracker/models"
	"timetracker/pkg/timeentry"
)

// Creator is the part of the entry service the importer needs.
type Creator interface {
	Create(ctx context.Context, in timeentry.CreateInput) (*models.TimeEntry, error)
}

// RowError describes one CSV row that was not imported. Line is 1-based and counts the header.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type Result struct {
	Created []models.TimeEntry
	Failed  []RowError
}

var header = []string{"date", "project", "hours", "description"}

// ImportFile creates one entry per data row of the CSV at path.
func ImportFile(ctx context.Context, svc Creator, path string) (Result, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Import(ctx, svc, f)
}

// Import reads CSV rows with the header date,project,hours,description from r.
// Rejected rows are collected in Result.Failed; only a malformed file returns an error.
func Import(ctx context.Context, svc Creator, r io.Reader) (Result, error) {
	var res Result
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(first[i]), col) {
			return res, fmt.Errorf("unexpected header %v, want %v", first, header)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		in := timeentry.CreateInput{Date: rec[0], Project: rec[1], WorkDescription: rec[3]}
		if raw := strings.TrimSpace(rec[2]); raw != "" {
			h, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				res.Failed = append(res.Failed, RowError{Line: line, Message: timeentry.MsgHoursPositive})
				continue
			}
			in.Hours = &h
		}
		entry, err := svc.Create(ctx, in)
		if err != nil {
			var verr *timeentry.ValidationError
			if !errors.As(err, &verr) && !errors.Is(err, timeentry.ErrDailyCapExceeded) {
				return res, fmt.Errorf("line %d: %w", line, err)
			}
			res.Failed = append(res.Failed, RowError{Line: line, Message: err.Error()})
			continue
		}
		res.Created = append(res.Created, *entry)
	}
	return res, nil
}

// Watch imports every *.csv file that appears in dir until ctx is cancelled. Files must be
// complete when they appear (write elsewhere, then move them in). A processed file is
// renamed with a ".done" suffix, or ".failed" when it could not be read.
func Watch(ctx context.Context, dir string, svc Creator) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create import dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Printf("importer: watching %s for CSV files", dir)

	// files dropped before the watcher started
	if existing, err := filepath.Glob(filepath.Join(dir, "*.csv")); err == nil {
		for _, p := range existing {
			processFile(ctx, svc, p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) || !strings.EqualFold(filepath.Ext(ev.Name), ".csv") {
				continue
			}
			processFile(ctx, svc, ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("importer: watcher error: %v", err)
		}
	}
}

func processFile(ctx context.Context, svc Creator, path string) {
	if _, err := os.Stat(path); err != nil {
		// already renamed by an earlier event for the same file
		return
	}
	res, err := ImportFile(ctx, svc, path)
	suffix := ".done"
	if err != nil {
		suffix = ".failed"
		log.Printf("importer: %s: %v", filepath.Base(path), err)
	}
	for _, f := range res.Failed {
		log.Printf("importer: %s line %d: %s", filepath.Base(path), f.Line, f.Message)
	}
	log.Printf("importer: %s: %d created, %d rejected", filepath.Base(path), len(res.Created), len(res.Failed))
	if err := os.Rename(path, path+suffix); err != nil {
		log.Printf("importer: rename %s: %v", path, err)
	}
}
