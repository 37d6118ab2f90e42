package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateScan(t *testing.T) {
	cases := []any{
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		"2024-01-03",
		"2024-01-03T00:00:00Z",
		[]byte("2024-01-03"),
	}
	for _, src := range cases {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("scan %T: %v", src, err)
		}
		if d.String() != "2024-01-03" {
			t.Fatalf("scan %T = %s", src, d)
		}
	}
	var d Date
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
	if err := d.Scan("03/01/2024"); err == nil {
		t.Fatalf("expected error scanning non-ISO string")
	}
}

func TestDateValueAndJSON(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 9}
	v, err := d.Value()
	if err != nil || v != "2024-03-09" {
		t.Fatalf("value = %v,%v", v, err)
	}
	b, _ := json.Marshal(d)
	if string(b) != `"2024-03-09"` {
		t.Fatalf("marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil || back != d {
		t.Fatalf("unmarshal = %v,%v", back, err)
	}
	if b, _ := json.Marshal(Date{}); string(b) != "null" {
		t.Fatalf("zero date should marshal as null, got %s", b)
	}
}

func TestDateBefore(t *testing.T) {
	a := Date{Year: 2023, Month: time.December, Day: 31}
	b := Date{Year: 2024, Month: time.January, Day: 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("Before ordering is wrong")
	}
}
