package cmd

import (
	"testing"
	"time"

	"github.com/corfou/ledger/date"
)

func TestParseDimension(t *testing.T) {
	for _, name := range []string{"category", "top-category", "type", "asset", "Category"} {
		if _, err := parseDimension(name); err != nil {
			t.Errorf("parseDimension(%q) error = %v", name, err)
		}
	}
	if _, err := parseDimension("mood"); err == nil {
		t.Error("parseDimension(mood) accepted")
	}
}

func TestParseWeekday(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Weekday
	}{
		{"monday", time.Monday},
		{"Sunday", time.Sunday},
		{"SATURDAY", time.Saturday},
	}
	for _, tc := range testCases {
		got, err := parseWeekday(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("parseWeekday(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := parseWeekday("someday"); err == nil {
		t.Error("parseWeekday(someday) accepted")
	}
}

func TestRangeFromFlags(t *testing.T) {
	r, err := rangeFromFlags("", "2025-01-01", "2025-03-31")
	if err != nil {
		t.Fatal(err)
	}
	want := date.NewRange(date.MustParse("2025-01-01"), date.MustParse("2025-03-31"))
	if r != want {
		t.Errorf("rangeFromFlags() = %v, want %v", r, want)
	}

	r, err = rangeFromFlags("monthly", "", "2025-08-14")
	if err != nil {
		t.Fatal(err)
	}
	if r.From != date.MustParse("2025-08-01") || r.To != date.MustParse("2025-08-31") {
		t.Errorf("monthly range = %v", r)
	}

	if _, err := rangeFromFlags("eon", "", ""); err == nil {
		t.Error("rangeFromFlags accepted an unknown period")
	}
}
