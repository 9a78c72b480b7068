package ingest

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"iso date", "2024-03-15", datePtr(2024, 3, 15)},
		{"iso datetime", "2024-03-15T14:30:00", datePtr(2024, 3, 15)},
		{"portuguese order", "15-03-2024", datePtr(2024, 3, 15)},
		{"zero sentinel", "0001-01-01T00:00:00", nil},
		{"empty", "", nil},
		{"garbage", "not a date", nil},
		{"whitespace", "  2024-03-15  ", datePtr(2024, 3, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDate(tc.in)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if got != nil {
				gy, gm, gd := got.Date()
				wy, wm, wd := tc.want.Date()
				if gy != wy || gm != wm || gd != wd {
					t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
				}
			}
		})
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("short string changed: %q", got)
	}
	if got := Truncate(strings.Repeat("x", 5001), 5000); len(got) != 5000 {
		t.Fatalf("want 5000 chars, got %d", len(got))
	}
	// Truncation counts runes, not bytes.
	if got := Truncate("ééééé", 3); got != "ééé" {
		t.Fatalf("rune truncation wrong: %q", got)
	}
}
