package utils

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2026-03-02 17:30:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Hour() != 17 || parsed.Minute() != 30 || parsed.Second() != 45 {
		t.Fatalf("unexpected time: %v", parsed)
	}

	if _, err := ParseDateTime("2026-03-02T17:30:45"); err == nil {
		t.Fatal("ISO input must not match the space-separated layout")
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(time.Date(2024, 2, 15, 10, 0, 0, 0, time.Local))
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start: %v", start)
	}
	// 闰年二月，窗口终点为 2 月 29 日 23:59:59
	if !end.Equal(time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)) {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestTruncatedHours(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want float64
	}{
		{9*time.Hour + 30*time.Minute, 9.5},
		{9*time.Hour + 30*time.Minute + 59*time.Second, 9.5},
		{59 * time.Second, 0},
		{0, 0},
	}
	for _, c := range cases {
		if got := TruncatedHours(c.d); got != c.want {
			t.Fatalf("TruncatedHours(%v): expected %v, got %v", c.d, c.want, got)
		}
	}
}
