package timeutil

import (
	"testing"
	"time"
)

func TestNormalizeToUTCDate(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midday utc",
			time.Date(2025, time.March, 14, 13, 45, 12, 999, time.UTC),
			time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"already midnight",
			time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc location crosses date line",
			time.Date(2025, time.March, 14, 1, 30, 0, 0, time.FixedZone("CST", 8*3600)),
			time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeToUTCDate(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []time.Time{
		time.Now(),
		time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, time.June, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600)),
	} {
		once := NormalizeToUTCDate(in)
		twice := NormalizeToUTCDate(once)
		if !once.Equal(twice) {
			t.Fatalf("not idempotent for %v: %v != %v", in, once, twice)
		}
	}
}

func TestDaysBetweenAddDaysRoundTrip(t *testing.T) {
	day := time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{-365, -30, -1, 0, 1, 2, 28, 365} {
		if got := DaysBetween(day, AddDays(day, n)); got != n {
			t.Fatalf("DaysBetween(day, AddDays(day, %d)) = %d", n, got)
		}
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, time.May, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, time.May, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("want 1 day across midnight, got %d", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Fatalf("want -1 day reversed, got %d", got)
	}
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	day := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)
	got := AddDays(day, 2)
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("leap-year carry: want %v, got %v", want, got)
	}
}
