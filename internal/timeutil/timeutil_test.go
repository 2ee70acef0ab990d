// ABOUTME: Tests for time utility functions
// ABOUTME: Verifies bin floor calculations and date argument parsing

package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 17, 42, 9, 123, time.UTC)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			// 2026-03-18 is a Wednesday
			name: "midweek",
			in:   time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday floors to itself",
			in:   time.Date(2026, 3, 16, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			// Sunday belongs to the week that started the previous Monday
			name: "sunday",
			in:   time.Date(2026, 3, 22, 1, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2026, 3, 15, 17, 42, 0, 0, time.UTC)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := StartOfMonth(in); !got.Equal(want) {
		t.Errorf("StartOfMonth(%v) = %v, want %v", in, got, want)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(2026-03-15) = %v, want %v", got, want)
	}

	got, err = ParseDate("2026-03-15T09:30:00Z")
	if err != nil {
		t.Fatalf("ParseDate RFC3339 failed: %v", err)
	}
	want = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate RFC3339 = %v, want %v", got, want)
	}

	if _, err := ParseDate("March 15th"); err == nil {
		t.Error("expected error for unrecognized date format")
	}
}
