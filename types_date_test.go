package taxes

import (
	"testing"
	"time"
)

func TestParseDate_Formats(t *testing.T) {
	want := NewDate(2024, time.March, 5)
	testCases := []string{
		"2024-03-05",
		"05-Mar-2024",
		"20240305",
		"5.3.2024",
		"2024/03/05",
		"05/03/2024",
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tc, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"garbage", "not-a-date"},
		{"empty", ""},
		{"future", Today().Add(30).String()},
		{"before 1990", "1989-12-31"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDate(tc.in); err == nil {
				t.Errorf("ParseDate(%q) succeeded, want error", tc.in)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.January, 2)
	b := NewDate(2024, time.January, 3)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() is inconsistent for %s and %s", a, b)
	}
	if !b.After(a) {
		t.Errorf("After() is inconsistent for %s and %s", a, b)
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare() of a date with itself = %d, want 0", a.Compare(a))
	}
}

func TestDate_AddNormalizes(t *testing.T) {
	got := NewDate(2024, time.January, 31).Add(1)
	want := NewDate(2024, time.February, 1)
	if got != want {
		t.Errorf("Add(1) = %s, want %s", got, want)
	}
}
