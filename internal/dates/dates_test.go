package dates

import (
	"errors"
	"testing"
	"time"
)

var anchor = time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC) // a Monday

func TestParseTokenExplicitDate(t *testing.T) {
	ref, err := ParseToken("@2024-06-15", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != Day || ref.Form != ExplicitDate {
		t.Fatalf("wrong kind/form: %v/%v", ref.Kind, ref.Form)
	}
	if FormatDateISO(ref.Date) != "2024-06-15" {
		t.Fatalf("expected 2024-06-15, got %s", FormatDateISO(ref.Date))
	}

	// Explicit dates never roll, even when in the past.
	ref, err = ParseToken("@2020-01-01", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDateISO(ref.Date) != "2020-01-01" {
		t.Fatalf("expected 2020-01-01, got %s", FormatDateISO(ref.Date))
	}
}

func TestParseTokenDayOnlyForwardRoll(t *testing.T) {
	// Same month, no roll needed.
	ref, err := ParseToken("@15", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDateISO(ref.Date) != "2024-06-15" {
		t.Fatalf("expected 2024-06-15, got %s", FormatDateISO(ref.Date))
	}

	// Past day of month rolls to next month.
	ref, err = ParseToken("@05", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDateISO(ref.Date) != "2024-07-05" {
		t.Fatalf("expected 2024-07-05, got %s", FormatDateISO(ref.Date))
	}

	// Today itself does not roll.
	ref, err = ParseToken("@10", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDateISO(ref.Date) != "2024-06-10" {
		t.Fatalf("expected 2024-06-10, got %s", FormatDateISO(ref.Date))
	}

	// Day 31 skips months without one.
	ref, err = ParseToken("@31", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDateISO(ref.Date) != "2024-07-31" {
		t.Fatalf("expected 2024-07-31, got %s", FormatDateISO(ref.Date))
	}
}

func TestParseTokenMonthDayForwardRoll(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{"@06-15", "2024-06-15"}, // future this year
		{"@06-10", "2024-06-10"}, // today
		{"@01-05", "2025-01-05"}, // past, rolls a year
		{"@02-29", "2028-02-29"}, // leap day rolls to next leap year
	}
	for _, tc := range cases {
		ref, err := ParseToken(tc.token, anchor)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.token, err)
		}
		if got := FormatDateISO(ref.Date); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.token, tc.want, got)
		}
	}
}

func TestParseTokenWeeks(t *testing.T) {
	ref, err := ParseToken("@2024-W24", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != Week || ref.ISOYear != 2024 || ref.ISOWeek != 24 {
		t.Fatalf("wrong week ref: %+v", ref)
	}
	// Week 24 of 2024 starts Monday June 10.
	if FormatDateISO(ref.Date) != "2024-06-10" {
		t.Fatalf("expected Monday 2024-06-10, got %s", FormatDateISO(ref.Date))
	}

	ref, err = ParseToken("@W01", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ISOYear != 2024 || ref.ISOWeek != 1 {
		t.Fatalf("expected 2024-W01, got %s", FormatWeekKey(ref.ISOYear, ref.ISOWeek))
	}
	// ISO week 1 of 2024 starts Monday 2024-01-01.
	if FormatDateISO(ref.Date) != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", FormatDateISO(ref.Date))
	}
}

func TestParseTokenRelative(t *testing.T) {
	ref, err := ParseToken("@tomorrow", anchor)
	if err != nil || FormatDateISO(ref.Date) != "2024-06-11" {
		t.Fatalf("expected 2024-06-11, got %v err=%v", ref.Date, err)
	}
	if ref.Form != RelativeDay {
		t.Fatalf("expected RelativeDay form, got %v", ref.Form)
	}

	ref, err = ParseToken("@next-week", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Kind != Week || ref.ISOWeek != 25 {
		t.Fatalf("expected week 25, got %+v", ref)
	}
}

func TestParseTokenInvalid(t *testing.T) {
	invalid := []string{
		"",
		"2024-06-15", // no @
		"@2024-13-40",
		"@2024-02-30",
		"@13-01",
		"@0",
		"@32",
		"@2024-W54",
		"@W00",
		"@banana",
		"@2024-06-15T10:00",
	}
	for _, token := range invalid {
		if _, err := ParseToken(token, anchor); !errors.Is(err, ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference for %q, got %v", token, err)
		}
	}
}

func TestParseArg(t *testing.T) {
	ref, err := ParseArg("", anchor)
	if err != nil || FormatDateISO(ref.Date) != "2024-06-10" {
		t.Fatalf("empty arg should default to today, got %v err=%v", ref.Date, err)
	}

	// Bare keywords and bare tokens get the @ prefix added.
	ref, err = ParseArg("yesterday", anchor)
	if err != nil || FormatDateISO(ref.Date) != "2024-06-09" {
		t.Fatalf("expected 2024-06-09, got %v err=%v", ref.Date, err)
	}
	ref, err = ParseArg("2024-W02", anchor)
	if err != nil || ref.ISOWeek != 2 {
		t.Fatalf("expected week 2, got %+v err=%v", ref, err)
	}
}

func TestISOWeekStart(t *testing.T) {
	cases := []struct {
		year, week int
		want       string
	}{
		{2024, 1, "2024-01-01"},
		{2024, 24, "2024-06-10"},
		{2021, 1, "2021-01-04"},  // 2021-01-01 is a Friday, week 1 starts the 4th
		{2020, 53, "2020-12-28"}, // 53-week year
	}
	for _, tc := range cases {
		got := FormatDateISO(ISOWeekStart(tc.year, tc.week))
		if got != tc.want {
			t.Fatalf("ISOWeekStart(%d, %d) = %s, want %s", tc.year, tc.week, got, tc.want)
		}
	}
}

func TestWeeksInISOYear(t *testing.T) {
	if WeeksInISOYear(2020) != 53 {
		t.Fatalf("2020 should have 53 ISO weeks")
	}
	if WeeksInISOYear(2024) != 52 {
		t.Fatalf("2024 should have 52 ISO weeks")
	}
}
