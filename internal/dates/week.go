package dates

import (
	"fmt"
	"time"
)

// ISOWeekStart returns the Monday of the given ISO week at midnight UTC-less
// local semantics (zero clock, time.Local not applied; callers format only
// the calendar fields).
func ISOWeekStart(isoYear, isoWeek int) time.Time {
	// January 4 is always inside ISO week 1.
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -(mondayOffset(jan4.Weekday())))
	return monday.AddDate(0, 0, (isoWeek-1)*7)
}

// WeeksInISOYear returns 52 or 53.
func WeeksInISOYear(isoYear int) int {
	// December 28 is always inside the last ISO week of its year.
	_, w := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

func validateISOWeek(isoYear, isoWeek int) error {
	if isoWeek < 1 || isoWeek > WeeksInISOYear(isoYear) {
		return fmt.Errorf("week %d out of range for %d (1-%d)", isoWeek, isoYear, WeeksInISOYear(isoYear))
	}
	return nil
}

func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
