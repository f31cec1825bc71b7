// Package dates parses the @-prefixed date and week shorthand used to
// target daily and weekly notes.
//
// This package exists to avoid duplicating token parsing logic across:
// - CLI date args (daily, weekly, append, read)
// - script-side vault operations (readSection, appendSection)
// - note path resolution
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidReference indicates a token that matches none of the
// recognized date/week grammars, or one with out-of-range components.
var ErrInvalidReference = errors.New("invalid date reference")

// Kind distinguishes day-keyed from week-keyed references.
type Kind int

const (
	Day Kind = iota
	Week
)

func (k Kind) String() string {
	if k == Week {
		return "week"
	}
	return "day"
}

// Form records which grammar produced a Reference.
type Form int

const (
	ExplicitDate Form = iota
	ExplicitWeek
	RelativeDay
	RelativeWeek
)

// Reference is a parsed date or week shorthand, anchored to a concrete
// calendar value at parse time. For Week references, Date is the Monday
// of the ISO week and ISOYear/ISOWeek identify it.
type Reference struct {
	Kind    Kind
	Form    Form
	Date    time.Time
	ISOYear int
	ISOWeek int
	Token   string
}

var (
	fullDateRe  = regexp.MustCompile(`^@(\d{4})-(\d{1,2})-(\d{1,2})$`)
	monthDayRe  = regexp.MustCompile(`^@(\d{1,2})-(\d{1,2})$`)
	dayOnlyRe   = regexp.MustCompile(`^@(\d{1,2})$`)
	fullWeekRe  = regexp.MustCompile(`^@(\d{4})-[Ww](\d{1,2})$`)
	weekOnlyRe  = regexp.MustCompile(`^@[Ww](\d{1,2})$`)
	relativeDay = map[string]int{"today": 0, "yesterday": -1, "tomorrow": 1}
	relativeWk  = map[string]int{"this-week": 0, "last-week": -1, "next-week": 1}
)

// ParseToken parses an @-prefixed date or week token relative to today.
//
// Grammars:
//   - @YYYY-MM-DD            explicit date
//   - @MM-DD                 nearest present-or-future occurrence
//   - @DD                    nearest present-or-future occurrence
//   - @YYYY-Www              explicit ISO week
//   - @Www                   ISO week in today's ISO year
//   - @today @yesterday @tomorrow
//   - @this-week @last-week @next-week
func ParseToken(token string, today time.Time) (Reference, error) {
	trimmed := strings.TrimSpace(token)
	if !strings.HasPrefix(trimmed, "@") {
		return Reference{}, fmt.Errorf("%w: %q (token must start with '@')", ErrInvalidReference, token)
	}
	anchor := startOfDay(today)

	if offset, ok := relativeDay[strings.ToLower(trimmed[1:])]; ok {
		return dayReference(RelativeDay, anchor.AddDate(0, 0, offset), trimmed), nil
	}
	if offset, ok := relativeWk[strings.ToLower(trimmed[1:])]; ok {
		y, w := anchor.AddDate(0, 0, offset*7).ISOWeek()
		return weekReference(RelativeWeek, y, w, trimmed), nil
	}

	if m := fullDateRe.FindStringSubmatch(trimmed); m != nil {
		d, err := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), today.Location())
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, token, err)
		}
		return dayReference(ExplicitDate, d, trimmed), nil
	}

	if m := fullWeekRe.FindStringSubmatch(trimmed); m != nil {
		year, week := atoi(m[1]), atoi(m[2])
		if err := validateISOWeek(year, week); err != nil {
			return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, token, err)
		}
		return weekReference(ExplicitWeek, year, week, trimmed), nil
	}

	if m := weekOnlyRe.FindStringSubmatch(trimmed); m != nil {
		year, _ := anchor.ISOWeek()
		week := atoi(m[1])
		if err := validateISOWeek(year, week); err != nil {
			return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, token, err)
		}
		return weekReference(ExplicitWeek, year, week, trimmed), nil
	}

	if m := monthDayRe.FindStringSubmatch(trimmed); m != nil {
		d, err := nextMonthDay(atoi(m[1]), atoi(m[2]), anchor)
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, token, err)
		}
		return dayReference(ExplicitDate, d, trimmed), nil
	}

	if m := dayOnlyRe.FindStringSubmatch(trimmed); m != nil {
		d, err := nextDayOfMonth(atoi(m[1]), anchor)
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %q: %v", ErrInvalidReference, token, err)
		}
		return dayReference(ExplicitDate, d, trimmed), nil
	}

	return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, token)
}

// ParseArg parses a CLI date argument: an @token, a bare relative keyword
// (today/yesterday/tomorrow/this-week/...), or empty (defaults to today).
func ParseArg(arg string, today time.Time) (Reference, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return ParseToken("@today", today)
	}
	if !strings.HasPrefix(trimmed, "@") {
		trimmed = "@" + trimmed
	}
	return ParseToken(trimmed, today)
}

// FormatDateISO formats a time as YYYY-MM-DD.
func FormatDateISO(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatWeekKey formats an ISO year/week pair as YYYY-Www.
func FormatWeekKey(isoYear, isoWeek int) string {
	return fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
}

func dayReference(form Form, d time.Time, token string) Reference {
	return Reference{Kind: Day, Form: form, Date: d, Token: token}
}

func weekReference(form Form, isoYear, isoWeek int, token string) Reference {
	return Reference{
		Kind:    Week,
		Form:    form,
		Date:    ISOWeekStart(isoYear, isoWeek),
		ISOYear: isoYear,
		ISOWeek: isoWeek,
		Token:   token,
	}
}

// calendarDate validates year/month/day and returns the corresponding time.
func calendarDate(year, month, day int, loc *time.Location) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > daysInMonth(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("day %d invalid for %04d-%02d", day, year, month)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// nextMonthDay resolves @MM-DD to its nearest present-or-future occurrence:
// today's year if that date is today or later, otherwise rolled forward.
// Feb 29 keeps rolling until it lands on a leap year.
func nextMonthDay(month, day int, anchor time.Time) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}
	for year := anchor.Year(); year <= anchor.Year()+8; year++ {
		if day > daysInMonth(year, time.Month(month)) {
			if month != 2 {
				return time.Time{}, fmt.Errorf("day %d invalid for month %02d", day, month)
			}
			continue
		}
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, anchor.Location())
		if !candidate.Before(anchor) {
			return candidate, nil
		}
	}
	return time.Time{}, fmt.Errorf("no upcoming occurrence of %02d-%02d", month, day)
}

// nextDayOfMonth resolves @DD to its nearest present-or-future occurrence,
// skipping months too short to contain the day.
func nextDayOfMonth(day int, anchor time.Time) (time.Time, error) {
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}
	year, month := anchor.Year(), anchor.Month()
	for i := 0; i < 48; i++ {
		if day <= daysInMonth(year, month) {
			candidate := time.Date(year, month, day, 0, 0, 0, 0, anchor.Location())
			if !candidate.Before(anchor) {
				return candidate, nil
			}
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return time.Time{}, fmt.Errorf("no upcoming occurrence of day %d", day)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
