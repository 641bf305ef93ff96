package content

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of experience start and end dates.
const DateLayout = "2006-01"

// daysPerMonth is the month length used for elapsed-time display.
const daysPerMonth = 30

// ParseMonth parses a YYYY-MM date as the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}

// MonthsBetween returns the whole 30-day months elapsed from start to end.
// A nil end means now. The result is never negative.
func MonthsBetween(start string, end *string, now time.Time) (int, error) {
	from, err := ParseMonth(start)
	if err != nil {
		return 0, err
	}
	to := now
	if end != nil {
		to, err = ParseMonth(*end)
		if err != nil {
			return 0, err
		}
	}
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}
	return days / daysPerMonth, nil
}

// Months returns the length of the position in months, see MonthsBetween.
func (e Experience) Months(now time.Time) (int, error) {
	return MonthsBetween(e.StartDate, e.EndDate, now)
}

// TotalExperienceMonths sums the months of every experience entry.
// Entries with unparseable dates are skipped.
func (d *Document) TotalExperienceMonths(now time.Time) int {
	total := 0
	for _, e := range d.Experience {
		m, err := e.Months(now)
		if err != nil {
			continue
		}
		total += m
	}
	return total
}

var durationUnits = map[Locale][4]string{
	LocaleVI: {"năm", "năm", "tháng", "tháng"},
	LocaleEN: {"year", "years", "month", "months"},
}

// FormatDuration renders months as years and months in the given locale,
// omitting a zero part. Zero renders as "0 months".
func FormatDuration(months int, locale Locale) string {
	units, ok := durationUnits[locale]
	if !ok {
		units = durationUnits[LocaleEN]
	}
	if months < 0 {
		months = 0
	}
	years, rest := months/12, months%12

	plural := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, units[0], units[1]))
	}
	if rest > 0 || years == 0 {
		parts = append(parts, plural(rest, units[2], units[3]))
	}
	return strings.Join(parts, " ")
}

// IsCurrentPeriod reports whether a free-form period such as
// "04/2022 - Present" is still ongoing.
func IsCurrentPeriod(period string) bool {
	return strings.Contains(strings.ToLower(period), "present")
}

// ActiveProjects counts projects whose period is ongoing.
func (d *Document) ActiveProjects() int {
	n := 0
	for _, p := range d.Projects {
		if IsCurrentPeriod(p.Period) {
			n++
		}
	}
	return n
}
