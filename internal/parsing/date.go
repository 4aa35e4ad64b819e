package parsing

import (
	"regexp"
	"strconv"
	"time"
)

var (
	// yearFirstPattern matches unambiguous dates: 2026-02-24, 2026/2/24.
	yearFirstPattern = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)

	// shortDatePattern matches ambiguous short dates: 02/24/26,
	// 2-24-2026. Always read as month-day-year; this is a fixed
	// North-American assumption, not locale inference.
	shortDatePattern = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})\b`)
)

// extractDate finds the first date in the transcript. The year-first
// form is tried over the whole text before the short form since it
// cannot be misread. Dates appear once on a receipt, near the header
// or footer, so the first occurrence wins; this deliberately differs
// from the total, where the bottom-most keyword line wins.
func extractDate(text string) *time.Time {
	if m := yearFirstPattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			return &d
		}
	}
	if m := shortDatePattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[3], m[1], m[2]); ok {
			return &d
		}
	}
	return nil
}

// makeDate validates the components and builds a UTC midnight date.
// Two-digit years pivot at 50: "26" is 2026, "87" is 1987.
func makeDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	if len(year) == 2 {
		if y < 50 {
			y += 2000
		} else {
			y += 1900
		}
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) {
		// time.Date normalizes Feb 30 into March; reject the overflow.
		return time.Time{}, false
	}
	return t, true
}
