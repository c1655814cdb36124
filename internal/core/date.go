package core

import "time"

// DateLayout is the storage representation of calendar dates. Ordering
// comparisons on this format are lexicographic, which is valid only because
// it is zero-padded and fixed-width.
const DateLayout = "2006-01-02"

// FormatDate renders a time as a storage date, dropping the time component.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a storage date. The zone is irrelevant: only the calendar
// day is meaningful.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ValidateDate checks that s is a real calendar date in storage format.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return ErrInvalidDate
	}
	if _, err := ParseDate(s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// MonthRange returns the first and last calendar day of the month containing
// t, in storage format.
func MonthRange(t time.Time) (start, end string) {
	year, month, _ := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return FormatDate(first), FormatDate(last)
}

// WeekRange returns the Sunday-start week containing t: Sunday through the
// following Saturday, in storage format.
func WeekRange(t time.Time) (start, end string) {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	saturday := sunday.AddDate(0, 0, 6)
	return FormatDate(sunday), FormatDate(saturday)
}
