package domain

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DateOf truncates an instant to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before d. Idempotent.
func WeekStart(d time.Time) time.Time {
	d = DateOf(d)
	// time.Weekday puts Sunday at 0, Monday-anchored weeks want it at 6.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday closing the week containing d.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 6)
}

// NextWeekStart returns the Monday strictly after the week containing d,
// regardless of whether d itself is a Monday.
func NextWeekStart(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 7)
}

// ClientToday resolves the calendar date the client currently observes.
// A named IANA zone wins over a raw UTC offset; with neither supplied,
// ok is false and callers must treat the day as unknown.
func ClientToday(now time.Time, tzName string, offsetMinutes *int) (time.Time, bool, error) {
	if tzName != "" {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return time.Time{}, false, ErrInvalidTimezone
		}
		return DateOf(now.In(loc)), true, nil
	}

	if offsetMinutes != nil {
		shifted := now.UTC().Add(time.Duration(*offsetMinutes) * time.Minute)
		return DateOf(shifted), true, nil
	}

	return time.Time{}, false, nil
}

// IsClientToday reports whether claimed equals the client's current date.
// Fails closed: unknown client day means "not today".
func IsClientToday(claimed, now time.Time, tzName string, offsetMinutes *int) (bool, error) {
	today, ok, err := ClientToday(now, tzName, offsetMinutes)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return DateOf(claimed).Equal(today), nil
}
