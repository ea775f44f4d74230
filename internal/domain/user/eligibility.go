package user

import "time"

// DefaultMinAge applies when SERVICE_MIN_AGE is not set.
const DefaultMinAge = 18

// Date truncates t to the calendar date it falls on in UTC, whatever zone t carries.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddYears moves a calendar date by whole years. Feb 29 lands on Feb 28 when the
// target year is not a leap year, instead of rolling over into March.
func AddYears(t time.Time, years int) time.Time {
	y, m, d := t.UTC().Date()
	target := time.Date(y+years, m, 1, 0, 0, 0, 0, time.UTC)
	if last := target.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(y+years, m, d, 0, 0, 0, 0, time.UTC)
}

// IsEligible reports whether someone born on birthDate is at least minAge years old on today.
func IsEligible(birthDate, today time.Time, minAge int) bool {
	return !AddYears(Date(birthDate), minAge).After(Date(today))
}
