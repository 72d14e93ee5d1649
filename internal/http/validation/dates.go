package validation

import (
	"fmt"
	"time"
)

// DateLayout is the layout of date inputs and bounds.
const DateLayout = "2006-01-02"

// Age returns the whole years between dob and today: the calendar year
// difference, minus one when today's (month, day) falls before the birthday.
func Age(dob, today time.Time) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

// DateBounds are the min and max attributes of a date of birth input.
type DateBounds struct {
	Min string
	Max string
}

// BirthDateBounds returns today minus 100 years and today minus MinimumAge
// years, both as DateLayout strings. Only the year changes; month and day
// are kept as written.
func BirthDateBounds(now Clock) DateBounds {
	today := now()
	return DateBounds{
		Min: shiftYears(today, -100),
		Max: shiftYears(today, -MinimumAge),
	}
}

// shiftYears formats the parts directly so Feb 29 stays Feb 29 instead of
// rolling into March.
func shiftYears(t time.Time, years int) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year()+years, int(t.Month()), t.Day())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
