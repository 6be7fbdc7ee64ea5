// Package jstdate converts timestamps to civil dates on the Japan Standard
// Time day boundary. All bonus-eligibility decisions ("today", "yesterday",
// the date a past award landed on) go through this package so that the
// server's local time zone never leaks into calendar comparisons.
package jstdate

import (
	"fmt"
	"time"
)

// JST is fixed at UTC+9 with no daylight saving, so a fixed zone is exact
// and avoids a runtime dependency on the system tzdata.
var JST = time.FixedZone("JST", 9*60*60)

// CivilDate is a calendar date in JST. Values are comparable with ==.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime converts a timestamp to the JST civil date it falls on.
func FromTime(t time.Time) CivilDate {
	y, m, d := t.In(JST).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// AddDays returns the civil date n days after d (n may be negative).
func (d CivilDate) AddDays(n int) CivilDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, JST)
	return FromTime(t)
}

// MatchesMonthDay reports whether the month and day of d equal those of
// other, ignoring years. Used for birthday matching.
func (d CivilDate) MatchesMonthDay(other CivilDate) bool {
	return d.Month == other.Month && d.Day == other.Day
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
