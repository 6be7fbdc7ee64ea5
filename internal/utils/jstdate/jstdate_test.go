package jstdate_test

import (
	"testing"
	"time"

	"github.com/machiport/points_backend/internal/utils/jstdate"
	"github.com/stretchr/testify/assert"
)

func TestFromTime_UTCJustBeforeMidnightJST(t *testing.T) {
	// 14:59 UTC is 23:59 JST the same day.
	ts := time.Date(2025, time.March, 10, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, jstdate.CivilDate{Year: 2025, Month: time.March, Day: 10}, jstdate.FromTime(ts))
}

func TestFromTime_UTCJustAfterMidnightJST(t *testing.T) {
	// 15:00 UTC is 00:00 JST the NEXT day.
	ts := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, jstdate.CivilDate{Year: 2025, Month: time.March, Day: 11}, jstdate.FromTime(ts))
}

func TestFromTime_IgnoresCallerZone(t *testing.T) {
	// The same instant expressed in two zones maps to one civil date.
	ny := time.FixedZone("EST", -5*60*60)
	a := time.Date(2025, time.December, 31, 20, 0, 0, 0, ny) // 2026-01-01 10:00 JST
	b := a.UTC()
	assert.Equal(t, jstdate.FromTime(a), jstdate.FromTime(b))
	assert.Equal(t, jstdate.CivilDate{Year: 2026, Month: time.January, Day: 1}, jstdate.FromTime(a))
}

func TestAddDays_AcrossMonthAndYear(t *testing.T) {
	d := jstdate.CivilDate{Year: 2025, Month: time.January, Day: 1}
	assert.Equal(t, jstdate.CivilDate{Year: 2024, Month: time.December, Day: 31}, d.AddDays(-1))

	leap := jstdate.CivilDate{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, jstdate.CivilDate{Year: 2024, Month: time.February, Day: 29}, leap.AddDays(1))
}

func TestMatchesMonthDay(t *testing.T) {
	birthday := jstdate.CivilDate{Year: 1990, Month: time.July, Day: 7}
	today := jstdate.CivilDate{Year: 2025, Month: time.July, Day: 7}
	assert.True(t, today.MatchesMonthDay(birthday))
	assert.False(t, today.AddDays(1).MatchesMonthDay(birthday))
}

func TestString(t *testing.T) {
	d := jstdate.CivilDate{Year: 2025, Month: time.March, Day: 5}
	assert.Equal(t, "2025-03-05", d.String())
}
