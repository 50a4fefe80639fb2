// Package day turns the scenario's INI_DATE/END_DATE configuration range
// (spec §6) into the Julian-day-iterated sequence of calendar days the
// orchestration loop processes one at a time, built on internal/frame's
// Julian day conversion the way the teacher derives file periods from
// `time.Time` arithmetic in `pkg/rinex/rinex.go`.
package day

import (
	"time"

	"github.com/de-bkg/pppcorr/internal/frame"
)

// Day is one calendar day to process: its Gregorian date plus the
// Year/DayOfYear pair the rest of the core addresses epochs by.
type Day struct {
	Date time.Time
	Year int
	DOY  int
}

// Range returns every calendar day from ini to end inclusive (spec §6
// "DD/MM/YYYY date range (inclusive, Julian-day iterated)").
func Range(ini, end time.Time) []Day {
	if end.Before(ini) {
		return nil
	}
	var days []Day
	for d := ini; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{Date: d, Year: d.Year(), DOY: dayOfYear(d)})
	}
	return days
}

func dayOfYear(t time.Time) int {
	yearStart := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return int(t.Sub(yearStart).Hours()/24) + 1
}

// JulianDay returns the Julian day number for d at the given second of
// day, via internal/frame's Gregorian-calendar conversion.
func (d Day) JulianDay(sod float64) float64 {
	return frame.ConvertYearMonthDay2JulianDay(d.Year, int(d.Date.Month()), d.Date.Day(), sod)
}
