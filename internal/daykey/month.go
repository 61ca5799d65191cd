package daykey

import "time"

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekday returns the weekday of the 1st of the given month
// (Sunday = 0), used to position the leading blanks of a calendar grid.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday()
}

// MonthDates returns every date of the given month in order.
func MonthDates(year int, month time.Month) []Date {
	n := DaysIn(year, month)
	dates := make([]Date, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, Date{Year: year, Month: month, Day: day})
	}
	return dates
}
