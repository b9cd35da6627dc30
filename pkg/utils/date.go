package utils

import "time"

// DayKey truncates a timestamp to its local calendar date. Both the trend
// bucket keys and the window labels must come from this one function so the
// two sides of a day comparison can never disagree.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
