package testutil

import "time"

// NowAt returns a clock that always reports t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date is midnight UTC on the given calendar day, the granularity the schedule
// providers work at.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
