package outbound

import "time"

// CalculateExpectedDate applies the daily cutoff rule to a requested ship
// date. Same-day requests placed before the cutoff hour ship today, at or
// after it they roll to tomorrow. Requests for any other date (past or
// future) keep their requested date unchanged.
func CalculateExpectedDate(requested, now time.Time, cutoffHour int) time.Time {
	reqDay := dateOnly(requested, now.Location())
	today := dateOnly(now, now.Location())
	if !reqDay.Equal(today) {
		return reqDay
	}
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), cutoffHour, 0, 0, 0, now.Location())
	if now.Before(cutoff) {
		return today
	}
	return today.AddDate(0, 0, 1)
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
