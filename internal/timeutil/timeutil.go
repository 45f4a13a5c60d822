// Package timeutil pins all calendar-day arithmetic to UTC midnight.
// 数据库存 UTC，日期比较一律先归一化到 UTC 00:00:00，杜绝时区错乱。
package timeutil

import "time"

const dayDuration = 24 * time.Hour

// NormalizeToUTCDate truncates an instant to UTC midnight of its calendar date.
// Idempotent: normalizing twice yields the same value.
func NormalizeToUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayUTC returns the current calendar day, UTC-midnight aligned.
func TodayUTC() time.Time {
	return NormalizeToUTCDate(time.Now())
}

// DaysBetween returns floor((normalize(b) - normalize(a)) / 1 day).
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	// Normalized days are exact multiples of 24h apart (UTC has no DST),
	// so integer division is already the floor.
	diff := NormalizeToUTCDate(b).Sub(NormalizeToUTCDate(a))
	return int(diff / dayDuration)
}

// AddDays shifts a day by n (possibly negative) days, staying UTC-aligned.
func AddDays(day time.Time, n int) time.Time {
	return NormalizeToUTCDate(day).AddDate(0, 0, n)
}
