// internal/cookie/time.go
//
// Absolute-expiry helpers: now + n units, as Unix seconds.  Months and
// years use fixed-length approximations (30 and 365 days); cookie
// expiry does not need calendar math.
package cookie

import "time"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

// Seconds returns now + n seconds as a Unix timestamp.
func Seconds(n int64) int64 { return time.Now().Unix() + n }

// Minutes returns now + n minutes.
func Minutes(n int64) int64 { return time.Now().Unix() + n*secondsPerMinute }

// Hours returns now + n hours.
func Hours(n int64) int64 { return time.Now().Unix() + n*secondsPerHour }

// Days returns now + n days.
func Days(n int64) int64 { return time.Now().Unix() + n*secondsPerDay }

// Weeks returns now + n weeks.
func Weeks(n int64) int64 { return time.Now().Unix() + n*secondsPerWeek }

// Months returns now + n thirty-day months.
func Months(n int64) int64 { return time.Now().Unix() + n*secondsPerMonth }

// Years returns now + n 365-day years.
func Years(n int64) int64 { return time.Now().Unix() + n*secondsPerYear }
