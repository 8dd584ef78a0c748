package age

import "time"

// Since reports how long ago then was, relative to now.
// A zero time reports no data; times in the future clamp to zero.
func Since(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	age := now.Sub(then)
	if age < 0 {
		return 0, true
	}
	return age, true
}

// Newest returns the latest of the given times, or the zero time.
func Newest(times ...time.Time) time.Time {
	var newest time.Time
	for _, value := range times {
		if value.After(newest) {
			newest = value
		}
	}
	return newest
}
