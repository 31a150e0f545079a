package domain

import "time"

// Clock yields the current instant. Temporary assignment activity is derived
// from a clock read on every evaluation, so injecting a Clock keeps the
// expiration logic deterministic under test.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
