// Package clock isolates the two host environment reads of the service,
// the clock and the IANA timezone database, behind small interfaces so
// request handling can be exercised with pinned instants and with a
// missing database.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
