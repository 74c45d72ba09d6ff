package adapter

import "time"

// SystemClock implements port.Clock with the wall clock in a fixed business
// time zone.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reporting instants in loc. A nil loc means UTC.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{loc: loc}
}

// Now returns the current instant in the business zone.
func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location is the business zone.
func (c SystemClock) Location() *time.Location {
	return c.loc
}
