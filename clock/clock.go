// Package clock provides the time source capability used throughout the
// planner and cache, so that tests can advance time deterministically
// instead of sleeping.
package clock

import "time"

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// Wall is a Clock backed by the system clock.
type Wall struct{}

func (Wall) Now() time.Time { return time.Now() }

// New returns the production Clock.
func New() Clock { return Wall{} }
