// Package clock provides the wall clock used by the engine.
package clock

import "time"

// SystemClock reports the current UTC time truncated to whole seconds, the
// resolution at which requests record their timestamps.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
