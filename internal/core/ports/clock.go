package ports

import "time"

// Clock is the source of the current instant. Implementations return times
// with whole-second precision.
type Clock interface {
	Now() time.Time
}
