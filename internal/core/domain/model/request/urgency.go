package request

import (
	"fmt"
	"strings"
	"time"
)

// Urgency classifies how quickly a request is expected to be fulfilled.
// Lower values are more severe: Critical < Urgent < Normal.
type Urgency int

const (
	// UnknownUrgency is the zero value and is never valid.
	UnknownUrgency Urgency = iota
	Critical
	Urgent
	Normal
)

var urgencyStrings = map[Urgency]string{
	Critical: "Critical",
	Urgent:   "Urgent",
	Normal:   "Normal",
}

// MaxFulfillmentTime is the expected upper bound between creation and
// fulfillment. It is an SLA hint and does not gate status transitions.
//
//   - Critical: 1 hour
//   - Urgent: 6 hours
//   - Normal: 24 hours
func (u Urgency) MaxFulfillmentTime() time.Duration {
	switch u {
	case Critical:
		return 3600 * time.Second
	case Urgent:
		return 21600 * time.Second
	case Normal:
		return 86400 * time.Second
	default:
		return 0
	}
}

// MoreSevereThan reports whether u ranks above other in severity.
func (u Urgency) MoreSevereThan(other Urgency) bool {
	return u.IsValid() && other.IsValid() && u < other
}

// IsValid reports whether u is one of the defined urgency levels.
func (u Urgency) IsValid() bool {
	_, ok := urgencyStrings[u]
	return ok
}

func (u Urgency) String() string {
	if s, ok := urgencyStrings[u]; ok {
		return s
	}
	return "Unknown"
}

// ParseUrgency accepts the level name case-insensitively.
func ParseUrgency(s string) (Urgency, error) {
	for u, str := range urgencyStrings {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return u, nil
		}
	}
	return UnknownUrgency, fmt.Errorf("%w: urgency %q", ErrInvalidInput, s)
}
