package request

import (
	"fmt"
	"strings"
)

// BloodType is one of the eight ABO/Rh combinations.
type BloodType int

const (
	// UnknownBloodType is the zero value and is never valid.
	UnknownBloodType BloodType = iota
	APositive
	ANegative
	BPositive
	BNegative
	ABPositive
	ABNegative
	OPositive
	ONegative
)

var bloodTypeStrings = map[BloodType]string{
	APositive:  "A+",
	ANegative:  "A-",
	BPositive:  "B+",
	BNegative:  "B-",
	ABPositive: "AB+",
	ABNegative: "AB-",
	OPositive:  "O+",
	ONegative:  "O-",
}

var bloodTypeNames = map[string]BloodType{
	"APOSITIVE":  APositive,
	"ANEGATIVE":  ANegative,
	"BPOSITIVE":  BPositive,
	"BNEGATIVE":  BNegative,
	"ABPOSITIVE": ABPositive,
	"ABNEGATIVE": ABNegative,
	"OPOSITIVE":  OPositive,
	"ONEGATIVE":  ONegative,
}

// AllBloodTypes returns the eight valid blood types in declaration order.
func AllBloodTypes() []BloodType {
	return []BloodType{APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative}
}

// ParseBloodType accepts the short form ("AB-") or the spelled-out name
// ("ABNegative"), case-insensitively.
func ParseBloodType(s string) (BloodType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for bt, str := range bloodTypeStrings {
		if str == normalized {
			return bt, nil
		}
	}
	if bt, ok := bloodTypeNames[normalized]; ok {
		return bt, nil
	}
	return UnknownBloodType, fmt.Errorf("%w: %q", ErrInvalidBloodType, s)
}

// String returns the short form, e.g. "O-", or "Unknown".
func (b BloodType) String() string {
	if s, ok := bloodTypeStrings[b]; ok {
		return s
	}
	return "Unknown"
}

// IsValid reports whether b is one of the eight defined blood types.
func (b BloodType) IsValid() bool {
	_, ok := bloodTypeStrings[b]
	return ok
}
