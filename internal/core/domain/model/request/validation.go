package request

import (
	"fmt"
	"strings"
	"time"

	"lifebank/internal/pkg/errs"
)

const (
	// MinQuantityMl is the smallest quantity a hospital may request.
	MinQuantityMl = 50
	// MaxQuantityMl is the largest quantity a hospital may request.
	MaxQuantityMl = 5000
	// MaxDaysInFuture bounds how far ahead required_by may be.
	MaxDaysInFuture = 30
	// SecondsPerDay is the length of a day in timestamp units.
	SecondsPerDay = 86400
)

// MaxLeadTime is the largest allowed gap between now and required_by.
const MaxLeadTime = MaxDaysInFuture * SecondsPerDay * time.Second

// ValidateCreation checks the quantity and deadline of a new request.
// Quantity is checked first; the first failing check is returned.
func ValidateCreation(quantityMl int, requiredBy, now time.Time) error {
	if err := validateQuantity(quantityMl); err != nil {
		return err
	}

	if !requiredBy.After(now) {
		return fmt.Errorf("%w: %w", ErrInvalidTimestamp,
			errs.NewValueIsInvalidErrorWithCause("requiredBy",
				fmt.Errorf("%d is not after %d", requiredBy.Unix(), now.Unix())))
	}

	if requiredBy.After(now.Add(MaxLeadTime)) {
		return fmt.Errorf("%w: %w", ErrInvalidTimestamp,
			errs.NewValueIsInvalidErrorWithCause("requiredBy",
				fmt.Errorf("%d is more than %d days after %d", requiredBy.Unix(), MaxDaysInFuture, now.Unix())))
	}

	return nil
}

// ValidateDeliveryAddress rejects empty or blank addresses.
func ValidateDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs.NewValueIsRequiredError("deliveryAddress"))
	}
	return nil
}

// ValidateBloodType accepts exactly the eight defined blood types.
func ValidateBloodType(bloodType BloodType) error {
	if !bloodType.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidBloodType,
			errs.NewValueIsInvalidErrorWithCause("bloodType", fmt.Errorf("%d is not a valid blood type", bloodType)))
	}
	return nil
}

// ValidateUrgency accepts exactly the three defined urgency levels.
func ValidateUrgency(urgency Urgency) error {
	if !urgency.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput,
			errs.NewValueIsInvalidErrorWithCause("urgency", fmt.Errorf("%d is not a valid urgency", urgency)))
	}
	return nil
}

// ValidateParameters is the single validation routine of the creation path.
// Checks run in the order quantity, timestamp, address, blood type, urgency
// and stop at the first failure.
func ValidateParameters(
	quantityMl int,
	requiredBy time.Time,
	deliveryAddress string,
	bloodType BloodType,
	urgency Urgency,
	now time.Time,
) error {
	if err := ValidateCreation(quantityMl, requiredBy, now); err != nil {
		return err
	}
	if err := ValidateDeliveryAddress(deliveryAddress); err != nil {
		return err
	}
	if err := ValidateBloodType(bloodType); err != nil {
		return err
	}
	return ValidateUrgency(urgency)
}

// IsOverdue reports whether now is strictly past requiredBy. Being exactly
// at the deadline is not overdue.
func IsOverdue(requiredBy, now time.Time) bool {
	return now.After(requiredBy)
}

// TimeUntilDeadline returns requiredBy - now; negative once overdue.
func TimeUntilDeadline(requiredBy, now time.Time) time.Duration {
	return requiredBy.Sub(now)
}

// IsSLABreached reports whether a request created at createdAt has outlived
// the maximum fulfillment time of urgency. Status is not considered.
func IsSLABreached(createdAt time.Time, urgency Urgency, now time.Time) bool {
	return now.After(createdAt.Add(urgency.MaxFulfillmentTime()))
}
