package cylinder

import (
	"fmt"

	"gascylinder/internal/pkg/errs"
)

// Status represents the lifecycle state of a cylinder.
//
// State transitions:
//
//	Available --book--> Booked --release--> Available
//	Booked/AtSupplier --pickup--> InTransit --deliver--> Delivered
//	Delivered --report lost--> Lost
//	Lost/Damaged --supplier correction--> any
//
// The string forms are the exact persisted literals; clients treat them
// as a closed set.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAvailable means the cylinder sits in supplier inventory and can be booked.
	StatusAvailable

	// StatusBooked means an active order has reserved the cylinder.
	// Supplier edits are forbidden while in this status.
	StatusBooked

	// StatusInTransit means a delivery agent is carrying the cylinder.
	StatusInTransit

	// StatusAtSupplier means a customer's refill cylinder is held at the supplier.
	StatusAtSupplier

	// StatusDelivered means the cylinder is in the customer's possession.
	StatusDelivered

	// StatusLost means the cylinder's whereabouts are unknown.
	// Correctable by supplier updates.
	StatusLost

	// StatusDamaged means the cylinder is unusable until repaired or replaced.
	// Correctable by supplier updates.
	StatusDamaged
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusAvailable:  "Available",
		StatusBooked:     "Booked",
		StatusInTransit:  "InTransit",
		StatusAtSupplier: "AtSupplier",
		StatusDelivered:  "Delivered",
		StatusLost:       "Lost",
		StatusDamaged:    "Damaged",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAvailable:  "Available",
		StatusBooked:     "Booked",
		StatusInTransit:  "InTransit",
		StatusAtSupplier: "AtSupplier",
		StatusDelivered:  "Delivered",
		StatusLost:       "Lost",
		StatusDamaged:    "Damaged",
	}
}

// StatusFromString parses a persisted status literal.
// Returns an error for any string outside the closed set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"cylinder status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the closed set.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cylinder status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted literal for the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
