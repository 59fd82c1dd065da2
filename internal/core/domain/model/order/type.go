package order

import (
	"fmt"

	"gascylinder/internal/pkg/errs"
)

// Type distinguishes a purchase of a new cylinder from a refill of a
// customer-owned one. Refill orders follow the AtSupplier branch of the
// state machine and authenticate pickup with an OTP instead of a scan.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypeOrder is a purchase of a cylinder from supplier inventory.
	TypeOrder

	// TypeRefill is a refill of a cylinder the customer already owns.
	TypeRefill
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "unknown",
		TypeOrder:   "order",
		TypeRefill:  "refill",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeOrder:  "order",
		TypeRefill: "refill",
	}
}

// TypeFromString parses a persisted type literal ("order" or "refill").
func TypeFromString(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order type", fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type value is one of the closed set.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the persisted literal for the type, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
