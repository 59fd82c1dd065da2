package cylinder

import (
	"fmt"

	"gascylinder/internal/pkg/errs"
)

// Owner identifies the party currently holding a cylinder.
// The string forms are the exact persisted literals.
type Owner int

const (
	// OwnerUnknown represents an invalid or undefined owner.
	OwnerUnknown Owner = iota

	// OwnerSupplier means the cylinder is in supplier custody.
	OwnerSupplier

	// OwnerAgent means a delivery agent is carrying the cylinder.
	OwnerAgent

	// OwnerCustomer means the customer holds the cylinder.
	OwnerCustomer
)

func getOwnerStrings() map[Owner]string {
	return map[Owner]string{
		OwnerUnknown:  "Unknown",
		OwnerSupplier: "Supplier",
		OwnerAgent:    "Agent",
		OwnerCustomer: "Customer",
	}
}

func getValidOwnerStrings() map[Owner]string {
	//nolint:exhaustive // OwnerUnknown is intentionally excluded as it's invalid
	return map[Owner]string{
		OwnerSupplier: "Supplier",
		OwnerAgent:    "Agent",
		OwnerCustomer: "Customer",
	}
}

// OwnerFromString parses a persisted owner literal.
// Returns an error for any string outside the closed set.
func OwnerFromString(s string) (Owner, error) {
	for owner, str := range getValidOwnerStrings() {
		if str == s {
			return owner, nil
		}
	}
	return OwnerUnknown, errs.NewValueIsInvalidErrorWithCause(
		"cylinder owner", fmt.Errorf("%q is not a valid owner", s))
}

// Validate checks if the Owner value is one of the closed set.
func (o Owner) Validate() error {
	if _, ok := getValidOwnerStrings()[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cylinder owner", fmt.Errorf("%d is not a valid owner", o))
	}
	return nil
}

// String returns the persisted literal for the owner, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (o Owner) String() string {
	if str, ok := getOwnerStrings()[o]; ok {
		return str
	}
	return "Unknown"
}

// ConsistentWith reports whether the status/owner pair is policy-consistent:
// Available, Booked, and AtSupplier cylinders sit with the supplier, InTransit
// with the agent, Delivered with the customer. Lost and Damaged keep whatever
// owner last held the cylinder.
func (o Owner) ConsistentWith(status Status) bool {
	switch status {
	case StatusAvailable, StatusBooked, StatusAtSupplier:
		return o == OwnerSupplier
	case StatusInTransit:
		return o == OwnerAgent
	case StatusDelivered:
		return o == OwnerCustomer
	case StatusLost, StatusDamaged:
		return o.Validate() == nil
	case StatusUnknown:
		return false
	default:
		return false
	}
}
