package order

import (
	"fmt"

	"gascylinder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──approve──> Approved ──assign──> Assigned ──pickup──> InTransit ──deliver──> Delivered
//	   │                     │ (refill)                     ▲
//	   │                     └──mark──> AtSupplier ─assign/pickup┘
//	   └──reject──> Rejected  (reject allowed from any pre-transit state)
//
// Status is a value object that validates state transitions and provides
// the exact persisted string literals.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a customer places an order.
	// Orders in this status await supplier review.
	Pending

	// Approved indicates the supplier accepted the order.
	Approved

	// Rejected is a final state reached when the supplier rejects or
	// cancels the order before transit.
	Rejected

	// Assigned indicates a delivery agent has been assigned.
	// The agent still has to accept the assignment.
	Assigned

	// AtSupplier indicates a refill cylinder is waiting at the supplier.
	// Only refill orders enter this status.
	AtSupplier

	// InTransit indicates the agent has picked up the cylinder.
	InTransit

	// Delivered is the final state: the customer holds the cylinder.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Approved:   "Approved",
		Rejected:   "Rejected",
		Assigned:   "Assigned",
		AtSupplier: "AtSupplier",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Approved:   "Approved",
		Rejected:   "Rejected",
		Assigned:   "Assigned",
		AtSupplier: "AtSupplier",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"order status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the closed set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%d is not a valid status", s))
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

// IsTerminal reports whether the status ends the order lifecycle.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Delivered
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"order status",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}

// Approve transitions the status to Approved.
// Only Pending orders can be approved.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return 0, invalidTransition(s, "approve")
	}
	return Approved, nil
}

// Reject transitions the status to Rejected.
// Rejection is the supplier's escape hatch and stays available until the
// order is in transit. Rejecting an already-Rejected order is reported via
// the error so callers can treat it as a no-op.
func (s Status) Reject() (Status, error) {
	switch s {
	case Pending, Approved, Assigned, AtSupplier:
		return Rejected, nil
	default:
		return 0, invalidTransition(s, "reject")
	}
}

// MarkAtSupplier transitions the status to AtSupplier.
// Only Approved orders move here; the aggregate additionally restricts the
// transition to refill orders.
func (s Status) MarkAtSupplier() (Status, error) {
	if s != Approved {
		return 0, invalidTransition(s, "mark at supplier")
	}
	return AtSupplier, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Approved -> Assigned (initial assignment)
//   - AtSupplier -> Assigned (refill orders waiting at the supplier)
//   - Assigned -> Assigned (reassignment to a different agent)
func (s Status) Assign() (Status, error) {
	if s != Approved && s != AtSupplier && s != Assigned {
		return 0, invalidTransition(s, "assign")
	}
	return Assigned, nil
}

// Pickup transitions the status to InTransit.
//
// Valid transitions:
//   - Assigned -> InTransit
//   - AtSupplier -> InTransit (refill pickup directly from the supplier)
//
// The aggregate assigns an agent before any pickup and Assign leaves
// AtSupplier, so live flows always pick up from Assigned; the AtSupplier
// branch completes the transition table for restored historical data.
func (s Status) Pickup() (Status, error) {
	if s != Assigned && s != AtSupplier {
		return 0, invalidTransition(s, "pick up")
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered.
// Only InTransit orders can be delivered; Delivered is final, so a replayed
// delivery fails the precondition rather than double-applying.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, invalidTransition(s, "deliver")
	}
	return Delivered, nil
}
