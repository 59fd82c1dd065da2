package order

import (
	"errors"
	"fmt"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAgentNotAssigned is returned when an agent action is attempted on an
	// order that has no assigned agent, or by an agent other than the assigned one.
	ErrAgentNotAssigned = errors.New("agent is not assigned to this order")

	// ErrAssignmentNotAccepted is returned when pickup is attempted before the
	// assigned agent accepted the assignment.
	ErrAssignmentNotAccepted = errors.New("assignment has not been accepted by the agent")

	// ErrRefillOnly is returned when an AtSupplier-path transition is attempted
	// on a non-refill order.
	ErrRefillOnly = errors.New("transition is only valid for refill orders")
)

// Order is the aggregate root for a gas cylinder order. It owns the order
// lifecycle from placement through supplier review, agent assignment, and the
// authenticated pickup and delivery handoffs.
//
// Order maintains these invariants:
//   - identity fields (id, customer, supplier, type) are immutable
//   - status transitions follow the state machine defined on Status
//   - AtSupplier-originated transitions happen only for refill orders
//   - the cylinder snapshot is immutable after placement
//   - the handoff credential is single-use: cleared on consumption
//
// The aggregate does not perform role checks; the application layer verifies
// the acting party before invoking transitions. Agent identity checks that
// are structural (acting agent equals the assigned agent) live here.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	supplierID kernel.UUID
	agentID    *kernel.UUID

	orderType Type
	snapshot  CylinderSnapshot
	delivery  Delivery
	total     float64
	status    Status

	// agentAccepted marks the assigned agent's confirmation; pickup requires it.
	agentAccepted bool

	// markedAtSupplier records the physical arrival of a refill cylinder at the
	// supplier. Survives a declined assignment so the order falls back to
	// AtSupplier rather than Approved.
	markedAtSupplier bool

	handoff *HandoffCredential

	isConstructed bool
}

// NewOrder creates a new order in Pending status awaiting supplier review.
//
// Example:
//
//	snapshot, _ := order.NewCylinderSnapshot("CYL-0042", "13kg", "ProGas", 2500)
//	delivery, _ := order.NewDelivery(date, "09:00-12:00", 4.2, 150)
//	o, err := order.NewOrder(order.TypeOrder, orderID, customerID, supplierID, snapshot, delivery, 2650)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	orderType Type,
	id kernel.UUID,
	customerID kernel.UUID,
	supplierID kernel.UUID,
	snapshot CylinderSnapshot,
	delivery Delivery,
	total float64,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setType(orderType),
		o.setID(id),
		o.setCustomerID(customerID),
		o.setSupplierID(supplierID),
		o.setSnapshot(snapshot),
		o.setDelivery(delivery),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
func RestoreOrder(
	orderType Type,
	id kernel.UUID,
	customerID kernel.UUID,
	supplierID kernel.UUID,
	snapshot CylinderSnapshot,
	delivery Delivery,
	total float64,
	status Status,
	agentID *kernel.UUID,
	agentAccepted bool,
	markedAtSupplier bool,
	handoff *HandoffCredential,
) (*Order, error) {
	o, err := NewOrder(orderType, id, customerID, supplierID, snapshot, delivery, total)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
	}

	if handoff != nil {
		if err := handoff.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.agentID = agentID
	o.agentAccepted = agentAccepted
	o.markedAtSupplier = markedAtSupplier
	o.handoff = handoff
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// SupplierID returns the fulfilling supplier's identifier.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// Agent returns the assigned agent's identifier, or nil if unassigned.
func (o *Order) Agent() *kernel.UUID {
	return o.agentID
}

// AgentAccepted reports whether the assigned agent accepted the assignment.
func (o *Order) AgentAccepted() bool {
	return o.agentAccepted
}

// Type returns the order kind (order or refill).
func (o *Order) Type() Type {
	return o.orderType
}

// Snapshot returns the cylinder snapshot captured at placement.
func (o *Order) Snapshot() CylinderSnapshot {
	return o.snapshot
}

// Delivery returns the agreed delivery schedule.
func (o *Order) Delivery() Delivery {
	return o.delivery
}

// Total returns the order total.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// MarkedAtSupplier reports whether the refill cylinder was recorded at the supplier.
func (o *Order) MarkedAtSupplier() bool {
	return o.markedAtSupplier
}

// Handoff returns the currently issued handoff credential, or nil.
func (o *Order) Handoff() *HandoffCredential {
	return o.handoff
}

// Approve moves a Pending order to Approved.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject moves the order to Rejected. Allowed from any pre-transit state.
// Rejecting an already-Rejected order is a no-op so the compensating release
// of a booked cylinder can be retried safely.
//
// Returns true when the transition happened on this call, false for the
// idempotent no-op.
func (o *Order) Reject() (bool, error) {
	if o.status == Rejected {
		return false, nil
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.handoff = nil
	return true, nil
}

// MarkAtSupplier records the arrival of the refill cylinder at the supplier.
// Only refill orders enter AtSupplier.
func (o *Order) MarkAtSupplier() error {
	if o.orderType != TypeRefill {
		return ErrRefillOnly
	}

	newStatus, err := o.status.MarkAtSupplier()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.markedAtSupplier = true
	return nil
}

// Assign assigns the order to a delivery agent. Reassignment resets the
// acceptance flag. AtSupplier-originated assignment is valid only for refill
// orders, which is structurally guaranteed since only refills reach AtSupplier.
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.agentID = &agentID
	o.agentAccepted = false
	return nil
}

// Accept records the assigned agent's confirmation of the assignment.
func (o *Order) Accept(agentID kernel.UUID) error {
	if err := o.requireAssignedAgent(agentID); err != nil {
		return err
	}

	if o.status != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%s is not a valid status to accept", o.status))
	}

	o.agentAccepted = true
	return nil
}

// Decline removes the agent from the order. Refill orders that were already
// at the supplier fall back to AtSupplier; everything else returns to Approved
// for reassignment.
func (o *Order) Decline(agentID kernel.UUID) error {
	if err := o.requireAssignedAgent(agentID); err != nil {
		return err
	}

	if o.status != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%s is not a valid status to decline", o.status))
	}

	o.agentID = nil
	o.agentAccepted = false
	if o.markedAtSupplier {
		o.status = AtSupplier
	} else {
		o.status = Approved
	}
	return nil
}

// PickupByScan moves a regular order to InTransit after the agent scanned the
// cylinder. The scanned label must match the order's recorded cylinder;
// refill orders authenticate pickup with an OTP instead.
func (o *Order) PickupByScan(agentID kernel.UUID, scannedCylID string) error {
	if o.orderType != TypeOrder {
		return errs.NewValueIsInvalidErrorWithCause(
			"order type", fmt.Errorf("%s orders authenticate pickup with an OTP", o.orderType))
	}

	if err := o.requireAcceptedAgent(agentID); err != nil {
		return err
	}

	if !o.snapshot.HasCylinder() || o.snapshot.CylID() != scannedCylID {
		return ErrCylinderMismatch
	}

	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// PickupAtSupplier moves a refill order to InTransit. The caller must have
// verified the pickup OTP through the handoff verifier first; this method
// applies the state change only.
func (o *Order) PickupAtSupplier(agentID kernel.UUID) error {
	if o.orderType != TypeRefill {
		return ErrRefillOnly
	}

	if err := o.requireAcceptedAgent(agentID); err != nil {
		return err
	}

	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver moves an InTransit order to Delivered. The caller must have
// verified the delivery OTP or QR payload through the handoff verifier first.
func (o *Order) Deliver(agentID kernel.UUID) error {
	if err := o.requireAssignedAgent(agentID); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AttachHandoff stores the credential for a freshly issued code, replacing
// any previously issued one. Re-issuing invalidates the earlier code.
func (o *Order) AttachHandoff(credential HandoffCredential) error {
	if err := credential.Validate(); err != nil {
		return err
	}

	o.handoff = &credential
	return nil
}

// ConsumeHandoff clears the stored credential. Called by the verifier in the
// same write that records a successful verification so codes are single-use.
func (o *Order) ConsumeHandoff() {
	o.handoff = nil
}

func (o *Order) requireAssignedAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.agentID == nil || !o.agentID.IsEqual(agentID) {
		return ErrAgentNotAssigned
	}

	return nil
}

func (o *Order) requireAcceptedAgent(agentID kernel.UUID) error {
	if err := o.requireAssignedAgent(agentID); err != nil {
		return err
	}

	// AtSupplier pickup happens before formal acceptance only when the agent
	// was assigned while the cylinder already sat at the supplier.
	if o.status == Assigned && !o.agentAccepted {
		return ErrAssignmentNotAccepted
	}

	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	o.supplierID = supplierID
	return nil
}

func (o *Order) setSnapshot(snapshot CylinderSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	o.snapshot = snapshot
	return nil
}

func (o *Order) setDelivery(delivery Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%f is negative", total))
	}
	o.total = total
	return nil
}
