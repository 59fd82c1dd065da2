package services

import (
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/order"
)

// OwnershipSynchronizer is a domain service that keeps the cylinder registry
// consistent with the order lifecycle. For each custody-changing order
// status it yields the absolute cylinder status and owner the registry must
// converge to.
//
// The projection is a pure function of the order status. It carries no
// history, so applying it repeatedly, out of order, or after a partial
// failure always lands the cylinder in the same state.
type OwnershipSynchronizer struct{}

// NewOwnershipSynchronizer creates a new OwnershipSynchronizer instance.
func NewOwnershipSynchronizer() OwnershipSynchronizer {
	return OwnershipSynchronizer{}
}

// TargetFor maps the order status to the cylinder state it implies. The
// third return value is false for statuses that say nothing about custody,
// in which case the cylinder must be left untouched.
//
// A rejected order frees the cylinder for rebooking but keeps its recorded
// owner; OwnerUnknown signals that to Apply.
func (OwnershipSynchronizer) TargetFor(status order.Status) (cylinder.Status, cylinder.Owner, bool) {
	switch status {
	case order.AtSupplier:
		return cylinder.StatusAvailable, cylinder.OwnerSupplier, true
	case order.InTransit:
		return cylinder.StatusInTransit, cylinder.OwnerAgent, true
	case order.Delivered:
		return cylinder.StatusDelivered, cylinder.OwnerCustomer, true
	case order.Rejected:
		return cylinder.StatusAvailable, cylinder.OwnerUnknown, true
	default:
		return cylinder.StatusUnknown, cylinder.OwnerUnknown, false
	}
}

// Apply projects the order status onto the given cylinder. Statuses without
// a custody meaning leave the cylinder unchanged and report false.
func (s OwnershipSynchronizer) Apply(cyl *cylinder.Cylinder, status order.Status) (bool, error) {
	if err := cyl.Validate(); err != nil {
		return false, err
	}

	targetStatus, targetOwner, ok := s.TargetFor(status)
	if !ok {
		return false, nil
	}

	if targetOwner == cylinder.OwnerUnknown {
		targetOwner = cyl.Owner()
	}

	if err := cyl.ApplyProjection(targetStatus, targetOwner); err != nil {
		return false, err
	}

	return true, nil
}
