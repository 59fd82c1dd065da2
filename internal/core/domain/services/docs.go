// Package services contains stateless domain services that coordinate
// behavior across aggregates.
//
// OwnershipSynchronizer projects an order status onto the cylinder registry
// as an absolute (status, owner) pair, so re-running a projection any number
// of times yields the same cylinder state.
//
// HandoffVerifier issues and verifies the one-time codes that gate
// custody-changing order transitions (pickup at the supplier, delivery to
// the customer).
package services
