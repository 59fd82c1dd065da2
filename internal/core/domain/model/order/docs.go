// Package order provides domain entities and business logic for gas cylinder
// orders. It implements the Order aggregate root with lifecycle management,
// state transitions, and handoff authentication state.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, cylinder snapshot, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Type: The closed set of order kinds (order, refill)
//   - CylinderSnapshot: A price/identity copy taken at placement time
//   - Delivery: The delivery window, distance, and fee
//   - HandoffCredential: The salted OTP hash and expiry guarding custody handoffs
//
// Key business rules:
//   - Status transitions are monotonic along the defined graph, with the
//     reject/cancel escape hatch available until the order is in transit
//   - Refill orders may be assigned and picked up while AtSupplier
//   - Pickup for regular orders verifies the scanned cylinder identity;
//     refill pickup and all deliveries verify a single-use, time-bound code
//   - The cylinder snapshot is a copy: later price edits never change an
//     already-placed order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
