// Package cylinder implements the cylinder registry domain model.
// A Cylinder is the physical reusable gas container tracked by identity,
// status, and current owner.
//
// The package provides:
//   - Cylinder: The aggregate root owning identity, pricing, condition, status, and ownership
//   - Status: A closed set of lifecycle states with validated transitions
//   - Owner: The party currently holding the cylinder (supplier, agent, or customer)
//   - Condition: The physical condition recorded by the supplier
//
// Central invariants:
//   - (supplierID, cylID) is unique across the registry
//   - status and owner always form a policy-consistent pair
//   - at most one active order references a cylinder at a time, guaranteed
//     by the Booked status gate
//   - cylinders are never deleted, only status-transitioned
package cylinder
