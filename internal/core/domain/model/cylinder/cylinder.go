package cylinder

import (
	"errors"
	"fmt"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
)

var (
	// ErrCylinderIsNotConstructed is returned when a Cylinder instance was not created
	// through the NewCylinder or RestoreCylinder factory methods.
	ErrCylinderIsNotConstructed = errors.New("Cylinder must be created via NewCylinder or RestoreCylinder")

	// ErrNotAvailable is returned when a booking attempt finds the cylinder
	// in any status other than Available. Surfaced to callers as a conflict.
	ErrNotAvailable = errors.New("cylinder is no longer available")

	// ErrEditForbiddenWhileBooked is returned when the supplier attempts to
	// mutate a cylinder that an active order has reserved.
	ErrEditForbiddenWhileBooked = errors.New("cylinder cannot be edited while booked")

	// ErrEditRestrictedWhileDelivered is returned when the supplier attempts to
	// edit anything other than the refill price of a delivered cylinder.
	ErrEditRestrictedWhileDelivered = errors.New("only refill price can be edited while delivered")

	// ErrStatusOwnerMismatch is returned when a status/owner pair violates
	// the ownership policy.
	ErrStatusOwnerMismatch = errors.New("cylinder status and owner are inconsistent")
)

// Cylinder is the aggregate root for a physical reusable gas container.
// It is identified by the (supplierID, cylID) pair, where cylID is the
// supplier-scoped label printed on the unit.
//
// Cylinder maintains these invariants:
//   - identity fields are immutable after construction
//   - status and owner always form a policy-consistent pair
//   - while Booked, supplier edits are rejected
//   - while Delivered, only the refill price may change
//   - can only be created through NewCylinder or RestoreCylinder
//
// Booking against concurrent orders is not enforced here: the repository
// performs the Available-to-Booked transition as a single conditional write.
// The Book method carries the same precondition for in-memory use.
type Cylinder struct {
	supplierID   kernel.UUID
	cylID        string
	size         string
	brand        string
	price        float64
	refillPrice  float64
	condition    Condition
	status       Status
	owner        Owner
	locationText string
	location     *kernel.Location

	isConstructed bool
}

// NewCylinder creates a cylinder in supplier inventory: status Available,
// owner Supplier. All identity and pricing fields are validated.
//
// Example:
//
//	cyl, err := cylinder.NewCylinder(supplierID, "CYL-0042", "13kg", "ProGas",
//	    2500, 1100, cylinder.ConditionNew, "Main depot", nil)
//	if err != nil {
//	    // Handle validation error
//	}
func NewCylinder(
	supplierID kernel.UUID,
	cylID string,
	size string,
	brand string,
	price float64,
	refillPrice float64,
	condition Condition,
	locationText string,
	location *kernel.Location,
) (*Cylinder, error) {
	c := &Cylinder{
		status:        StatusAvailable,
		owner:         OwnerSupplier,
		locationText:  locationText,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setSupplierID(supplierID),
		c.setCylID(cylID),
		c.setSize(size),
		c.setBrand(brand),
		c.setPrice(price),
		c.setRefillPrice(refillPrice),
		c.setCondition(condition),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCylinder reconstructs a cylinder from persistence with its full state.
// The status/owner pair is re-validated so corrupted rows never yield a live
// aggregate.
func RestoreCylinder(
	supplierID kernel.UUID,
	cylID string,
	size string,
	brand string,
	price float64,
	refillPrice float64,
	condition Condition,
	status Status,
	owner Owner,
	locationText string,
	location *kernel.Location,
) (*Cylinder, error) {
	c, err := NewCylinder(supplierID, cylID, size, brand, price, refillPrice, condition, locationText, location)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(status.Validate(), owner.Validate()); err != nil {
		return nil, err
	}

	if !owner.ConsistentWith(status) {
		return nil, fmt.Errorf("%w: status=%s owner=%s", ErrStatusOwnerMismatch, status, owner)
	}

	c.status = status
	c.owner = owner
	return c, nil
}

// Validate ensures the Cylinder instance was properly constructed.
func (c *Cylinder) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCylinderIsNotConstructed
	}
	return nil
}

// IsEqual compares two cylinders by their (supplierID, cylID) identity.
func (c *Cylinder) IsEqual(other *Cylinder) bool {
	return other != nil && c.supplierID.IsEqual(other.supplierID) && c.cylID == other.cylID
}

// SupplierID returns the owning supplier's identifier.
func (c *Cylinder) SupplierID() kernel.UUID {
	return c.supplierID
}

// CylID returns the supplier-scoped cylinder label.
func (c *Cylinder) CylID() string {
	return c.cylID
}

// Size returns the cylinder size designation, e.g. "13kg".
func (c *Cylinder) Size() string {
	return c.size
}

// Brand returns the cylinder brand.
func (c *Cylinder) Brand() string {
	return c.brand
}

// Price returns the full purchase price.
func (c *Cylinder) Price() float64 {
	return c.price
}

// RefillPrice returns the refill price.
func (c *Cylinder) RefillPrice() float64 {
	return c.refillPrice
}

// Condition returns the recorded physical condition.
func (c *Cylinder) Condition() Condition {
	return c.condition
}

// Status returns the current lifecycle status.
func (c *Cylinder) Status() Status {
	return c.status
}

// Owner returns the party currently holding the cylinder.
func (c *Cylinder) Owner() Owner {
	return c.owner
}

// LocationText returns the free-form location description.
func (c *Cylinder) LocationText() string {
	return c.locationText
}

// Location returns the geographic coordinates, or nil if not recorded.
func (c *Cylinder) Location() *kernel.Location {
	return c.location
}

// Book transitions Available to Booked.
//
// This is the in-memory expression of the booking precondition; the
// repository enforces the same rule as a single conditional write so two
// concurrent orders can never both book the cylinder. Returns ErrNotAvailable
// when the cylinder is in any other status.
func (c *Cylinder) Book() error {
	if c.status != StatusAvailable {
		return ErrNotAvailable
	}

	c.status = StatusBooked
	c.owner = OwnerSupplier
	return nil
}

// Release returns a booked cylinder to inventory: Booked to Available.
// Releasing a cylinder that is not booked is a no-op, which makes the
// compensating action for order rejection safe to retry.
func (c *Cylinder) Release() {
	if c.status != StatusBooked {
		return
	}

	c.status = StatusAvailable
	c.owner = OwnerSupplier
}

// ApplyProjection sets the status/owner pair to absolute target values.
// Used by the ownership synchronizer; re-applying the same projection any
// number of times leaves the cylinder in the same state.
// Rejects policy-inconsistent pairs.
func (c *Cylinder) ApplyProjection(status Status, owner Owner) error {
	if err := errors.Join(status.Validate(), owner.Validate()); err != nil {
		return err
	}

	if !owner.ConsistentWith(status) {
		return fmt.Errorf("%w: status=%s owner=%s", ErrStatusOwnerMismatch, status, owner)
	}

	c.status = status
	c.owner = owner
	return nil
}

// UpdateDetails applies a full supplier edit: size, brand, pricing, condition,
// and location. Forbidden while Booked; while Delivered only the refill price
// may change, so full edits are rejected too.
func (c *Cylinder) UpdateDetails(
	size string,
	brand string,
	price float64,
	refillPrice float64,
	condition Condition,
	locationText string,
	location *kernel.Location,
) error {
	switch c.status {
	case StatusBooked:
		return ErrEditForbiddenWhileBooked
	case StatusDelivered:
		return ErrEditRestrictedWhileDelivered
	default:
	}

	return errors.Join(
		c.setSize(size),
		c.setBrand(brand),
		c.setPrice(price),
		c.setRefillPrice(refillPrice),
		c.setCondition(condition),
		c.setLocationText(locationText),
		c.setLocation(location),
	)
}

// UpdateRefillPrice changes only the refill price. This is the one edit
// allowed while the cylinder is Delivered. Still forbidden while Booked.
func (c *Cylinder) UpdateRefillPrice(refillPrice float64) error {
	if c.status == StatusBooked {
		return ErrEditForbiddenWhileBooked
	}

	return c.setRefillPrice(refillPrice)
}

// CorrectStatus is a supplier correction of the status/owner pair, used to
// recover Lost or Damaged units. Forbidden while Booked since an active
// reservation depends on the current state.
func (c *Cylinder) CorrectStatus(status Status, owner Owner) error {
	if c.status == StatusBooked {
		return ErrEditForbiddenWhileBooked
	}

	return c.ApplyProjection(status, owner)
}

// ReportLost marks a delivered cylinder as lost. Only the customer in
// possession may report, which the application layer enforces; the aggregate
// requires Delivered status so cylinders in supplier or agent custody cannot
// be reported by customers at all.
func (c *Cylinder) ReportLost() error {
	if c.status != StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"cylinder status", fmt.Errorf("%s cannot be reported lost by the customer", c.status))
	}

	c.status = StatusLost
	return nil
}

func (c *Cylinder) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	c.supplierID = supplierID
	return nil
}

func (c *Cylinder) setCylID(cylID string) error {
	if cylID == "" {
		return errs.NewValueIsRequiredError("cylId")
	}
	c.cylID = cylID
	return nil
}

func (c *Cylinder) setSize(size string) error {
	if size == "" {
		return errs.NewValueIsRequiredError("size")
	}
	c.size = size
	return nil
}

func (c *Cylinder) setBrand(brand string) error {
	if brand == "" {
		return errs.NewValueIsRequiredError("brand")
	}
	c.brand = brand
	return nil
}

func (c *Cylinder) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%f is negative", price))
	}
	c.price = price
	return nil
}

func (c *Cylinder) setRefillPrice(refillPrice float64) error {
	if refillPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("refillPrice", fmt.Errorf("%f is negative", refillPrice))
	}
	c.refillPrice = refillPrice
	return nil
}

func (c *Cylinder) setCondition(condition Condition) error {
	if err := condition.Validate(); err != nil {
		return err
	}
	c.condition = condition
	return nil
}

func (c *Cylinder) setLocationText(locationText string) error {
	c.locationText = locationText
	return nil
}

func (c *Cylinder) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	c.location = location
	return nil
}
