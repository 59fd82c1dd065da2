package order

import (
	"errors"
	"fmt"
	"time"

	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

// ErrCylinderSnapshotIsNotConstructed is returned when a CylinderSnapshot was
// not created via NewCylinderSnapshot.
var ErrCylinderSnapshotIsNotConstructed = errors.New(
	"CylinderSnapshot must be created via NewCylinderSnapshot")

// CylinderSnapshot is the copy of cylinder identity and pricing taken when the
// order is placed. It is deliberately not a live reference: supplier price
// edits after placement never change an existing order.
//
// CylID is empty when the customer did not request a specific unit; such
// orders skip booking entirely and only the price snapshot is kept.
type CylinderSnapshot struct { //nolint:recvcheck //using for validation
	cylID string
	size  string
	brand string
	price float64

	guard guard.ConstructorGuard
}

// NewCylinderSnapshot captures cylinder identity and pricing for an order.
// cylID may be empty for orders without a specific unit; size and brand are
// always required so the supplier knows what to fulfill.
func NewCylinderSnapshot(cylID string, size string, brand string, price float64) (CylinderSnapshot, error) {
	s := CylinderSnapshot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setSize(size),
		s.setBrand(brand),
		s.setPrice(price),
	); err != nil {
		return CylinderSnapshot{}, err
	}

	s.cylID = cylID
	return s, nil
}

// Validate ensures the snapshot was created through the constructor.
func (s CylinderSnapshot) Validate() error {
	return s.guard.Validate(ErrCylinderSnapshotIsNotConstructed)
}

// CylID returns the requested cylinder label, or "" when none was requested.
func (s CylinderSnapshot) CylID() string {
	return s.cylID
}

// HasCylinder reports whether a specific cylinder was requested.
func (s CylinderSnapshot) HasCylinder() bool {
	return s.cylID != ""
}

// Size returns the cylinder size designation captured at placement.
func (s CylinderSnapshot) Size() string {
	return s.size
}

// Brand returns the cylinder brand captured at placement.
func (s CylinderSnapshot) Brand() string {
	return s.brand
}

// Price returns the price captured at placement.
func (s CylinderSnapshot) Price() float64 {
	return s.price
}

func (s *CylinderSnapshot) setSize(size string) error {
	if size == "" {
		return errs.NewValueIsRequiredError("cylinder size")
	}
	s.size = size
	return nil
}

func (s *CylinderSnapshot) setBrand(brand string) error {
	if brand == "" {
		return errs.NewValueIsRequiredError("cylinder brand")
	}
	s.brand = brand
	return nil
}

func (s *CylinderSnapshot) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cylinder price", fmt.Errorf("%f is negative", price))
	}
	s.price = price
	return nil
}

// ErrDeliveryIsNotConstructed is returned when a Delivery was not created via NewDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery")

// Delivery holds the agreed delivery window, distance, and fee for an order.
type Delivery struct { //nolint:recvcheck //using for validation
	date       time.Time
	timeslot   string
	distanceKm float64
	fee        float64

	guard guard.ConstructorGuard
}

// NewDelivery creates a validated delivery schedule.
// The date is required; distance and fee must be non-negative.
func NewDelivery(date time.Time, timeslot string, distanceKm float64, fee float64) (Delivery, error) {
	d := Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setDate(date),
		d.setDistanceKm(distanceKm),
		d.setFee(fee),
	); err != nil {
		return Delivery{}, err
	}

	d.timeslot = timeslot
	return d, nil
}

// Validate ensures the delivery was created through the constructor.
func (d Delivery) Validate() error {
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// Date returns the agreed delivery date.
func (d Delivery) Date() time.Time {
	return d.date
}

// Timeslot returns the free-form delivery window, e.g. "09:00-12:00".
func (d Delivery) Timeslot() string {
	return d.timeslot
}

// DistanceKm returns the delivery distance in kilometres.
func (d Delivery) DistanceKm() float64 {
	return d.distanceKm
}

// Fee returns the delivery fee.
func (d Delivery) Fee() float64 {
	return d.fee
}

func (d *Delivery) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}
	d.date = date
	return nil
}

func (d *Delivery) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery distance", fmt.Errorf("%f is negative", distanceKm))
	}
	d.distanceKm = distanceKm
	return nil
}

func (d *Delivery) setFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%f is negative", fee))
	}
	d.fee = fee
	return nil
}
