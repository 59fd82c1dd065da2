// Package cylinderrepo provides data transfer objects and mapping functions for cylinder persistence.
// This package implements the repository pattern for the cylinder domain aggregate, handling
// the conversion between domain entities and database representations.
package cylinderrepo

import (
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CylinderDTO represents the database structure for persisting cylinder aggregates.
// The composite primary key (supplier_id, cyl_id) enforces label uniqueness per
// supplier at the storage level. Status, owner, and condition are stored as their
// persisted string literals.
type CylinderDTO struct {
	SupplierID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CylID        string    `gorm:"type:varchar(64);primaryKey"`
	Size         string    `gorm:"type:varchar(32);not null"`
	Brand        string    `gorm:"type:varchar(255);not null"`
	Price        float64   `gorm:"not null"`
	RefillPrice  float64   `gorm:"not null"`
	Condition    string    `gorm:"type:varchar(16);not null"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
	Owner        string    `gorm:"type:varchar(16);not null"`
	LocationText string    `gorm:"type:varchar(255)"`
	Latitude     *float64
	Longitude    *float64
}

// TableName specifies the database table name for cylinder entities.
// Overrides GORM's default naming convention to use "cylinders".
func (CylinderDTO) TableName() string {
	return "cylinders"
}

// fromDomain converts a cylinder domain aggregate to its database representation.
func fromDomain(cyl *cylinder.Cylinder) CylinderDTO {
	var latitude, longitude *float64
	if loc := cyl.Location(); loc != nil {
		lat := loc.Latitude()
		lon := loc.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return CylinderDTO{
		SupplierID:   cyl.SupplierID().Bytes(),
		CylID:        cyl.CylID(),
		Size:         cyl.Size(),
		Brand:        cyl.Brand(),
		Price:        cyl.Price(),
		RefillPrice:  cyl.RefillPrice(),
		Condition:    cyl.Condition().String(),
		Status:       cyl.Status().String(),
		Owner:        cyl.Owner().String(),
		LocationText: cyl.LocationText(),
		Latitude:     latitude,
		Longitude:    longitude,
	}
}

// toDomain converts a database DTO to a cylinder domain aggregate.
// Reconstructs the aggregate including status and custody using RestoreCylinder,
// which re-validates the status/owner pair.
func toDomain(dto CylinderDTO) (*cylinder.Cylinder, error) {
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	condition, err := cylinder.ConditionFromString(dto.Condition)
	if err != nil {
		return nil, err
	}

	status, err := cylinder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	owner, err := cylinder.OwnerFromString(dto.Owner)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return cylinder.RestoreCylinder(
		supplierID,
		dto.CylID,
		dto.Size,
		dto.Brand,
		dto.Price,
		dto.RefillPrice,
		condition,
		status,
		owner,
		dto.LocationText,
		location,
	)
}
