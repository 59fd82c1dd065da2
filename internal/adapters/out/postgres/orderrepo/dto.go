// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The cylinder snapshot and delivery schedule are embedded value objects; the
// handoff credential columns are nullable and populated only while a code is
// outstanding. Type and status are stored as their persisted string literals.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index"`

	Type   string `gorm:"type:varchar(16);not null"`
	Status string `gorm:"type:varchar(16);not null;index"`

	Cylinder SnapshotDTO `gorm:"embedded;embeddedPrefix:cylinder_"`
	Delivery DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Total    float64     `gorm:"not null"`

	AgentAccepted    bool `gorm:"not null"`
	MarkedAtSupplier bool `gorm:"not null"`

	Handoff HandoffDTO `gorm:"embedded;embeddedPrefix:handoff_"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// SnapshotDTO represents the embedded cylinder snapshot within the order table.
// CylID is empty when no specific unit was requested.
type SnapshotDTO struct {
	CylID string  `gorm:"type:varchar(64)"`
	Size  string  `gorm:"type:varchar(32);not null"`
	Brand string  `gorm:"type:varchar(255);not null"`
	Price float64 `gorm:"not null"`
}

// DeliveryDTO represents the embedded delivery schedule within the order table.
type DeliveryDTO struct {
	Date       time.Time `gorm:"not null"`
	Timeslot   string    `gorm:"type:varchar(32)"`
	DistanceKm float64
	Fee        float64
}

// HandoffDTO represents the embedded handoff credential columns.
// All three are set while a code is outstanding and cleared together when the
// code is consumed or replaced.
type HandoffDTO struct {
	Purpose   *string `gorm:"type:varchar(16)"`
	CodeHash  *string `gorm:"type:varchar(255)"`
	ExpiresAt *time.Time
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	var handoff HandoffDTO
	if credential := o.Handoff(); credential != nil {
		purpose := credential.Purpose().String()
		codeHash := credential.CodeHash()
		expiresAt := credential.ExpiresAt()
		handoff = HandoffDTO{
			Purpose:   &purpose,
			CodeHash:  &codeHash,
			ExpiresAt: &expiresAt,
		}
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		SupplierID: o.SupplierID().Bytes(),
		AgentID:    agentID,
		Type:       o.Type().String(),
		Status:     o.Status().String(),
		Cylinder: SnapshotDTO{
			CylID: o.Snapshot().CylID(),
			Size:  o.Snapshot().Size(),
			Brand: o.Snapshot().Brand(),
			Price: o.Snapshot().Price(),
		},
		Delivery: DeliveryDTO{
			Date:       o.Delivery().Date(),
			Timeslot:   o.Delivery().Timeslot(),
			DistanceKm: o.Delivery().DistanceKm(),
			Fee:        o.Delivery().Fee(),
		},
		Total:            o.Total(),
		AgentAccepted:    o.AgentAccepted(),
		MarkedAtSupplier: o.MarkedAtSupplier(),
		Handoff:          handoff,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the handoff credential using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	orderType, err := order.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	snapshot, err := order.NewCylinderSnapshot(
		dto.Cylinder.CylID, dto.Cylinder.Size, dto.Cylinder.Brand, dto.Cylinder.Price)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewDelivery(
		dto.Delivery.Date, dto.Delivery.Timeslot, dto.Delivery.DistanceKm, dto.Delivery.Fee)
	if err != nil {
		return nil, err
	}

	handoff, err := handoffToDomain(dto.Handoff)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		orderType,
		id,
		customerID,
		supplierID,
		snapshot,
		delivery,
		dto.Total,
		status,
		agentID,
		dto.AgentAccepted,
		dto.MarkedAtSupplier,
		handoff,
	)
}

// handoffToDomain reconstructs the optional handoff credential from its columns.
func handoffToDomain(dto HandoffDTO) (*order.HandoffCredential, error) {
	if dto.Purpose == nil || dto.CodeHash == nil || dto.ExpiresAt == nil {
		return nil, nil //nolint:nilnil //absence of a credential is a valid state
	}

	purpose, err := order.HandoffPurposeFromString(*dto.Purpose)
	if err != nil {
		return nil, err
	}

	credential, err := order.NewHandoffCredential(purpose, *dto.CodeHash, *dto.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &credential, nil
}
