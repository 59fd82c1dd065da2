package orderrepo

import (
	"context"
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
// All columns are written explicitly so cleared handoff credentials and reset
// flags are persisted rather than skipped as zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatuses retrieves all orders currently in any of the given statuses.
func (r *GormOrderRepository) GetAllInStatuses(
	ctx context.Context,
	statuses ...order.Status,
) ([]*order.Order, error) {
	literals := make([]string, 0, len(statuses))
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return nil, err
		}
		literals = append(literals, status.String())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status IN ?", literals).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountDelivered counts the customer's historical delivered orders with the
// supplier. When refillOnly is set, only refill orders count.
func (r *GormOrderRepository) CountDelivered(
	ctx context.Context,
	supplierID, customerID kernel.UUID,
	refillOnly bool,
) (int, error) {
	if err := errors.Join(supplierID.Validate(), customerID.Validate()); err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("supplier_id = ? AND customer_id = ? AND status = ?",
			supplierID.Bytes(), customerID.Bytes(), order.Delivered.String())
	if refillOnly {
		query = query.Where("type = ?", order.TypeRefill.String())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// HasDeliveredCylinder reports whether the customer has a delivered order from
// the supplier carrying the given cylinder label.
func (r *GormOrderRepository) HasDeliveredCylinder(
	ctx context.Context,
	supplierID, customerID kernel.UUID,
	cylID string,
) (bool, error) {
	if err := errors.Join(supplierID.Validate(), customerID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("supplier_id = ? AND customer_id = ? AND status = ? AND cylinder_cyl_id = ?",
			supplierID.Bytes(), customerID.Bytes(), order.Delivered.String(), cylID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
