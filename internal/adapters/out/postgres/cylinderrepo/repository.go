package cylinderrepo

import (
	"context"
	"errors"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// GormCylinderRepository implements CylinderRepository using GORM.
type GormCylinderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCylinderRepository creates a new GORM cylinder repository.
func NewGormCylinderRepository(db *gorm.DB, tracker aggregateTracker) *GormCylinderRepository {
	return &GormCylinderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cylinder to the database.
// A primary key collision on (supplier_id, cyl_id) means the supplier already
// registered the label and surfaces as ObjectAlreadyExistsError.
func (r *GormCylinderRepository) Add(ctx context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("cylID", aggregate.CylID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.SupplierID(), aggregate)
	return nil
}

// Update saves an existing cylinder to the database.
// All columns are written so cleared optional fields are persisted too.
func (r *GormCylinderRepository) Update(ctx context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CylinderDTO{}).
		Where("supplier_id = ? AND cyl_id = ?", dto.SupplierID, dto.CylID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.SupplierID(), aggregate)
	return nil
}

// Get retrieves a cylinder by its (supplierID, cylID) identity pair.
func (r *GormCylinderRepository) Get(
	ctx context.Context,
	supplierID kernel.UUID,
	cylID string,
) (*cylinder.Cylinder, error) {
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	var dto CylinderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "supplier_id = ? AND cyl_id = ?", supplierID.Bytes(), cylID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cylID", cylID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllBySupplier retrieves every cylinder registered by the supplier,
// ordered by label.
func (r *GormCylinderRepository) GetAllBySupplier(
	ctx context.Context,
	supplierID kernel.UUID,
) ([]*cylinder.Cylinder, error) {
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CylinderDTO
	err := r.db.WithContext(ctx).
		Order("cyl_id").
		Find(&dtos, "supplier_id = ?", supplierID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	cylinders := make([]*cylinder.Cylinder, 0, len(dtos))
	for _, dto := range dtos {
		cyl, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		cylinders = append(cylinders, cyl)
	}

	return cylinders, nil
}

// Book reserves an Available cylinder with a single conditional write.
// The status predicate in the WHERE clause makes the Available-to-Booked
// transition atomic: of any number of concurrent bookings exactly one
// matches the row, the rest see zero affected rows.
func (r *GormCylinderRepository) Book(ctx context.Context, supplierID kernel.UUID, cylID string) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CylinderDTO{}).
		Where("supplier_id = ? AND cyl_id = ? AND status = ?",
			supplierID.Bytes(), cylID, cylinder.StatusAvailable.String()).
		Update("status", cylinder.StatusBooked.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing cylinder from one that lost the race.
		if _, err := r.Get(ctx, supplierID, cylID); err != nil {
			return err
		}
		return cylinder.ErrNotAvailable
	}

	return nil
}

// Release returns a Booked cylinder to Available. The conditional write makes
// releasing a cylinder that is not Booked a no-op, so compensating releases
// can be retried safely.
func (r *GormCylinderRepository) Release(ctx context.Context, supplierID kernel.UUID, cylID string) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&CylinderDTO{}).
		Where("supplier_id = ? AND cyl_id = ? AND status = ?",
			supplierID.Bytes(), cylID, cylinder.StatusBooked.String()).
		Update("status", cylinder.StatusAvailable.String()).Error
}
