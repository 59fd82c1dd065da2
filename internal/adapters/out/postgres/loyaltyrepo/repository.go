package loyaltyrepo

import (
	"context"
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
	"gascylinder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLoyaltyRepository implements LoyaltyRepository using GORM.
type GormLoyaltyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoyaltyRepository creates a new GORM loyalty repository.
func NewGormLoyaltyRepository(db *gorm.DB, tracker aggregateTracker) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{
		db:      db,
		tracker: tracker,
	}
}

// SaveProgram stores the supplier's program, replacing any previous definition.
// The old tiers and rules are deleted first so the program row and its
// children are always a consistent snapshot of the latest save.
func (r *GormLoyaltyRepository) SaveProgram(ctx context.Context, program *loyalty.Program) error {
	if err := program.Validate(); err != nil {
		return err
	}

	dto := programFromDomain(program)
	db := r.db.WithContext(ctx)

	if err := db.Where("supplier_id = ?", dto.SupplierID).Delete(&TierDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("supplier_id = ?", dto.SupplierID).Delete(&RuleDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("supplier_id = ?", dto.SupplierID).Delete(&ProgramDTO{}).Error; err != nil {
		return err
	}

	if err := db.Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(program.SupplierID(), program)
	return nil
}

// GetProgram retrieves the supplier's program with its tiers and rules.
func (r *GormLoyaltyRepository) GetProgram(
	ctx context.Context,
	supplierID kernel.UUID,
) (*loyalty.Program, error) {
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	var dto ProgramDTO
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_points")
		}).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("nth")
		}).
		First(&dto, "supplier_id = ?", supplierID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("loyalty program", supplierID.String())
		}
		return nil, err
	}

	return programToDomain(dto)
}

// AddRedemption persists a new redemption request.
func (r *GormLoyaltyRepository) AddRedemption(ctx context.Context, redemption *loyalty.Redemption) error {
	if err := redemption.Validate(); err != nil {
		return err
	}

	dto := redemptionFromDomain(redemption)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(redemption.ID(), redemption)
	return nil
}

// UpdateRedemption persists processing changes to a redemption.
// All columns are written so the nullable processing fields round-trip.
func (r *GormLoyaltyRepository) UpdateRedemption(ctx context.Context, redemption *loyalty.Redemption) error {
	if err := redemption.Validate(); err != nil {
		return err
	}

	dto := redemptionFromDomain(redemption)
	result := r.db.WithContext(ctx).
		Model(&RedemptionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(redemption.ID(), redemption)
	return nil
}

// GetRedemption retrieves a redemption by ID.
func (r *GormLoyaltyRepository) GetRedemption(
	ctx context.Context,
	id kernel.UUID,
) (*loyalty.Redemption, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RedemptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("redemption", id.String())
		}
		return nil, err
	}

	return redemptionToDomain(dto)
}
