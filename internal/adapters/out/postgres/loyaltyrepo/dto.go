// Package loyaltyrepo provides data transfer objects and mapping functions for
// loyalty persistence. It covers both halves of the loyalty aggregate family:
// the per-supplier program definition (with its tiers and rules) and the
// redemption requests evaluated against it.
package loyaltyrepo

import (
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"

	"github.com/google/uuid"
)

// ProgramDTO represents the database structure for persisting loyalty programs.
// A supplier owns at most one program; tiers and rules are child rows replaced
// together with the program on save.
type ProgramDTO struct {
	SupplierID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PointsDivisor int       `gorm:"not null"`
	Tiers         []TierDTO `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	Rules         []RuleDTO `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for loyalty program entities.
func (ProgramDTO) TableName() string {
	return "loyalty_programs"
}

// TierDTO represents a named points threshold within a supplier's program.
type TierDTO struct {
	SupplierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);primaryKey"`
	MinPoints  int       `gorm:"not null"`
}

// TableName specifies the database table name for loyalty tier entities.
func (TierDTO) TableName() string {
	return "loyalty_tiers"
}

// RuleDTO represents a reward rule within a supplier's program.
// Trigger and reward types are stored as their persisted string literals.
type RuleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TriggerType string    `gorm:"type:varchar(16);not null"`
	Nth         int       `gorm:"not null"`
	RewardType  string    `gorm:"type:varchar(16);not null"`
	Value       float64   `gorm:"not null"`
	Active      bool      `gorm:"not null"`
}

// TableName specifies the database table name for loyalty rule entities.
func (RuleDTO) TableName() string {
	return "loyalty_rules"
}

// RedemptionDTO represents the database structure for persisting redemption
// requests. The eligibility verdict is frozen at creation; processing columns
// are nullable until a supplier decides.
type RedemptionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SupplierID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	RuleID      uuid.UUID  `gorm:"type:uuid;not null"`
	Eligible    bool       `gorm:"not null"`
	Status      string     `gorm:"type:varchar(16);not null;index"`
	RequestedAt time.Time  `gorm:"not null"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time
}

// TableName specifies the database table name for redemption entities.
func (RedemptionDTO) TableName() string {
	return "redemptions"
}

// programFromDomain converts a loyalty program aggregate to its database representation.
func programFromDomain(program *loyalty.Program) ProgramDTO {
	supplierID := program.SupplierID().Bytes()

	tiers := make([]TierDTO, 0, len(program.Tiers()))
	for _, tier := range program.Tiers() {
		tiers = append(tiers, TierDTO{
			SupplierID: supplierID,
			Name:       tier.Name(),
			MinPoints:  tier.MinPoints(),
		})
	}

	rules := make([]RuleDTO, 0, len(program.Rules()))
	for _, rule := range program.Rules() {
		rules = append(rules, RuleDTO{
			ID:          rule.ID().Bytes(),
			SupplierID:  supplierID,
			TriggerType: rule.TriggerType().String(),
			Nth:         rule.Nth(),
			RewardType:  rule.RewardType().String(),
			Value:       rule.Value(),
			Active:      rule.Active(),
		})
	}

	return ProgramDTO{
		SupplierID:    supplierID,
		PointsDivisor: program.PointsDivisor(),
		Tiers:         tiers,
		Rules:         rules,
	}
}

// programToDomain converts a database DTO to a loyalty program aggregate.
func programToDomain(dto ProgramDTO) (*loyalty.Program, error) {
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	tiers := make([]loyalty.Tier, 0, len(dto.Tiers))
	for _, tierDTO := range dto.Tiers {
		tier, tierErr := loyalty.NewTier(tierDTO.Name, tierDTO.MinPoints)
		if tierErr != nil {
			return nil, tierErr
		}
		tiers = append(tiers, tier)
	}

	rules := make([]loyalty.Rule, 0, len(dto.Rules))
	for _, ruleDTO := range dto.Rules {
		rule, ruleErr := ruleToDomain(ruleDTO)
		if ruleErr != nil {
			return nil, ruleErr
		}
		rules = append(rules, rule)
	}

	return loyalty.NewProgram(supplierID, dto.PointsDivisor, tiers, rules)
}

func ruleToDomain(dto RuleDTO) (loyalty.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return loyalty.Rule{}, err
	}

	triggerType, err := loyalty.TriggerTypeFromString(dto.TriggerType)
	if err != nil {
		return loyalty.Rule{}, err
	}

	rewardType, err := loyalty.RewardTypeFromString(dto.RewardType)
	if err != nil {
		return loyalty.Rule{}, err
	}

	return loyalty.NewRule(id, triggerType, dto.Nth, rewardType, dto.Value, dto.Active)
}

// redemptionFromDomain converts a redemption aggregate to its database representation.
func redemptionFromDomain(redemption *loyalty.Redemption) RedemptionDTO {
	var orderID *uuid.UUID
	if id := redemption.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	var processedBy *uuid.UUID
	if id := redemption.ProcessedBy(); id != nil {
		raw := id.Bytes()
		processedBy = &raw
	}

	return RedemptionDTO{
		ID:          redemption.ID().Bytes(),
		SupplierID:  redemption.SupplierID().Bytes(),
		CustomerID:  redemption.CustomerID().Bytes(),
		OrderID:     orderID,
		RuleID:      redemption.RuleID().Bytes(),
		Eligible:    redemption.Eligible(),
		Status:      redemption.Status().String(),
		RequestedAt: redemption.RequestedAt(),
		ProcessedBy: processedBy,
		ProcessedAt: redemption.ProcessedAt(),
	}
}

// redemptionToDomain converts a database DTO to a redemption aggregate.
func redemptionToDomain(dto RedemptionDTO) (*loyalty.Redemption, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	ruleID, err := kernel.UUIDFromBytes(dto.RuleID[:])
	if err != nil {
		return nil, err
	}

	status, err := loyalty.RedemptionStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var processedBy *kernel.UUID
	if dto.ProcessedBy != nil {
		pID, processedErr := kernel.UUIDFromBytes((*dto.ProcessedBy)[:])
		if processedErr != nil {
			return nil, processedErr
		}
		processedBy = &pID
	}

	return loyalty.RestoreRedemption(
		id,
		supplierID,
		customerID,
		orderID,
		ruleID,
		dto.Eligible,
		status,
		dto.RequestedAt,
		processedBy,
		dto.ProcessedAt,
	)
}
