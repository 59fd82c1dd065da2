package loyalty

import (
	"errors"
	"fmt"
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

// Domain errors for redemption operations.
var (
	// ErrRedemptionIsNotConstructed is returned when using an improperly initialized Redemption.
	ErrRedemptionIsNotConstructed = errors.New("Redemption must be created via NewRedemption constructor")
	// ErrRedemptionAlreadyProcessed is returned when approving or rejecting a non-pending redemption.
	ErrRedemptionAlreadyProcessed = errors.New("redemption has already been processed")
)

// RedemptionStatus is the processing state of a redemption request.
type RedemptionStatus int

const (
	RedemptionStatusUnknown RedemptionStatus = iota
	RedemptionPending
	RedemptionApproved
	RedemptionRejected
)

func getRedemptionStatusStrings() map[RedemptionStatus]string {
	return map[RedemptionStatus]string{
		RedemptionStatusUnknown: "unknown",
		RedemptionPending:       "pending",
		RedemptionApproved:      "approved",
		RedemptionRejected:      "rejected",
	}
}

// Validate checks that the status is a known non-default value.
func (s RedemptionStatus) Validate() error {
	if s == RedemptionStatusUnknown {
		return errs.NewValueIsRequiredError("redemption status")
	}
	if _, ok := getRedemptionStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("redemption status")
	}
	return nil
}

// String returns the persisted form of the status.
func (s RedemptionStatus) String() string {
	if str, ok := getRedemptionStatusStrings()[s]; ok {
		return str
	}
	return getRedemptionStatusStrings()[RedemptionStatusUnknown]
}

// RedemptionStatusFromString parses a persisted status string.
func RedemptionStatusFromString(s string) (RedemptionStatus, error) {
	for status, str := range getRedemptionStatusStrings() {
		if str == s && status != RedemptionStatusUnknown {
			return status, nil
		}
	}
	return RedemptionStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"redemption status", fmt.Errorf("unknown redemption status: %s", s))
}

// Redemption is a customer's request to claim a loyalty reward. The
// eligibility verdict is frozen at creation and never recomputed; processing
// changes only the status and the audit fields.
type Redemption struct {
	id          kernel.UUID
	supplierID  kernel.UUID
	customerID  kernel.UUID
	orderID     *kernel.UUID
	ruleID      kernel.UUID
	eligible    bool
	status      RedemptionStatus
	requestedAt time.Time
	processedBy *kernel.UUID
	processedAt *time.Time
	guard       guard.ConstructorGuard
}

// NewRedemption records a redemption request with its frozen eligibility
// verdict. An eligible request starts pending; an ineligible one is rejected
// immediately, with no processing actor on record.
func NewRedemption(
	id kernel.UUID,
	supplierID kernel.UUID,
	customerID kernel.UUID,
	orderID *kernel.UUID,
	ruleID kernel.UUID,
	eligible bool,
	requestedAt time.Time,
) (*Redemption, error) {
	redemption := &Redemption{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		redemption.setID(id),
		redemption.setSupplierID(supplierID),
		redemption.setCustomerID(customerID),
		redemption.setOrderID(orderID),
		redemption.setRuleID(ruleID),
		redemption.setRequestedAt(requestedAt),
	); err != nil {
		return nil, err
	}

	redemption.eligible = eligible
	if eligible {
		redemption.status = RedemptionPending
	} else {
		redemption.status = RedemptionRejected
	}

	return redemption, nil
}

// RestoreRedemption reconstructs a Redemption from persistent storage.
func RestoreRedemption(
	id kernel.UUID,
	supplierID kernel.UUID,
	customerID kernel.UUID,
	orderID *kernel.UUID,
	ruleID kernel.UUID,
	eligible bool,
	status RedemptionStatus,
	requestedAt time.Time,
	processedBy *kernel.UUID,
	processedAt *time.Time,
) (*Redemption, error) {
	redemption := &Redemption{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		redemption.setID(id),
		redemption.setSupplierID(supplierID),
		redemption.setCustomerID(customerID),
		redemption.setOrderID(orderID),
		redemption.setRuleID(ruleID),
		redemption.setStatus(status),
		redemption.setRequestedAt(requestedAt),
		redemption.setProcessed(processedBy, processedAt),
	); err != nil {
		return nil, err
	}

	redemption.eligible = eligible
	return redemption, nil
}

// Validate checks if the Redemption was properly constructed.
func (r *Redemption) Validate() error {
	if r == nil {
		return ErrRedemptionIsNotConstructed
	}
	return r.guard.Validate(ErrRedemptionIsNotConstructed)
}

// IsEqual compares two redemptions by ID.
func (r *Redemption) IsEqual(other *Redemption) bool {
	if other == nil {
		return false
	}
	return r.id.IsEqual(other.id)
}

// ID returns the redemption identifier.
func (r *Redemption) ID() kernel.UUID {
	return r.id
}

// SupplierID returns the supplier whose program the redemption targets.
func (r *Redemption) SupplierID() kernel.UUID {
	return r.supplierID
}

// CustomerID returns the requesting customer.
func (r *Redemption) CustomerID() kernel.UUID {
	return r.customerID
}

// OrderID returns the order the redemption is tied to, or nil.
func (r *Redemption) OrderID() *kernel.UUID {
	return r.orderID
}

// RuleID returns the rule the eligibility verdict was computed against.
func (r *Redemption) RuleID() kernel.UUID {
	return r.ruleID
}

// Eligible returns the verdict frozen at request time.
func (r *Redemption) Eligible() bool {
	return r.eligible
}

// Status returns the processing state.
func (r *Redemption) Status() RedemptionStatus {
	return r.status
}

// RequestedAt returns when the redemption was requested.
func (r *Redemption) RequestedAt() time.Time {
	return r.requestedAt
}

// ProcessedBy returns the supplier actor who processed the redemption, or
// nil when it is still pending or was auto-rejected at creation.
func (r *Redemption) ProcessedBy() *kernel.UUID {
	return r.processedBy
}

// ProcessedAt returns when the redemption was processed, or nil.
func (r *Redemption) ProcessedAt() *time.Time {
	return r.processedAt
}

// Approve grants a pending redemption. The frozen eligibility verdict is
// trusted as-is and not re-checked.
func (r *Redemption) Approve(processedBy kernel.UUID, at time.Time) error {
	return r.process(RedemptionApproved, processedBy, at)
}

// Reject declines a pending redemption.
func (r *Redemption) Reject(processedBy kernel.UUID, at time.Time) error {
	return r.process(RedemptionRejected, processedBy, at)
}

func (r *Redemption) process(verdict RedemptionStatus, processedBy kernel.UUID, at time.Time) error {
	if err := processedBy.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("processed at")
	}
	if r.status != RedemptionPending {
		return ErrRedemptionAlreadyProcessed
	}

	r.status = verdict
	r.processedBy = &processedBy
	r.processedAt = &at
	return nil
}

func (r *Redemption) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.id = id
	return nil
}

func (r *Redemption) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	r.supplierID = supplierID
	return nil
}

func (r *Redemption) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	r.customerID = customerID
	return nil
}

func (r *Redemption) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	r.orderID = orderID
	return nil
}

func (r *Redemption) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return err
	}

	r.ruleID = ruleID
	return nil
}

func (r *Redemption) setStatus(status RedemptionStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	r.status = status
	return nil
}

func (r *Redemption) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	r.requestedAt = requestedAt
	return nil
}

func (r *Redemption) setProcessed(processedBy *kernel.UUID, processedAt *time.Time) error {
	if (processedBy == nil) != (processedAt == nil) {
		return errs.NewValueIsInvalidError("processed audit fields")
	}
	if processedBy == nil {
		return nil
	}
	if err := processedBy.Validate(); err != nil {
		return err
	}
	if processedAt.IsZero() {
		return errs.NewValueIsRequiredError("processed at")
	}

	r.processedBy = processedBy
	r.processedAt = processedAt
	return nil
}
