package loyalty

import (
	"errors"
	"fmt"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

// TriggerType selects which historical orders a rule counts.
type TriggerType int

const (
	TriggerTypeUnknown TriggerType = iota
	// TriggerTypeNthOrder counts every delivered order of the customer.
	TriggerTypeNthOrder
	// TriggerTypeNthRefill counts delivered refill orders only.
	TriggerTypeNthRefill
)

func getTriggerTypeStrings() map[TriggerType]string {
	return map[TriggerType]string{
		TriggerTypeUnknown:   "unknown",
		TriggerTypeNthOrder:  "nth_order",
		TriggerTypeNthRefill: "nth_refill",
	}
}

// Validate checks that the trigger type is a known non-default value.
func (t TriggerType) Validate() error {
	if t == TriggerTypeUnknown {
		return errs.NewValueIsRequiredError("trigger type")
	}
	if _, ok := getTriggerTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidError("trigger type")
	}
	return nil
}

// String returns the persisted form of the trigger type.
func (t TriggerType) String() string {
	if s, ok := getTriggerTypeStrings()[t]; ok {
		return s
	}
	return getTriggerTypeStrings()[TriggerTypeUnknown]
}

// TriggerTypeFromString parses a persisted trigger type string.
func TriggerTypeFromString(s string) (TriggerType, error) {
	for triggerType, str := range getTriggerTypeStrings() {
		if str == s && triggerType != TriggerTypeUnknown {
			return triggerType, nil
		}
	}
	return TriggerTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"trigger type", fmt.Errorf("unknown trigger type: %s", s))
}

// RewardType names the benefit a satisfied rule grants.
type RewardType int

const (
	RewardTypeUnknown RewardType = iota
	RewardTypePercentOff
	RewardTypeFreeDelivery
	RewardTypeFixedAmount
)

func getRewardTypeStrings() map[RewardType]string {
	return map[RewardType]string{
		RewardTypeUnknown:      "unknown",
		RewardTypePercentOff:   "percent_off",
		RewardTypeFreeDelivery: "free_delivery",
		RewardTypeFixedAmount:  "fixed_amount",
	}
}

// Validate checks that the reward type is a known non-default value.
func (r RewardType) Validate() error {
	if r == RewardTypeUnknown {
		return errs.NewValueIsRequiredError("reward type")
	}
	if _, ok := getRewardTypeStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("reward type")
	}
	return nil
}

// String returns the persisted form of the reward type.
func (r RewardType) String() string {
	if s, ok := getRewardTypeStrings()[r]; ok {
		return s
	}
	return getRewardTypeStrings()[RewardTypeUnknown]
}

// RewardTypeFromString parses a persisted reward type string.
func RewardTypeFromString(s string) (RewardType, error) {
	for rewardType, str := range getRewardTypeStrings() {
		if str == s && rewardType != RewardTypeUnknown {
			return rewardType, nil
		}
	}
	return RewardTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"reward type", fmt.Errorf("unknown reward type: %s", s))
}

// ErrRuleIsNotConstructed is returned when using an improperly initialized Rule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

// Rule is a single reward rule inside a supplier's loyalty program.
// It fires on the customer's nth qualifying delivered order.
type Rule struct {
	id          kernel.UUID
	triggerType TriggerType
	nth         int
	rewardType  RewardType
	value       float64
	active      bool
	guard       guard.ConstructorGuard
}

// NewRule creates a validated Rule. The nth threshold counts qualifying
// orders starting at 1, so nth=1 rewards the customer's first order.
func NewRule(
	id kernel.UUID,
	triggerType TriggerType,
	nth int,
	rewardType RewardType,
	value float64,
	active bool,
) (Rule, error) {
	if err := id.Validate(); err != nil {
		return Rule{}, err
	}
	if err := triggerType.Validate(); err != nil {
		return Rule{}, err
	}
	if nth < 1 {
		return Rule{}, errs.NewValueIsOutOfRangeError("nth", nth, 1, nil)
	}
	if err := rewardType.Validate(); err != nil {
		return Rule{}, err
	}
	if value < 0 {
		return Rule{}, errs.NewValueIsInvalidError("value")
	}

	return Rule{
		id:          id,
		triggerType: triggerType,
		nth:         nth,
		rewardType:  rewardType,
		value:       value,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the rule was built via NewRule.
func (r Rule) Validate() error {
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

// ID returns the rule identifier.
func (r Rule) ID() kernel.UUID {
	return r.id
}

// TriggerType returns which orders the rule counts.
func (r Rule) TriggerType() TriggerType {
	return r.triggerType
}

// Nth returns the qualifying-order threshold.
func (r Rule) Nth() int {
	return r.nth
}

// RewardType returns the granted benefit kind.
func (r Rule) RewardType() RewardType {
	return r.rewardType
}

// Value returns the reward magnitude. Its unit depends on the reward type.
func (r Rule) Value() float64 {
	return r.value
}

// Active reports whether the rule participates in eligibility checks.
func (r Rule) Active() bool {
	return r.active
}

// Satisfied reports whether the event being requested right now would be the
// customer's nth qualifying order. priorCount is the historical count of
// matching delivered orders, excluding the current event.
func (r Rule) Satisfied(priorCount int) bool {
	if !r.active || priorCount < 0 {
		return false
	}
	return priorCount+1 >= r.nth
}
