package cylinder

import (
	"fmt"

	"gascylinder/internal/pkg/errs"
)

// Condition records the physical condition of a cylinder as assessed by the supplier.
type Condition int

const (
	// ConditionUnknown represents an invalid or undefined condition.
	ConditionUnknown Condition = iota

	// ConditionNew marks a factory-fresh cylinder.
	ConditionNew

	// ConditionUsed marks a cylinder that has been through at least one refill cycle.
	ConditionUsed

	// ConditionDamaged marks a cylinder with visible damage.
	ConditionDamaged
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		ConditionUnknown: "Unknown",
		ConditionNew:     "New",
		ConditionUsed:    "Used",
		ConditionDamaged: "Damaged",
	}
}

func getValidConditionStrings() map[Condition]string {
	//nolint:exhaustive // ConditionUnknown is intentionally excluded as it's invalid
	return map[Condition]string{
		ConditionNew:     "New",
		ConditionUsed:    "Used",
		ConditionDamaged: "Damaged",
	}
}

// ConditionFromString parses a persisted condition literal.
func ConditionFromString(s string) (Condition, error) {
	for condition, str := range getValidConditionStrings() {
		if str == s {
			return condition, nil
		}
	}
	return ConditionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"cylinder condition", fmt.Errorf("%q is not a valid condition", s))
}

// Validate checks if the Condition value is one of the closed set.
func (c Condition) Validate() error {
	if _, ok := getValidConditionStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cylinder condition", fmt.Errorf("%d is not a valid condition", c))
	}
	return nil
}

// String returns the persisted literal for the condition, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (c Condition) String() string {
	if str, ok := getConditionStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
