package loyalty

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

// Domain errors for loyalty program operations.
var (
	// ErrProgramIsNotConstructed is returned when using an improperly initialized Program.
	ErrProgramIsNotConstructed = errors.New("Program must be created via NewProgram constructor")
	// ErrTierIsNotConstructed is returned when using an improperly initialized Tier.
	ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")
	// ErrRuleNotFound is returned when a program has no rule with the requested ID.
	ErrRuleNotFound = errors.New("rule not found in loyalty program")
	// ErrRuleInactive is returned when the requested rule exists but is switched off.
	ErrRuleInactive = errors.New("rule is inactive")
)

// Tier is a named points threshold inside a loyalty program.
type Tier struct {
	name      string
	minPoints int
	guard     guard.ConstructorGuard
}

// NewTier creates a validated Tier.
func NewTier(name string, minPoints int) (Tier, error) {
	if name == "" {
		return Tier{}, errs.NewValueIsRequiredError("tier name")
	}
	if minPoints < 0 {
		return Tier{}, errs.NewValueIsOutOfRangeError("min points", minPoints, 0, nil)
	}

	return Tier{
		name:      name,
		minPoints: minPoints,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the tier was built via NewTier.
func (t Tier) Validate() error {
	return t.guard.Validate(ErrTierIsNotConstructed)
}

// Name returns the tier's display name.
func (t Tier) Name() string {
	return t.name
}

// MinPoints returns the points threshold that places a customer in this tier.
func (t Tier) MinPoints() int {
	return t.minPoints
}

// Program is a supplier's loyalty configuration: a points divisor, ordered
// tiers and the reward rules evaluated on redemption requests. A supplier
// owns at most one program and replaces it wholesale on save.
type Program struct {
	supplierID    kernel.UUID
	pointsDivisor int
	tiers         []Tier
	rules         []Rule
	guard         guard.ConstructorGuard
}

// NewProgram creates a validated Program. It serves both fresh saves and
// restoration from storage since a program carries no further lifecycle
// state beyond its definition.
func NewProgram(supplierID kernel.UUID, pointsDivisor int, tiers []Tier, rules []Rule) (*Program, error) {
	program := &Program{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		program.setSupplierID(supplierID),
		program.setPointsDivisor(pointsDivisor),
		program.setTiers(tiers),
		program.setRules(rules),
	); err != nil {
		return nil, err
	}

	return program, nil
}

// Validate checks if the Program was properly constructed via NewProgram.
func (p *Program) Validate() error {
	if p == nil {
		return ErrProgramIsNotConstructed
	}
	return p.guard.Validate(ErrProgramIsNotConstructed)
}

// IsEqual compares two programs by owning supplier.
func (p *Program) IsEqual(other *Program) bool {
	if other == nil {
		return false
	}
	return p.supplierID.IsEqual(other.supplierID)
}

// SupplierID returns the owning supplier.
func (p *Program) SupplierID() kernel.UUID {
	return p.supplierID
}

// PointsDivisor returns the amount of spend that earns one point.
func (p *Program) PointsDivisor() int {
	return p.pointsDivisor
}

// Tiers returns a copy of the program's tiers.
func (p *Program) Tiers() []Tier {
	out := make([]Tier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

// Rules returns a copy of the program's rules.
func (p *Program) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// PointsFor converts an order total into earned points.
func (p *Program) PointsFor(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(total) / p.pointsDivisor
}

// TierFor returns the highest tier whose threshold the given points reach,
// or false when the points fall below every tier.
func (p *Program) TierFor(points int) (Tier, bool) {
	var best Tier
	found := false
	for _, tier := range p.tiers {
		if points >= tier.MinPoints() && (!found || tier.MinPoints() > best.MinPoints()) {
			best = tier
			found = true
		}
	}
	return best, found
}

// ActiveRule returns the active rule with the given ID. It distinguishes a
// missing rule from one that exists but is switched off.
func (p *Program) ActiveRule(ruleID kernel.UUID) (Rule, error) {
	if err := ruleID.Validate(); err != nil {
		return Rule{}, err
	}

	for _, rule := range p.rules {
		if rule.ID().IsEqual(ruleID) {
			if !rule.Active() {
				return Rule{}, ErrRuleInactive
			}
			return rule, nil
		}
	}

	return Rule{}, ErrRuleNotFound
}

func (p *Program) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	p.supplierID = supplierID
	return nil
}

func (p *Program) setPointsDivisor(pointsDivisor int) error {
	if pointsDivisor < 1 {
		return errs.NewValueIsOutOfRangeError("points divisor", pointsDivisor, 1, nil)
	}

	p.pointsDivisor = pointsDivisor
	return nil
}

func (p *Program) setTiers(tiers []Tier) error {
	for _, tier := range tiers {
		if err := tier.Validate(); err != nil {
			return err
		}
	}

	p.tiers = make([]Tier, len(tiers))
	copy(p.tiers, tiers)
	return nil
}

func (p *Program) setRules(rules []Rule) error {
	seen := make(map[kernel.UUID]struct{}, len(rules))
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return err
		}
		if _, ok := seen[rule.ID()]; ok {
			return errs.NewObjectAlreadyExistsError("rule", rule.ID())
		}
		seen[rule.ID()] = struct{}{}
	}

	p.rules = make([]Rule, len(rules))
	copy(p.rules, rules)
	return nil
}
