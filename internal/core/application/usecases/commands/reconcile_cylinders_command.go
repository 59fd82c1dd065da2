package commands

import (
	"errors"

	"gascylinder/internal/pkg/guard"
)

var ErrReconcileCylindersCommandIsNotConstructed = errors.New(
	"ReconcileCylindersCommand must be created via NewReconcileCylindersCommand constructor",
)

// ReconcileCylindersCommand requests a sweep re-projecting every in-flight
// order onto its cylinder. It carries no parameters; the sweep scope is
// fixed to the statuses with a custody meaning.
type ReconcileCylindersCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileCylindersCommand creates a reconciliation sweep command.
func NewReconcileCylindersCommand() ReconcileCylindersCommand {
	return ReconcileCylindersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileCylindersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCylindersCommandIsNotConstructed)
}
