package queries

import (
	"errors"
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via a NewGetUncompletedOrdersQueryFor constructor",
	)
)

// actorColumn selects which order party the query is scoped to.
type actorColumn string

const (
	actorColumnCustomer actorColumn = "customer_id"
	actorColumnSupplier actorColumn = "supplier_id"
	actorColumnAgent    actorColumn = "agent_id"
)

// GetUncompletedOrdersQuery retrieves the acting party's orders that have not
// reached a terminal status. Customers see the orders they placed, suppliers
// the orders they fulfill, and agents the orders assigned to them.
//
// Example:
//
//	query, err := NewGetUncompletedOrdersQueryForAgent(agentID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetUncompletedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending orders: %w", err)
//	}
//
//	fmt.Printf("Found %d orders awaiting delivery\n", len(orders))
type GetUncompletedOrdersQuery struct {
	column  actorColumn
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQueryForCustomer scopes the query to orders the customer placed.
func NewGetUncompletedOrdersQueryForCustomer(customerID kernel.UUID) (GetUncompletedOrdersQuery, error) {
	return newGetUncompletedOrdersQuery(actorColumnCustomer, customerID)
}

// NewGetUncompletedOrdersQueryForSupplier scopes the query to orders the supplier fulfills.
func NewGetUncompletedOrdersQueryForSupplier(supplierID kernel.UUID) (GetUncompletedOrdersQuery, error) {
	return newGetUncompletedOrdersQuery(actorColumnSupplier, supplierID)
}

// NewGetUncompletedOrdersQueryForAgent scopes the query to orders assigned to the agent.
func NewGetUncompletedOrdersQueryForAgent(agentID kernel.UUID) (GetUncompletedOrdersQuery, error) {
	return newGetUncompletedOrdersQuery(actorColumnAgent, agentID)
}

func newGetUncompletedOrdersQuery(column actorColumn, actorID kernel.UUID) (GetUncompletedOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetUncompletedOrdersQuery{}, err
	}

	return GetUncompletedOrdersQuery{
		column:  column,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetUncompletedOrdersQueryIsNotConstructed if validation fails.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// ActorID returns the party whose open orders are being read.
func (q GetUncompletedOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetUncompletedOrdersQueryResponse represents open order information.
// Type and status carry the persisted string literals; CylID is empty when no
// specific unit was requested.
type GetUncompletedOrdersQueryResponse struct {
	ID           kernel.UUID
	Type         string
	Status       string
	CylID        string
	CustomerID   kernel.UUID
	SupplierID   kernel.UUID
	AgentID      *kernel.UUID
	Total        float64
	DeliveryDate time.Time
	Timeslot     string
}
