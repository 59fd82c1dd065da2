package commands_test

import (
	"testing"
	"time"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

const testCylID = "CYL-0042"

func testSnapshot(t *testing.T) order.CylinderSnapshot {
	t.Helper()
	s, err := order.NewCylinderSnapshot(testCylID, "13kg", "ProGas", 2500)
	require.NoError(t, err)
	return s
}

func testDelivery(t *testing.T) order.Delivery {
	t.Helper()
	d, err := order.NewDelivery(
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "09:00-12:00", 4.2, 150)
	require.NoError(t, err)
	return d
}

func newPendingOrder(t *testing.T, orderType order.Type,
	customerID, supplierID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderType, kernel.NewUUID(), customerID, supplierID,
		testSnapshot(t), testDelivery(t), 2650)
	require.NoError(t, err)
	return o
}

// newAcceptedOrder walks a pending order through approval, assignment and
// the agent's acceptance.
func newAcceptedOrder(t *testing.T, orderType order.Type,
	customerID, supplierID, agentID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, orderType, customerID, supplierID)
	require.NoError(t, o.Approve())
	require.NoError(t, o.Assign(agentID))
	require.NoError(t, o.Accept(agentID))
	return o
}

func newInTransitOrder(t *testing.T, customerID, supplierID, agentID kernel.UUID) *order.Order {
	t.Helper()
	o := newAcceptedOrder(t, order.TypeOrder, customerID, supplierID, agentID)
	require.NoError(t, o.PickupByScan(agentID, testCylID))
	return o
}

func newDeliveredOrder(t *testing.T, customerID, supplierID, agentID kernel.UUID) *order.Order {
	t.Helper()
	o := newInTransitOrder(t, customerID, supplierID, agentID)
	require.NoError(t, o.Deliver(agentID))
	return o
}

func newTestCylinder(t *testing.T, supplierID kernel.UUID) *cylinder.Cylinder {
	t.Helper()
	c, err := cylinder.NewCylinder(supplierID, testCylID, "13kg", "ProGas",
		2500, 1100, cylinder.ConditionNew, "Main depot", nil)
	require.NoError(t, err)
	return c
}
