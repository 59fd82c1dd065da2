package queries

import (
	"context"
	"fmt"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves open orders from the database.
// Filters out terminal orders to provide active delivery workload visibility.
//
// Example:
//
//	handler := NewGetUncompletedOrdersQueryHandler(db)
//	query, _ := NewGetUncompletedOrdersQueryForSupplier(supplierID)
//
//	openOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get open orders: %v", err)
//	    return err
//	}
//
//	if len(openOrders) > 0 {
//	    fmt.Printf("%d orders in progress\n", len(openOrders))
//	}
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the actor's uncompleted orders.
// Excludes Delivered and Rejected orders. Results are sorted by order ID for
// consistent output. The actor column comes from the closed constructor set,
// never from caller input.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			type,
			status,
			cylinder_cyl_id,
			customer_id,
			supplier_id,
			agent_id,
			total,
			delivery_date,
			delivery_timeslot
		FROM orders
		WHERE status NOT IN (?, ?) AND %s = ?
		ORDER BY id
	`, query.column),
		order.Delivered.String(), order.Rejected.String(), query.actorID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetUncompletedOrdersQueryResponse
		var id, customerID, supplierID uuid.UUID
		var agentID uuid.NullUUID

		err = rows.Scan(
			&id,
			&orderResp.Type,
			&orderResp.Status,
			&orderResp.CylID,
			&customerID,
			&supplierID,
			&agentID,
			&orderResp.Total,
			&orderResp.DeliveryDate,
			&orderResp.Timeslot,
		)
		if err != nil {
			return nil, err
		}

		orderResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		orderResp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}

		orderResp.SupplierID, err = kernel.UUIDFromBytes(supplierID[:])
		if err != nil {
			return nil, err
		}

		if agentID.Valid {
			aID, idErr := kernel.UUIDFromBytes(agentID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderResp.AgentID = &aID
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
