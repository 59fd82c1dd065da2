package queries

import (
	"context"
	"database/sql"
	"time"

	"gascylinder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRedemptionsQueryHandler retrieves a supplier's redemption queue from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
//
// Example:
//
//	handler := NewGetRedemptionsQueryHandler(db)
//	query, _ := NewGetRedemptionsQuery(supplierID)
//
//	redemptions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get redemptions: %v", err)
//	    return err
//	}
type GetRedemptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetRedemptionsQueryHandler creates a handler for redemption queue queries.
// Requires a GORM database connection for query execution.
func NewGetRedemptionsQueryHandler(db *gorm.DB) GetRedemptionsQueryHandler {
	return GetRedemptionsQueryHandler{db: db}
}

// Handle executes the query to retrieve the supplier's redemptions.
// Returns redemption read models sorted newest first.
func (h GetRedemptionsQueryHandler) Handle(
	ctx context.Context,
	query GetRedemptionsQuery,
) ([]GetRedemptionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	redemptions := make([]GetRedemptionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			order_id,
			rule_id,
			eligible,
			status,
			requested_at,
			processed_by,
			processed_at
		FROM redemptions
		WHERE supplier_id = ?
		ORDER BY requested_at DESC
	`, query.SupplierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetRedemptionsQueryResponse
		var id, customerID, ruleID uuid.UUID
		var orderID, processedBy uuid.NullUUID
		var processedAt sql.NullTime

		err = rows.Scan(
			&id,
			&customerID,
			&orderID,
			&ruleID,
			&resp.Eligible,
			&resp.Status,
			&resp.RequestedAt,
			&processedBy,
			&processedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}

		resp.RuleID, err = kernel.UUIDFromBytes(ruleID[:])
		if err != nil {
			return nil, err
		}

		if orderID.Valid {
			oID, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.OrderID = &oID
		}

		if processedBy.Valid {
			pID, idErr := kernel.UUIDFromBytes(processedBy.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.ProcessedBy = &pID
		}

		if processedAt.Valid {
			at := processedAt.Time.In(time.UTC)
			resp.ProcessedAt = &at
		}

		redemptions = append(redemptions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return redemptions, nil
}
