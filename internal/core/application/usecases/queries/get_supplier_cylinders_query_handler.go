package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSupplierCylindersQueryHandler retrieves the supplier's cylinder fleet
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
//
// Example:
//
//	handler := NewGetSupplierCylindersQueryHandler(db)
//	query, _ := NewGetSupplierCylindersQuery(supplierID)
//
//	cylinders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get cylinders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d cylinders\n", len(cylinders))
type GetSupplierCylindersQueryHandler struct {
	db *gorm.DB
}

// NewGetSupplierCylindersQueryHandler creates a handler for fleet retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetSupplierCylindersQueryHandler(db *gorm.DB) GetSupplierCylindersQueryHandler {
	return GetSupplierCylindersQueryHandler{db: db}
}

// Handle executes the query to retrieve the supplier's cylinders.
// Returns a slice of cylinder read models sorted by label.
func (h GetSupplierCylindersQueryHandler) Handle(
	ctx context.Context,
	query GetSupplierCylindersQuery,
) ([]GetSupplierCylindersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cylinders := make([]GetSupplierCylindersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			cyl_id,
			size,
			brand,
			price,
			refill_price,
			condition,
			status,
			owner,
			location_text
		FROM cylinders
		WHERE supplier_id = ?
		ORDER BY cyl_id
	`, query.SupplierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cyl GetSupplierCylindersQueryResponse

		err = rows.Scan(
			&cyl.CylID,
			&cyl.Size,
			&cyl.Brand,
			&cyl.Price,
			&cyl.RefillPrice,
			&cyl.Condition,
			&cyl.Status,
			&cyl.Owner,
			&cyl.LocationText,
		)
		if err != nil {
			return nil, err
		}

		cylinders = append(cylinders, cyl)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cylinders, nil
}
