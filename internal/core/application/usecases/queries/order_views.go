// Package queries contains read-side operations over the order store.
// Query handlers bypass the domain aggregates and read display projections
// straight from the database, following the CQRS split used for commands.
package queries

import (
	"context"
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fetchOrderViews loads order display rows matching the given WHERE clause
// (without the leading keyword), newest first, and resolves the product name
// of every line in a second query.
func fetchOrderViews(ctx context.Context, db *gorm.DB, where string, args ...any) ([]OrderView, error) {
	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)

	query := `
		SELECT
			id,
			buyer_id,
			status,
			total,
			address_street,
			address_city,
			assigned_to,
			created_at
		FROM orders
	`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			buyerID    uuid.UUID
			status     int
			total      int64
			street     string
			city       string
			assignedTo *uuid.UUID
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &buyerID, &status, &total, &street, &city, &assignedTo, &createdAt); err != nil {
			return nil, err
		}

		view, viewErr := buildOrderView(id, buyerID, status, total, street, city, assignedTo, createdAt)
		if viewErr != nil {
			return nil, viewErr
		}

		index[id] = len(views)
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	if err = attachLines(ctx, db, views, index); err != nil {
		return nil, err
	}

	return views, nil
}

func buildOrderView(
	id, buyerID uuid.UUID,
	status int,
	total int64,
	street, city string,
	assignedTo *uuid.UUID,
	createdAt time.Time,
) (OrderView, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderView{}, err
	}

	buyer, err := kernel.UUIDFromBytes(buyerID[:])
	if err != nil {
		return OrderView{}, err
	}

	var assignee *kernel.UUID
	if assignedTo != nil {
		aID, aErr := kernel.UUIDFromBytes((*assignedTo)[:])
		if aErr != nil {
			return OrderView{}, aErr
		}
		assignee = &aID
	}

	return OrderView{
		ID:         orderID,
		BuyerID:    buyer,
		Status:     order.Status(status).String(),
		Total:      total,
		Street:     street,
		City:       city,
		AssignedTo: assignee,
		CreatedAt:  createdAt,
		Lines:      make([]OrderLineView, 0),
	}, nil
}

// attachLines resolves line items with product names for the given views.
// Products removed from the catalog keep their line with an empty name.
func attachLines(ctx context.Context, db *gorm.DB, views []OrderView, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(views))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.product_id,
			COALESCE(p.name, ''),
			l.quantity,
			l.price
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id IN ?
		ORDER BY l.order_id, l.seq
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID     uuid.UUID
			productID   uuid.UUID
			productName string
			quantity    int
			price       int64
		)

		if err = rows.Scan(&orderID, &productID, &productName, &quantity, &price); err != nil {
			return err
		}

		pos, ok := index[orderID]
		if !ok {
			return fmt.Errorf("order line references unknown order %s", orderID)
		}

		pID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return idErr
		}

		views[pos].Lines = append(views[pos].Lines, OrderLineView{
			ProductID:   pID,
			ProductName: productName,
			Quantity:    quantity,
			Price:       price,
		})
	}

	return rows.Err()
}
