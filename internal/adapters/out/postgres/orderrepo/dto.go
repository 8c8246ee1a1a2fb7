// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"sort"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexing for the hot
// query paths: buyer lists, the claimable pool, and per-assignee lookups.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID     uuid.UUID  `gorm:"type:uuid;index"`
	Address     AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Total       int64
	Status      int        `gorm:"index"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	CancelledAt *time.Time
	CreatedAt   time.Time `gorm:"index"`

	Lines   []LineDTO    `gorm:"foreignKey:OrderID;references:ID"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded shipping address snapshot within the
// orders table.
type AddressDTO struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// LineDTO represents one order line row. Seq preserves the order of lines
// as placed; lines are immutable once written.
type LineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	Price     int64
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// HistoryDTO represents one append-only status history row. Seq is the
// position of the entry within the order's history; existing rows are never
// updated or deleted.
type HistoryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Status    int
	ChangedBy *uuid.UUID `gorm:"type:uuid;index"`
	ChangedAt time.Time
}

// TableName specifies the database table name for status history entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	var assignedTo *uuid.UUID
	if a := aggregate.AssignedTo(); a != nil {
		raw := a.Bytes()
		assignedTo = &raw
	}

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for i, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   id,
			Seq:       i,
			ProductID: line.ProductID().Bytes(),
			Quantity:  line.Quantity(),
			Price:     line.Price(),
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for i, entry := range aggregate.History() {
		var changedBy *uuid.UUID
		if c := entry.ChangedBy(); c != nil {
			raw := c.Bytes()
			changedBy = &raw
		}

		history = append(history, HistoryDTO{
			OrderID:   id,
			Seq:       i,
			Status:    int(entry.Status()),
			ChangedBy: changedBy,
			ChangedAt: entry.ChangedAt(),
		})
	}

	address := aggregate.Address()

	return OrderDTO{
		ID:      id,
		BuyerID: aggregate.BuyerID().Bytes(),
		Address: AddressDTO{
			Street:     address.Street(),
			City:       address.City(),
			Region:     address.Region(),
			PostalCode: address.PostalCode(),
		},
		Total:       aggregate.Total(),
		Status:      int(aggregate.Status()),
		AssignedTo:  assignedTo,
		CancelledAt: aggregate.CancelledAt(),
		CreatedAt:   aggregate.CreatedAt(),
		Lines:       lines,
		History:     history,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines, history and
// assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.Region, dto.Address.PostalCode)
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Lines, func(i, j int) bool { return dto.Lines[i].Seq < dto.Lines[j].Seq })
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(lineDTO.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(productID, lineDTO.Quantity, lineDTO.Price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	sort.Slice(dto.History, func(i, j int) bool { return dto.History[i].Seq < dto.History[j].Seq })
	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		var changedBy *kernel.UUID
		if entryDTO.ChangedBy != nil {
			cID, entryErr := kernel.UUIDFromBytes((*entryDTO.ChangedBy)[:])
			if entryErr != nil {
				return nil, entryErr
			}
			changedBy = &cID
		}

		entry, entryErr := order.NewHistoryEntry(order.Status(entryDTO.Status), changedBy, entryDTO.ChangedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		aID, assignErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if assignErr != nil {
			return nil, assignErr
		}
		assignedTo = &aID
	}

	return order.RestoreOrder(
		id,
		buyerID,
		lines,
		address,
		dto.Total,
		order.Status(dto.Status),
		history,
		assignedTo,
		dto.CancelledAt,
		dto.CreatedAt,
	)
}
