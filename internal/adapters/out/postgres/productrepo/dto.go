// Package productrepo provides data transfer objects and mapping functions for
// product persistence. Products are the stock ledger of the order core; their
// counters are mutated through conditional updates, never read-then-write.
package productrepo

import (
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product aggregates.
type ProductDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Price    int64
	Quantity int
	Sold     int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Price:    aggregate.Price(),
		Quantity: aggregate.Quantity(),
		Sold:     aggregate.Sold(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.Price, dto.Quantity, dto.Sold)
}
