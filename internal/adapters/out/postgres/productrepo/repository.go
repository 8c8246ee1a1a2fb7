package productrepo

import (
	"context"
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/product"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing product to the database.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":     dto.Name,
		"price":    dto.Price,
		"quantity": dto.Quantity,
		"sold":     dto.Sold,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve atomically decrements stock and increments the sold counter.
// The decrement is a single conditional UPDATE guarded by the available
// quantity, so two concurrent reservations cannot both take the last units:
// whoever loses the race gets product.ErrInsufficientStock.
func (r *GormProductRepository) Reserve(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity = quantity - ?, sold = sold + ?
		WHERE id = ? AND quantity >= ?
	`, qty, qty, id.Bytes(), qty)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows means either a missing product or not enough stock;
		// look the product up to report the right error.
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: product %s", product.ErrInsufficientStock, id.String())
	}

	return nil
}

// Release atomically restores stock and reduces the sold counter, clamping
// sold at zero.
func (r *GormProductRepository) Release(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity = quantity + ?, sold = GREATEST(sold - ?, 0)
		WHERE id = ?
	`, qty, qty, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return nil
}
