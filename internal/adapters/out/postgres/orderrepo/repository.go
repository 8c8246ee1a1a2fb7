package orderrepo

import (
	"context"
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves changes to an existing order and appends any new history
// entries. Lines are immutable and never rewritten; history rows already
// present are left untouched (append-only).
//
// The write is conditional on the status the aggregate was read at, so a
// row that moved on concurrently (a second cancel, a cancel racing a
// progression) is never overwritten: the loser gets ErrOrderIsTerminal or
// ErrOrderChanged instead.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, loadedStatus(dto)).
		Updates(map[string]any{
			"status":       dto.Status,
			"assigned_to":  dto.AssignedTo,
			"cancelled_at": dto.CancelledAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.resolveWriteConflict(ctx, aggregate.ID(), false)
	}

	if err := r.appendHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its lines and full status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("History").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim persists a labourer claim with a conditional write: the order row is
// updated only while it still has no assignee and still holds the status the
// aggregate was read at, so concurrent claims resolve to exactly one winner
// and a cancellation committed between read and write keeps the terminal row
// untouched. The aggregate passed in must already hold the claim.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND assigned_to IS NULL AND status = ?", dto.ID, loadedStatus(dto)).
		Updates(map[string]any{
			"status":      dto.Status,
			"assigned_to": dto.AssignedTo,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.resolveWriteConflict(ctx, aggregate.ID(), true)
	}

	if err := r.appendHistory(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// LockAssignee takes a Postgres advisory transaction lock keyed by the
// labourer ID. The lock is released automatically when the surrounding
// transaction commits or rolls back, serializing that labourer's claims.
func (r *GormOrderRepository) LockAssignee(ctx context.Context, labourerID kernel.UUID) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", labourerID.String()).Error
}

// CountActiveByAssignee returns the number of orders assigned to the labourer
// whose status is not Delivered or Cancelled.
func (r *GormOrderRepository) CountActiveByAssignee(ctx context.Context, labourerID kernel.UUID) (int64, error) {
	if err := labourerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("assigned_to = ? AND status NOT IN ?",
			labourerID.Bytes(), []int{int(order.Delivered), int(order.Cancelled)}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// loadedStatus returns the status the stored row must still hold for a
// conditional write. Every aggregate mutation appends exactly one history
// entry before it is persisted, so the entry preceding the last one is the
// status the aggregate was read at; a single-entry history means no
// transition is pending and the current status is expected.
func loadedStatus(dto OrderDTO) int {
	if n := len(dto.History); n >= 2 {
		return dto.History[n-2].Status
	}
	return dto.Status
}

// resolveWriteConflict explains a conditional write that matched zero rows
// by looking at the stored row: the order is gone, already claimed, already
// terminal, or moved to another status after it was read.
func (r *GormOrderRepository) resolveWriteConflict(ctx context.Context, id kernel.UUID, claiming bool) error {
	var current OrderDTO
	err := r.db.WithContext(ctx).
		Select("status", "assigned_to").
		First(&current, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return err
	}

	if claiming && current.AssignedTo != nil {
		return order.ErrOrderAlreadyAssigned
	}
	if order.Status(current.Status).IsTerminal() {
		return order.ErrOrderIsTerminal
	}
	return order.ErrOrderChanged
}

// appendHistory inserts the aggregate's history rows, skipping those already
// persisted. Rows are keyed by (order_id, seq), so re-inserting existing
// entries is a no-op and the history stays append-only.
func (r *GormOrderRepository) appendHistory(ctx context.Context, dto OrderDTO) error {
	if len(dto.History) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto.History).Error
}
