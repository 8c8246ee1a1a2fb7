package order

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// HistoryEntry is one element of an order's append-only status history.
// ChangedBy is set when a labourer drove the transition and nil for
// buyer-driven transitions (placement, cancellation).
type HistoryEntry struct {
	status    Status
	changedBy *kernel.UUID
	changedAt time.Time
}

// NewHistoryEntry creates a validated history entry.
func NewHistoryEntry(status Status, changedBy *kernel.UUID, changedAt time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	if changedBy != nil {
		if err := changedBy.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	if changedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("changedAt")
	}

	return HistoryEntry{
		status:    status,
		changedBy: changedBy,
		changedAt: changedAt,
	}, nil
}

// Status returns the status recorded by this entry.
func (h HistoryEntry) Status() Status {
	return h.status
}

// ChangedBy returns the labourer who drove the transition, or nil
// for buyer-driven transitions.
func (h HistoryEntry) ChangedBy() *kernel.UUID {
	return h.changedBy
}

// ChangedAt returns when the transition happened.
func (h HistoryEntry) ChangedAt() time.Time {
	return h.changedAt
}
