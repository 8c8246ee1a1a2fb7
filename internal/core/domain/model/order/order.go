package order

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// ShippingFee is the fixed delivery fee, in currency units, added to every
// order total at placement time.
const ShippingFee int64 = 30

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoLines is returned when an order is placed with an empty product list.
	ErrNoLines = errors.New("order must contain at least one line")

	// ErrOrderAlreadyAssigned is returned when a claim is attempted on an order
	// that already has an assignee, regardless of who holds it.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned")

	// ErrNotAssignee is returned when a labourer tries to progress an order
	// assigned to someone else (or not assigned at all).
	ErrNotAssignee = errors.New("order is not assigned to requester")

	// ErrNotOrderOwner is returned when a cancellation is requested by someone
	// other than the buyer who placed the order.
	ErrNotOrderOwner = errors.New("order does not belong to requester")

	// ErrOrderIsTerminal is returned when an operation targets an order whose
	// status is Delivered or Cancelled. Terminal orders never mutate again.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")

	// ErrBackwardTransition is returned when a status update would move the
	// order backwards along the fulfilment flow.
	ErrBackwardTransition = errors.New("backward status transition is not allowed")

	// ErrOrderChanged is returned when a write finds the stored order in a
	// different status than the aggregate was loaded with. The caller holds
	// stale state and must reload before retrying.
	ErrOrderChanged = errors.New("order changed since it was loaded")
)

// Order represents a buyer's purchase in the marketplace. It is the aggregate
// root that manages the order lifecycle from placement through labourer
// assignment to delivery or cancellation.
//
// Order maintains these invariants:
//   - the line items, buyer and address are immutable snapshots taken at placement
//   - status transitions are forward-only along Placed -> Confirmed -> Shipped -> Delivered,
//     with Cancelled reachable from any non-terminal status
//   - Delivered and Cancelled are terminal: no status or assignment mutation afterwards
//   - at most one labourer is assigned at any time; "assigned" is derived from
//     the presence of assignedTo, there is no separate flag to fall out of sync
//   - the status history is append-only and its last entry always equals the
//     current status
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// buyerID references the buyer who placed the order (immutable)
	buyerID kernel.UUID

	// lines are the product/quantity/price snapshots taken at placement
	lines []Line

	// address is the shipping address snapshot
	address Address

	// total is the stored sum of line subtotals plus the shipping fee
	total int64

	// status is the current, authoritative lifecycle state
	status Status

	// history is the append-only audit trail of status transitions
	history []HistoryEntry

	// assignedTo is the assigned labourer's ID (nil if unassigned)
	assignedTo *kernel.UUID

	// cancelledAt is set once, on cancellation
	cancelledAt *time.Time

	// createdAt is the placement timestamp
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a new Order in Placed status with validation. This is the
// only way (besides RestoreOrder for persistence) to create a valid Order.
//
// The total is computed as the sum of line subtotals plus ShippingFee and
// stored; it is never recomputed from live product prices. The status history
// starts with a single Placed entry stamped at now.
//
// Returns an error if the ID or buyer ID is invalid, the line list is empty,
// any line is invalid, or the address is invalid.
func NewOrder(id kernel.UUID, buyerID kernel.UUID, lines []Line, address Address, now time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), buyerID.Validate(), address.Validate()); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	var total int64
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		total += line.Subtotal()
	}
	total += ShippingFee

	entry, err := NewHistoryEntry(Placed, nil, now)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		lines:         lines,
		address:       address,
		total:         total,
		status:        Placed,
		history:       []HistoryEntry{entry},
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persisted state. It validates the
// same invariants as NewOrder plus the consistency rules of restored state:
// the history must be non-empty, its last entry must match the status, and
// the assignment must be consistent with the status.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	lines []Line,
	address Address,
	total int64,
	status Status,
	history []HistoryEntry,
	assignedTo *kernel.UUID,
	cancelledAt *time.Time,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), buyerID.Validate(), address.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}

	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidError("history does not match status")
	}

	if assignedTo != nil {
		if err := assignedTo.Validate(); err != nil {
			return nil, err
		}
	}

	if err := status.ValidateCanHaveAssignee(assignedTo != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		buyerID:       buyerID,
		lines:         lines,
		address:       address,
		total:         total,
		status:        status,
		history:       history,
		assignedTo:    assignedTo,
		cancelledAt:   cancelledAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Lines returns a copy of the order's line items.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Address returns the shipping address snapshot.
func (o *Order) Address() Address {
	return o.address
}

// Total returns the stored order total (line subtotals plus shipping fee).
func (o *Order) Total() int64 {
	return o.total
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// CurrentStatus returns the latest history entry. Its status always equals
// Status(); the entry also carries the transition timestamp for fast reads.
func (o *Order) CurrentStatus() HistoryEntry {
	return o.history[len(o.history)-1]
}

// AssignedTo returns the assigned labourer's ID, or nil if unassigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// IsAssigned reports whether a labourer currently holds the order.
// Derived from the assignee reference; there is no separate flag.
func (o *Order) IsAssigned() bool {
	return o.assignedTo != nil
}

// IsActive reports whether the order occupies its assignee's single active
// slot: assigned and not yet Delivered or Cancelled.
func (o *Order) IsActive() bool {
	return o.assignedTo != nil && !o.status.IsTerminal()
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Claim assigns the order to a labourer and advances the status to Confirmed.
//
// Business rules:
//   - the labourer ID must be valid
//   - the order must not already have an assignee (ErrOrderAlreadyAssigned,
//     regardless of who holds it)
//   - the order must not be terminal
//
// The one-active-order-per-labourer rule is not knowable from a single
// aggregate; the claim use case enforces it against the order store before
// calling Claim and the repository re-checks it atomically.
func (o *Order) Claim(labourerID kernel.UUID, now time.Time) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	if o.assignedTo != nil {
		return ErrOrderAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(newStatus, &labourerID, now)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedTo = &labourerID
	o.history = append(o.history, entry)
	return nil
}

// AdvanceStatus moves the order forward along the fulfilment flow on behalf
// of its assigned labourer.
//
// Business rules:
//   - only the assigned labourer may progress the order (ErrNotAssignee)
//   - the target must belong to the forward flow and must not rank below the
//     current status (no backward moves)
//   - terminal orders never change
//
// Advancing to Delivered closes the labourer's active slot: the order stops
// counting against the one-active-order limit.
func (o *Order) AdvanceStatus(labourerID kernel.UUID, target Status, now time.Time) error {
	if err := labourerID.Validate(); err != nil {
		return err
	}

	if o.assignedTo == nil || !o.assignedTo.IsEqual(labourerID) {
		return ErrNotAssignee
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(newStatus, &labourerID, now)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, entry)
	return nil
}

// Cancel cancels the order on behalf of its buyer.
//
// Business rules:
//   - only the buyer who placed the order may cancel it (ErrNotOrderOwner)
//   - Delivered orders cannot be cancelled; cancelling twice fails the second
//     time (ErrOrderIsTerminal), so stock restoration runs at most once
//
// Stock restoration itself is the cancel use case's responsibility; the
// aggregate only guards the transition and records cancelledAt.
func (o *Order) Cancel(buyerID kernel.UUID, now time.Time) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	if !o.buyerID.IsEqual(buyerID) {
		return ErrNotOrderOwner
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(newStatus, nil, now)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &now
	o.history = append(o.history, entry)
	return nil
}
