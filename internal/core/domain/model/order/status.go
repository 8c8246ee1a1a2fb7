package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a marketplace order.
// It implements a state machine with forward-only transitions so orders
// follow the fulfilment workflow and cannot move backwards.
//
// State transitions:
//
//	Placed ──> Confirmed ──> Shipped ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further transitions are allowed.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a buyer places an order.
	// Orders in this status are waiting to be claimed by a labourer.
	Placed

	// Confirmed indicates a labourer has claimed the order for delivery.
	Confirmed

	// Shipped indicates the order is on its way to the buyer.
	Shipped

	// Delivered indicates the order reached the buyer.
	// This is a terminal state; it also frees the labourer's active slot.
	Delivered

	// Cancelled indicates the buyer cancelled the order before delivery.
	// This is a terminal state reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// The strings match the wire/display vocabulary of the marketplace.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Placed:    "Order Placed",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "Order Placed",
		Confirmed: "Confirmed",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses a status from its display string (e.g. "Shipped").
// Returns an error for unrecognized values, including "Unknown".
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, Confirmed, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// isForward reports whether the status belongs to the forward fulfilment flow
// Placed -> Confirmed -> Shipped -> Delivered. Cancelled is not part of the
// forward flow; it is reached only through Cancel.
func (s Status) isForward() bool {
	return s == Placed || s == Confirmed || s == Shipped || s == Delivered
}

// TransitionTo transitions the status forward along the fulfilment flow.
//
// Rules:
//   - target must belong to the forward flow (Cancelled is rejected here)
//   - the current status must not be terminal
//   - the target's rank must be at least the current rank (no backward moves)
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if the transition is not allowed from the current status
//
// This method is used by Order.Claim and Order.AdvanceStatus to enforce
// the state machine.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if !target.isForward() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid target status", target.String()),
		)
	}

	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: order is %s", ErrOrderIsTerminal, s.String())
	}

	if target < s {
		return 0, fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, s.String(), target.String())
	}

	return target, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from any non-terminal status. Cancelling a Delivered or an already
// Cancelled order fails, which also makes cancellation idempotent at most
// once: a second cancel never re-runs its side effects.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: order is %s", ErrOrderIsTerminal, s.String())
	}

	return Cancelled, nil
}

// ValidateCanHaveAssignee validates the consistency between order status and
// labourer assignment.
//
// Business rules:
//   - Placed orders must not have an assignee
//   - Confirmed, Shipped and Delivered orders must have an assignee
//   - Cancelled orders may or may not have one (cancellation can happen
//     before or after a claim)
func (s Status) ValidateCanHaveAssignee(assignee bool) error {
	if s == Cancelled {
		return nil
	}

	if assignee && s == Placed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assignee", s.String()),
		)
	}

	if !assignee && (s == Confirmed || s == Shipped || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assignee", s.String()),
		)
	}

	return nil
}
