// Package order provides domain entities and business logic for order management
// in the agricultural marketplace. It implements the Order aggregate root with
// lifecycle management, labourer assignment and forward-only state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Line, Address, HistoryEntry: value objects snapshotting order state
//
// Key business rules:
//   - Orders must have a valid unique identifier, buyer, address and at least one line
//   - Order status follows a defined workflow: Placed -> Confirmed -> Shipped -> Delivered,
//     with Cancelled reachable from any non-terminal status
//   - Delivered and Cancelled are terminal; terminal orders never mutate
//   - At most one labourer may hold an order at a time
//   - The status history is append-only and always ends with the current status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
