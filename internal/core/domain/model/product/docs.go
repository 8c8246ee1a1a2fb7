// Package product provides the Product aggregate for the marketplace order core.
// Products act as the stock ledger for order placement and cancellation:
// reserving stock decrements quantity and increments sold, releasing stock
// does the reverse with sold clamped at zero.
package product
