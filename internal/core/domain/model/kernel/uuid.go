package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for a zero-value UUID,
// i.e. one that did not come out of NewUUID, UUIDFromString or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies entities and aggregates throughout the marketplace domain:
// orders, buyers, labourers, products. It wraps github.com/google/uuid so the
// domain model never depends on the library type directly, and so the nil
// UUID is unrepresentable in validated aggregates.
//
// The zero value is invalid; obtain instances through NewUUID (fresh ids),
// UUIDFromString (request parameters, tokens) or UUIDFromBytes (storage).
// Values are immutable and safe to copy and share.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a fresh random (version 4) identifier. Use it wherever a
// new entity comes into existence: order placement, command construction.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the textual forms accepted by uuid.Parse, which
// include the canonical "6ba7b810-9dad-11d1-80b4-00c04fd430c8" along with
// the braced and urn:uuid: variants. This is the entry point for ids
// arriving from outside: path parameters, token subjects, payload fields.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reconstructs an identifier from its 16-byte binary form, the
// shape the Postgres adapters store. Unlike UUIDFromString it also rejects
// the nil UUID, since a nil id in a stored row means corrupted data rather
// than a malformed input.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String renders the canonical lowercase hex-and-dashes form. A zero value
// renders as the nil UUID string.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped uuid.UUID for the persistence layer; slice it
// (`id.Bytes()[:]`) when raw bytes are needed. Domain code should not reach
// for this.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values carry the same identifier.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero value with ErrUUIDIsNotConstructed. Aggregate
// and command constructors call this on every id they receive.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
