package order

import (
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

// Address is a value object holding the shipping address snapshot embedded
// in an order. It is copied at order time, not referenced, so later changes
// to the buyer's profile do not rewrite delivery destinations of orders
// already placed.
type Address struct {
	street     string
	city       string
	region     string
	postalCode string

	guard guard.ConstructorGuard
}

// Validation errors for Address construction.
var (
	// ErrAddressIsNotConstructed is returned when an Address was not created via NewAddress.
	ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress constructor")
	// ErrStreetIsRequired is returned when the street is empty.
	ErrStreetIsRequired = errs.NewValueIsRequiredError("street")
	// ErrCityIsRequired is returned when the city is empty.
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
)

// NewAddress creates a validated shipping address.
// Street and city are required; region and postal code are optional.
func NewAddress(street, city, region, postalCode string) (Address, error) {
	if street == "" {
		return Address{}, ErrStreetIsRequired
	}
	if city == "" {
		return Address{}, ErrCityIsRequired
	}

	return Address{
		street:     street,
		city:       city,
		region:     region,
		postalCode: postalCode,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Region returns the region or state of the address.
func (a Address) Region() string {
	return a.region
}

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string {
	return a.postalCode
}
