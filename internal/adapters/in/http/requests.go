package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs go-playground/validator into Echo's binding flow so
// request structs are checked against their validate tags right after Bind.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates a validator for request payloads.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// createOrderRequest is the POST /orders payload.
type createOrderRequest struct {
	Lines   []createOrderLine  `json:"lines" validate:"required,min=1,dive"`
	Address createOrderAddress `json:"address" validate:"required"`
}

type createOrderLine struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Price     int64  `json:"price" validate:"gte=0"`
}

type createOrderAddress struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// updateStatusRequest is the POST /orders/:id/status payload. Status carries
// the display name of the target status, e.g. "Shipped".
type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
