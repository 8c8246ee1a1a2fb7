package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/product"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"object not found", errs.NewObjectNotFoundError("order", "abc"), http.StatusNotFound},
		{"not order owner", order.ErrNotOrderOwner, http.StatusForbidden},
		{"not assignee", order.ErrNotAssignee, http.StatusForbidden},
		{"already assigned", order.ErrOrderAlreadyAssigned, http.StatusConflict},
		{"labourer has active order", commands.ErrLabourerHasActiveOrder, http.StatusConflict},
		{"terminal order", order.ErrOrderIsTerminal, http.StatusBadRequest},
		{"backward transition", order.ErrBackwardTransition, http.StatusBadRequest},
		{"insufficient stock", product.ErrInsufficientStock, http.StatusBadRequest},
		{"value required", errs.NewValueIsRequiredError("lines"), http.StatusBadRequest},
		{"malformed id", errs.NewValueIsInvalidErrorWithCause("order id", errors.New("invalid UUID length: 10")), http.StatusBadRequest},
		{"stale write", order.ErrOrderChanged, http.StatusConflict},
		{"wrapped conflict", fmt.Errorf("claim: %w", order.ErrOrderAlreadyAssigned), http.StatusConflict},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, statusFor(test.err))
		})
	}
}
