package http

import (
	"time"

	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/order"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type historyEntryResponse struct {
	Status    string     `json:"status"`
	ChangedBy *string    `json:"changed_by,omitempty"`
	ChangedAt time.Time  `json:"changed_at"`
}

type orderResponse struct {
	ID         string                 `json:"id"`
	BuyerID    string                 `json:"buyer_id"`
	Status     string                 `json:"status"`
	Total      int64                  `json:"total"`
	Street     string                 `json:"street"`
	City       string                 `json:"city"`
	AssignedTo *string                `json:"assigned_to,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Lines      []orderLineResponse    `json:"lines"`
	History    []historyEntryResponse `json:"history,omitempty"`
}

type assignedOrdersResponse struct {
	Orders        []orderResponse `json:"orders"`
	FinishedCount int64           `json:"finished_count"`
}

func orderToResponse(o *order.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, orderLineResponse{
			ProductID: line.ProductID().String(),
			Quantity:  line.Quantity(),
			Price:     line.Price(),
		})
	}

	history := make([]historyEntryResponse, 0, len(o.History()))
	for _, entry := range o.History() {
		item := historyEntryResponse{
			Status:    entry.Status().String(),
			ChangedAt: entry.ChangedAt(),
		}
		if entry.ChangedBy() != nil {
			changedBy := entry.ChangedBy().String()
			item.ChangedBy = &changedBy
		}
		history = append(history, item)
	}

	resp := orderResponse{
		ID:        o.ID().String(),
		BuyerID:   o.BuyerID().String(),
		Status:    o.Status().String(),
		Total:     o.Total(),
		Street:    o.Address().Street(),
		City:      o.Address().City(),
		CreatedAt: o.CreatedAt(),
		Lines:     lines,
		History:   history,
	}
	if o.AssignedTo() != nil {
		assignedTo := o.AssignedTo().String()
		resp.AssignedTo = &assignedTo
	}
	return resp
}

func viewToResponse(view queries.OrderView) orderResponse {
	lines := make([]orderLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	resp := orderResponse{
		ID:        view.ID.String(),
		BuyerID:   view.BuyerID.String(),
		Status:    view.Status,
		Total:     view.Total,
		Street:    view.Street,
		City:      view.City,
		CreatedAt: view.CreatedAt,
		Lines:     lines,
	}
	if view.AssignedTo != nil {
		assignedTo := view.AssignedTo.String()
		resp.AssignedTo = &assignedTo
	}
	return resp
}

func viewsToResponse(views []queries.OrderView) []orderResponse {
	out := make([]orderResponse, 0, len(views))
	for _, view := range views {
		out = append(out, viewToResponse(view))
	}
	return out
}
