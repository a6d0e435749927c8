package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/logx"
)

// OrderHandler serves HTTP endpoints for order intake and listing.
type OrderHandler struct {
	usecase orderUsecase
	logger  logx.Logger
}

// NewOrderHandler wires an orderUsecase into HTTP handlers.
func NewOrderHandler(logger logx.Logger, uc orderUsecase) *OrderHandler {
	return &OrderHandler{usecase: uc, logger: logger}
}

// GetByID handles GET /orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	o, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*o))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /orders with optional status and area filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.OrderFilter
	if s := q.Get("status"); s != "" {
		st := domain.OrderStatus(s)
		f.Status = &st
	}
	if s := q.Get("area"); s != "" {
		f.Area = &s
	}

	list, err := h.usecase.List(r.Context(), f)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	o, err := req.toModel()
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.usecase.Create(r.Context(), o)
	switch {
	case err == nil:
		w.Header().Set("Location", "/api/orders/"+strconv.FormatInt(id, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{
			"id":           id,
			"order_number": o.OrderNumber,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "order number already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
