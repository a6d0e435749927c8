package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/logx"
)

// PartnerHandler serves HTTP endpoints for delivery partner resources.
type PartnerHandler struct {
	usecase partnerUsecase
	logger  logx.Logger
}

// NewPartnerHandler wires a partnerUsecase into HTTP handlers.
func NewPartnerHandler(logger logx.Logger, uc partnerUsecase) *PartnerHandler {
	return &PartnerHandler{usecase: uc, logger: logger}
}

// GetByID handles GET /partners/{id}.
func (h *PartnerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.usecase.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, partnerToResponse(*p))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /partners.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var limitPtr, offsetPtr *int
	if s := q.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limitPtr = &v
	}
	if s := q.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid offset")
			return
		}
		offsetPtr = &v
	}

	list, err := h.usecase.List(r.Context(), limitPtr, offsetPtr)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, partnersToResponse(list))
}

// Create handles POST /partners.
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.usecase.Create(r.Context(), p)
	switch {
	case err == nil:
		w.Header().Set("Location", "/api/partners/"+strconv.FormatInt(id, 10))
		writeJSON(h.logger, w, r, http.StatusCreated, map[string]any{"id": id})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "partner already exists")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Update handles PUT /partners with partial updates from the request body.
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePartnerRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	u, err := req.toModel()
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.usecase.UpdatePartial(r.Context(), u)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "partner already exists")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
