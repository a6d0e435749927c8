package handlers

import (
	"net/http"
	"strconv"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/logx"
)

// AssignmentHandler serves HTTP endpoints for assignment passes and records.
type AssignmentHandler struct {
	usecase assignmentUsecase
	logger  logx.Logger
}

// NewAssignmentHandler wires an assignmentUsecase into HTTP handlers.
func NewAssignmentHandler(logger logx.Logger, uc assignmentUsecase) *AssignmentHandler {
	return &AssignmentHandler{usecase: uc, logger: logger}
}

// Run handles POST /assignments/run. It executes one assignment pass over
// the pending backlog and returns the produced records.
func (h *AssignmentHandler) Run(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.RunPass(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, passToResponse(list))
}

// List handles GET /assignments with optional status and partner_id filters.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.AssignmentFilter
	if s := q.Get("status"); s != "" {
		st := domain.AssignmentStatus(s)
		if !st.Valid() {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
			return
		}
		f.Status = &st
	}
	if s := q.Get("partner_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid partner_id")
			return
		}
		f.PartnerID = &id
	}

	list, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// Metrics handles GET /assignments/metrics.
func (h *AssignmentHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.usecase.Metrics(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, metricsToResponse(m))
}
