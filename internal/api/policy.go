package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

type PolicyHandler struct {
	svc    *valuation.Service
	logger *slog.Logger
}

func NewPolicyHandler(svc *valuation.Service, logger *slog.Logger) *PolicyHandler {
	return &PolicyHandler{svc: svc, logger: logger}
}

func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.CostPolicy(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update applies a partial cost policy; omitted fields keep their value.
func (h *PolicyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd valuation.CostPolicyUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	p, err := h.svc.UpdateCostPolicy(r.Context(), upd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
