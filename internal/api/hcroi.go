package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Valumetric/internal/hcroi"
	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

type HCROIHandler struct {
	svc    *valuation.Service
	logger *slog.Logger
}

func NewHCROIHandler(svc *valuation.Service, logger *slog.Logger) *HCROIHandler {
	return &HCROIHandler{svc: svc, logger: logger}
}

// Calculate runs the calculator on the posted figures. The benefits variant
// applies when benefit_cost is present.
func (h *HCROIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in hcroi.Inputs
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.CalculateHCROI(in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Evaluate computes one person's labor return under the stored cost policy.
func (h *HCROIHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req valuation.LaborReturnRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.EvaluateLaborReturn(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type TeamRequest struct {
	Members []valuation.LaborReturnRequest `json:"members"`
}

func (h *HCROIHandler) Team(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Members) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "members required"})
		return
	}
	res, err := h.svc.EvaluateTeam(r.Context(), req.Members)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
