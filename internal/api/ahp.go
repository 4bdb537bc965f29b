package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Valumetric/internal/store"
	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

type AHPHandler struct {
	svc    *valuation.Service
	logger *slog.Logger
}

func NewAHPHandler(svc *valuation.Service, logger *slog.Logger) *AHPHandler {
	return &AHPHandler{svc: svc, logger: logger}
}

// Calculate evaluates a comparison matrix without saving it.
func (h *AHPHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req valuation.WeightRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.EvaluateMatrix(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AHPHandler) CalculateAndSave(w http.ResponseWriter, r *http.Request) {
	var req valuation.WeightRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.CalculateWeights(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AHPHandler) Current(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CurrentWeights(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type DirectWeightsRequest struct {
	CriteriaNames []string  `json:"criteria_names"`
	Weights       []float64 `json:"weights"`
}

func (h *AHPHandler) SetDirect(w http.ResponseWriter, r *http.Request) {
	var req DirectWeightsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.SetWeights(r.Context(), req.CriteriaNames, req.Weights)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AHPHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	profiles, err := h.svc.WeightHistory(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if profiles == nil {
		profiles = []*store.WeightProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *AHPHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
		return
	}
	p, err := h.svc.WeightProfile(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}
