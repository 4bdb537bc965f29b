package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Valumetric/internal/scoring"
	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

type ScoringHandler struct {
	svc    *valuation.Service
	logger *slog.Logger
}

func NewScoringHandler(svc *valuation.Service, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{svc: svc, logger: logger}
}

type WeightedScoreRequest struct {
	Subject string             `json:"subject"`
	Scores  map[string]float64 `json:"scores"`
}

func (h *ScoringHandler) Weighted(w http.ResponseWriter, r *http.Request) {
	var req WeightedScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.ScoreCriteria(r.Context(), req.Subject, req.Scores)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type RankRequest struct {
	Subjects []scoring.Subject `json:"subjects"`
}

func (h *ScoringHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Subjects) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "subjects required"})
		return
	}
	ranked, err := h.svc.RankSubjects(r.Context(), req.Subjects)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}
