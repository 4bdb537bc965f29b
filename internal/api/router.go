package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Valumetric/internal/valuation"
)

func NewRouter(svc *valuation.Service, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	ahpH := NewAHPHandler(svc, logger)
	hcroiH := NewHCROIHandler(svc, logger)
	policy := NewPolicyHandler(svc, logger)
	scoring := NewScoringHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ahp/calculate", ahpH.Calculate)
		r.Get("/ahp/weights", ahpH.Current)
		r.Put("/ahp/weights", ahpH.CalculateAndSave)
		r.Put("/ahp/weights/direct", ahpH.SetDirect)
		r.Get("/ahp/weights/history", ahpH.History)
		r.Get("/ahp/weights/{id}", ahpH.Profile)

		r.Post("/hcroi/calculate", hcroiH.Calculate)
		r.Post("/hcroi/evaluate", hcroiH.Evaluate)
		r.Post("/hcroi/team", hcroiH.Team)

		r.Get("/policy/cost", policy.Get)
		r.Patch("/policy/cost", policy.Update)

		r.Post("/scoring/weighted", scoring.Weighted)
		r.Post("/scoring/rank", scoring.Rank)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
