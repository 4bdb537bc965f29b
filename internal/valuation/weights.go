package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Valumetric/internal/ahp"
	"github.com/MikeSquared-Agency/Valumetric/internal/hermes"
	"github.com/MikeSquared-Agency/Valumetric/internal/metrics"
	"github.com/MikeSquared-Agency/Valumetric/internal/scoring"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
)

const (
	MessageCalculated   = "calculated"
	MessageCurrent      = "current saved weights"
	MessageDefaults     = "default weights from configuration"
	MessageDirectlySet  = "weights set directly"
	defaultCriterionFmt = "criterion_%d"
)

// WeightRequest asks for weights derived from a pairwise comparison matrix
// given as its upper triangle, row by row.
type WeightRequest struct {
	MatrixSize    int       `json:"matrix_size"`
	UpperTriangle []float64 `json:"upper_triangle"`
	CriteriaNames []string  `json:"criteria_names,omitempty"`
	Method        string    `json:"method,omitempty"`
}

// WeightsResult is a weight profile as returned to callers.
type WeightsResult struct {
	store.WeightProfile
	Percentages []int  `json:"percentages"`
	Message     string `json:"message"`
}

func newWeightsResult(p *store.WeightProfile, message string) *WeightsResult {
	pct := make([]int, len(p.Weights))
	for i, w := range p.Weights {
		pct[i] = int(math.Round(w * 100))
	}
	return &WeightsResult{WeightProfile: *p, Percentages: pct, Message: message}
}

// MatrixResult is an AHP evaluation that was not saved.
type MatrixResult struct {
	ahp.Result
	Percentages []int  `json:"percentages"`
	Message     string `json:"message"`
}

// EvaluateMatrix runs the AHP engine on req without saving anything.
func (s *Service) EvaluateMatrix(ctx context.Context, req WeightRequest) (*MatrixResult, error) {
	res, message, err := s.evaluateMatrix(ctx, req)
	if err != nil {
		return nil, err
	}
	return &MatrixResult{Result: res, Percentages: res.Percentages(), Message: message}, nil
}

func (s *Service) evaluateMatrix(ctx context.Context, req WeightRequest) (ahp.Result, string, error) {
	method, err := ahp.ParseMethod(req.Method)
	if err != nil {
		return ahp.Result{}, "", err
	}
	if err := ahp.CheckSize(req.MatrixSize); err != nil {
		metrics.CalculationsTotal.WithLabelValues(metrics.EngineAHP, metrics.Outcome(err)).Inc()
		return ahp.Result{}, "", err
	}
	names := req.CriteriaNames
	if len(names) == 0 {
		names = s.defaultNames(ctx, req.MatrixSize)
	}

	start := time.Now()
	res, err := ahp.Evaluate(req.MatrixSize, req.UpperTriangle, names, method)
	metrics.CalculationDuration.WithLabelValues(metrics.EngineAHP).Observe(time.Since(start).Seconds())
	metrics.CalculationsTotal.WithLabelValues(metrics.EngineAHP, metrics.Outcome(err)).Inc()
	if err != nil {
		return ahp.Result{}, "", err
	}
	metrics.ConsistencyRatio.Observe(res.ConsistencyRatio)

	if res.Consistent {
		return res, MessageCalculated, nil
	}
	metrics.InconsistentMatrices.Inc()
	s.logger.Warn("AHP consistency ratio exceeds threshold",
		"cr", res.ConsistencyRatio,
		"threshold", ahp.ConsistencyThreshold,
		"matrix_size", req.MatrixSize,
	)
	return res, res.Advisory(), nil
}

// CalculateWeights evaluates the matrix, saves the resulting profile as the
// current weights and announces it. An inconsistent matrix is still saved;
// the result message carries the advisory.
func (s *Service) CalculateWeights(ctx context.Context, req WeightRequest) (*WeightsResult, error) {
	res, message, err := s.evaluateMatrix(ctx, req)
	if err != nil {
		return nil, err
	}

	profile := &store.WeightProfile{
		Source:           store.SourceAHP,
		Method:           res.Method,
		CriteriaNames:    res.Criteria,
		Weights:          res.Weights,
		MatrixSize:       req.MatrixSize,
		UpperTriangle:    append([]float64(nil), req.UpperTriangle...),
		LambdaMax:        res.LambdaMax,
		ConsistencyIndex: res.ConsistencyIndex,
		ConsistencyRatio: res.ConsistencyRatio,
		Consistent:       res.Consistent,
	}
	if err := s.saveCurrent(ctx, profile); err != nil {
		return nil, err
	}

	if !res.Consistent {
		s.publish(hermes.SubjectWeightsInconsistent, hermes.ConsistencyWarningEvent{
			ProfileID:        profile.ID.String(),
			MatrixSize:       req.MatrixSize,
			ConsistencyRatio: res.ConsistencyRatio,
			Message:          message,
			Timestamp:        s.now(),
		})
	}
	return newWeightsResult(profile, message), nil
}

// SetWeights stores a directly assigned weight vector. Counts must match,
// every weight must be non-negative and the sum must be 1 within 0.01.
func (s *Service) SetWeights(ctx context.Context, names []string, weights []float64) (*WeightsResult, error) {
	cw, err := scoring.NewCriteriaWeights(names, weights)
	if err != nil {
		return nil, err
	}
	profile := &store.WeightProfile{
		Source:        store.SourceDirect,
		CriteriaNames: cw.Names,
		Weights:       cw.Weights,
		Consistent:    true,
	}
	if err := s.saveCurrent(ctx, profile); err != nil {
		return nil, err
	}
	return newWeightsResult(profile, MessageDirectlySet), nil
}

// CurrentWeights returns the current profile: cache first, then the store,
// then the configured default criteria.
func (s *Service) CurrentWeights(ctx context.Context) (*WeightsResult, error) {
	p, err := s.currentProfile(ctx)
	if err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return newWeightsResult(p, MessageDefaults), nil
	}
	return newWeightsResult(p, MessageCurrent), nil
}

// WeightHistory lists saved profiles, newest first.
func (s *Service) WeightHistory(ctx context.Context, limit int) ([]*store.WeightProfile, error) {
	profiles, err := s.store.ListWeightProfiles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list weight profiles: %w", err)
	}
	return profiles, nil
}

// WeightProfile returns one saved profile, or nil when id is unknown.
func (s *Service) WeightProfile(ctx context.Context, id uuid.UUID) (*store.WeightProfile, error) {
	p, err := s.store.GetWeightProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get weight profile %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) currentProfile(ctx context.Context) (*store.WeightProfile, error) {
	if s.cache != nil {
		p, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("weight cache read failed", "error", err)
		} else if p != nil {
			metrics.WeightCacheLookups.WithLabelValues("cache").Inc()
			return p, nil
		}
	}

	p, err := s.store.GetCurrentWeightProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current weights: %w", err)
	}
	if p != nil {
		metrics.WeightCacheLookups.WithLabelValues("store").Inc()
		s.cacheProfile(ctx, p)
		return p, nil
	}

	metrics.WeightCacheLookups.WithLabelValues("config").Inc()
	cfg := s.config()
	return &store.WeightProfile{
		Source:        store.SourceDirect,
		CriteriaNames: cfg.CriteriaNames(),
		Weights:       cfg.CriteriaWeights(),
		Consistent:    true,
	}, nil
}

// defaultNames labels an unnamed matrix with the current criteria when the
// count matches, falling back to generated names.
func (s *Service) defaultNames(ctx context.Context, n int) []string {
	if p, err := s.currentProfile(ctx); err == nil && len(p.CriteriaNames) == n {
		return p.CriteriaNames
	}
	if n < 1 || n > ahp.MaxSize {
		return nil
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf(defaultCriterionFmt, i+1)
	}
	return names
}

func (s *Service) saveCurrent(ctx context.Context, p *store.WeightProfile) error {
	if err := s.store.SaveWeightProfile(ctx, p); err != nil {
		// the cached profile may no longer match the store
		s.invalidateCache(ctx)
		return fmt.Errorf("save weight profile: %w", err)
	}
	s.cacheProfile(ctx, p)
	s.logger.Info("weights updated",
		"profile_id", p.ID,
		"source", p.Source,
		"criteria", len(p.Weights),
		"cr", p.ConsistencyRatio,
	)
	s.publish(hermes.SubjectWeightsUpdated, hermes.WeightsUpdatedEvent{
		ProfileID:        p.ID.String(),
		Source:           string(p.Source),
		CriteriaNames:    p.CriteriaNames,
		Weights:          p.Weights,
		ConsistencyRatio: p.ConsistencyRatio,
		Consistent:       p.Consistent,
		Timestamp:        s.now(),
	})
	return nil
}

func (s *Service) cacheProfile(ctx context.Context, p *store.WeightProfile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.logger.Warn("weight cache write failed", "error", err)
	}
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("weight cache invalidate failed", "error", err)
	}
}

func (s *Service) handleWeightsRequest(ctx context.Context, data []byte) {
	var req WeightRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("invalid weights request", "error", err)
		return
	}
	if _, err := s.CalculateWeights(ctx, req); err != nil {
		s.logger.Warn("weights request failed", "matrix_size", req.MatrixSize, "error", err)
	}
}
