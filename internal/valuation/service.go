// Package valuation wires the AHP engine and the HCROI calculator to
// persistence, caching and events. The engines themselves stay pure; this
// layer owns the logging, storage and publication side effects.
package valuation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Valumetric/internal/cache"
	"github.com/MikeSquared-Agency/Valumetric/internal/config"
	"github.com/MikeSquared-Agency/Valumetric/internal/hermes"
	"github.com/MikeSquared-Agency/Valumetric/internal/store"
)

// Service is safe for concurrent use.
type Service struct {
	store  store.Store
	cache  cache.WeightCache
	hermes hermes.Client
	logger *slog.Logger

	mu  sync.RWMutex
	cfg *config.Config

	now func() time.Time
}

// New creates a Service. cache and hermes may be nil.
func New(s store.Store, c cache.WeightCache, h hermes.Client, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		store:  s,
		cache:  c,
		hermes: h,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// UpdateConfig swaps in a reloaded configuration.
func (s *Service) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.logger.Info("configuration updated", "criteria", len(cfg.Criteria))
}

func (s *Service) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Service) publish(subject string, event interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// SetupSubscriptions lets other services request a weight calculation over
// NATS. Replies are the regular weights-updated events.
func (s *Service) SetupSubscriptions(ctx context.Context) error {
	if s.hermes == nil {
		return nil
	}
	if err := s.hermes.Subscribe(hermes.SubjectWeightsRequest, func(subject string, data []byte) {
		s.handleWeightsRequest(ctx, data)
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", hermes.SubjectWeightsRequest, err)
	}
	return nil
}
