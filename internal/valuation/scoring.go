package valuation

import (
	"context"

	"github.com/MikeSquared-Agency/Valumetric/internal/scoring"
)

func (s *Service) scorer(ctx context.Context) (*scoring.Scorer, error) {
	p, err := s.currentProfile(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.NewScorer(scoring.CriteriaWeights{
		Names:   p.CriteriaNames,
		Weights: p.Weights,
	}, s.logger)
}

// ScoreCriteria applies the current weights to per-criterion scores.
func (s *Service) ScoreCriteria(ctx context.Context, subject string, scores map[string]float64) (*scoring.ScoringResult, error) {
	sc, err := s.scorer(ctx)
	if err != nil {
		return nil, err
	}
	res, err := sc.Score(subject, scores)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RankSubjects scores and ranks several subjects under the current weights.
func (s *Service) RankSubjects(ctx context.Context, subjects []scoring.Subject) ([]scoring.RankedResult, error) {
	sc, err := s.scorer(ctx)
	if err != nil {
		return nil, err
	}
	return sc.Rank(subjects)
}
