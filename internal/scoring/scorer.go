// Package scoring applies a criteria weight vector to per-criterion scores,
// producing the weighted total and a per-criterion breakdown.
package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/MikeSquared-Agency/Valumetric/internal/calcerr"
)

// FactorResult captures one criterion's contribution to the total score.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

// ScoringResult is the weighted evaluation of one subject.
type ScoringResult struct {
	Subject    string         `json:"subject,omitempty"`
	TotalScore float64        `json:"total_score"`
	Factors    []FactorResult `json:"factors"`
	Complete   bool           `json:"complete"`
}

// Scorer is a weighted additive scorer over a fixed set of criteria.
type Scorer struct {
	weights CriteriaWeights
	logger  *slog.Logger
}

// NewScorer creates a Scorer. The weights are validated.
func NewScorer(weights CriteriaWeights, logger *slog.Logger) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights, logger: logger}, nil
}

// Weights returns the weights the scorer applies.
func (s *Scorer) Weights() CriteriaWeights {
	return s.weights
}

// Score applies the weights to scores keyed by criterion name. A criterion
// with no score contributes zero and marks the result incomplete. Scores for
// unknown criteria are rejected.
func (s *Scorer) Score(subject string, scores map[string]float64) (ScoringResult, error) {
	for name, v := range scores {
		if _, ok := s.weights.Weight(name); !ok {
			return ScoringResult{}, calcerr.Structural("scores", "unknown criterion %q", name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ScoringResult{}, calcerr.Domain(fmt.Sprintf("scores[%s]", name), "must be a finite number")
		}
	}

	result := ScoringResult{Subject: subject, Complete: true}
	factors := make([]FactorResult, len(s.weights.Names))
	var total float64
	for i, name := range s.weights.Names {
		weight := s.weights.Weights[i]
		f := FactorResult{Name: name, Weight: weight}
		if v, ok := scores[name]; ok {
			f.Score = v
			f.Weighted = v * weight
			f.Available = true
			f.Reason = "scored"
		} else {
			f.Reason = "no score supplied"
			result.Complete = false
		}
		factors[i] = f
		total += f.Weighted
	}

	result.TotalScore = total
	result.Factors = factors
	if !result.Complete && s.logger != nil {
		s.logger.Debug("incomplete criteria scores", "subject", subject, "supplied", len(scores), "criteria", len(factors))
	}
	return result, nil
}

// Subject is one ranked party and its per-criterion scores.
type Subject struct {
	Name   string             `json:"name"`
	Scores map[string]float64 `json:"scores"`
}

// RankedResult is a ScoringResult with its position in a ranking.
type RankedResult struct {
	ScoringResult
	Rank   int  `json:"rank"`
	Pareto bool `json:"pareto_optimal"`
}

// Rank scores every subject and orders them by total score, highest first.
// Ties keep input order. Pareto marks subjects no other subject dominates
// across the individual criteria.
func (s *Scorer) Rank(subjects []Subject) ([]RankedResult, error) {
	results := make([]ScoringResult, 0, len(subjects))
	seen := make(map[string]bool, len(subjects))
	for i, subj := range subjects {
		if subj.Name == "" {
			return nil, calcerr.Structural(fmt.Sprintf("subjects[%d].name", i), "must not be empty")
		}
		if seen[subj.Name] {
			return nil, calcerr.Structural(fmt.Sprintf("subjects[%d].name", i), "duplicate subject %q", subj.Name)
		}
		seen[subj.Name] = true

		r, err := s.Score(subj.Name, subj.Scores)
		if err != nil {
			return nil, fmt.Errorf("subject %s: %w", subj.Name, err)
		}
		results = append(results, r)
	}

	onFrontier := make(map[string]bool)
	for _, r := range ComputeFrontier(results) {
		onFrontier[r.Subject] = true
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	ranked := make([]RankedResult, len(results))
	for i, r := range results {
		ranked[i] = RankedResult{ScoringResult: r, Rank: i + 1, Pareto: onFrontier[r.Subject]}
	}
	return ranked, nil
}
