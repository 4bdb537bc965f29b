package scoring

// ComputeFrontier returns the Pareto-optimal results from the input set.
// A result is dominated if another result scores >= on every criterion and
// strictly higher on at least one. Results must share one criteria order,
// which holds for results from the same Scorer.
// O(n^2) dominance check, fine for team-sized sets.
func ComputeFrontier(results []ScoringResult) []ScoringResult {
	if len(results) <= 1 {
		return results
	}

	var frontier []ScoringResult
	for i := range results {
		dominated := false
		for j := range results {
			if i == j {
				continue
			}
			if dominates(results[j], results[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, results[i])
		}
	}
	return frontier
}

// dominates returns true if a dominates b. Missing scores count as zero.
func dominates(a, b ScoringResult) bool {
	if len(a.Factors) != len(b.Factors) {
		return false
	}
	strictly := false
	for i := range a.Factors {
		if a.Factors[i].Score < b.Factors[i].Score {
			return false
		}
		if a.Factors[i].Score > b.Factors[i].Score {
			strictly = true
		}
	}
	return strictly
}
