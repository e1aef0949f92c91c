package sim

import "github.com/sbremner/RsOptimizer/internal/models"

// AvailableActions returns every enabled, ready, eligible action. If any
// such action is flagged AlwaysUse, the returned set is restricted to
// just the forced actions: they pre-empt free choice entirely.
func (s *State) AvailableActions() []*models.Action {
	var forced []*models.Action
	for _, a := range s.Actions {
		if a.AlwaysUse && a.IsReady() && s.CheckEligibility(a) {
			forced = append(forced, a)
		}
	}
	if len(forced) > 0 {
		return forced
	}

	var available []*models.Action
	for _, a := range s.Actions {
		if a.IsReady() && s.CheckEligibility(a) {
			available = append(available, a)
		}
	}
	return available
}

// GreedyBest picks the available action with the highest predicted value.
// Ties prefer the lower cooldown, favoring frequently-reusable actions.
// Returns nil when nothing is available, signaling a pass tick.
func (s *State) GreedyBest() *models.Action {
	var best *models.Action
	var bestVal float64

	for _, a := range s.AvailableActions() {
		val := s.Value(a, true)

		if best == nil || val > bestVal || (val == bestVal && a.Cooldown < best.Cooldown) {
			best = a
			bestVal = val
		}
	}

	return best
}

// MostUsed returns the action with the highest use count.
func (s *State) MostUsed() (*models.Action, int) {
	var most *models.Action
	uses := 0

	for _, a := range s.Actions {
		if most == nil || a.TimesUsed > uses {
			most = a
			uses = a.TimesUsed
		}
	}

	return most, uses
}

// MostValuable returns the action with the highest total realized value.
func (s *State) MostValuable() (*models.Action, float64) {
	var most *models.Action
	var value float64

	for _, a := range s.Actions {
		if most == nil || a.TotalUsedValue > value {
			most = a
			value = a.TotalUsedValue
		}
	}

	return most, value
}
