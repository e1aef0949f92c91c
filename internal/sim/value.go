package sim

import "github.com/sbremner/RsOptimizer/internal/models"

// Value computes an action's per-tick value in the current state: the
// action's raw value with every active modifier applied one at a time
// (modable actions only), plus, when predict is set and the action grants
// a modifier, the estimated extra value that buff is worth to future
// actions. A nil action is worth zero.
func (s *State) Value(action *models.Action, predict bool) float64 {
	if action == nil {
		return 0
	}

	base := action.Value(s.rng, true)

	if action.Modable {
		for _, m := range s.ActiveMods {
			if m.Active() {
				base = m.ApplyMod(base)
			}
		}
	}

	if action.Mod != nil && predict {
		base += s.predictedModValue(action)
	}

	return base
}

// realizedValue is the value actually dealt by an activation: raw value
// under active modifiers, consuming one-time-use modifiers. Never
// includes prediction inflation.
func (s *State) realizedValue(action *models.Action) float64 {
	val := action.Value(s.rng, true)
	if action.Modable {
		for _, m := range s.ActiveMods {
			if m.Active() {
				val = m.Consume(val)
			}
		}
	}
	return val
}

// predictedModValue estimates the opportunity value of the buff this
// action grants. One-time buffs are worth the bonus on the single best
// modable action usable within the activation window; duration buffs are
// worth the average per-tick bonus across eligible modable actions,
// scaled by the duration. A window with no qualifying action contributes
// zero rather than failing.
func (s *State) predictedModValue(action *models.Action) float64 {
	mod := action.Mod

	if mod.OneTimeUse {
		best, ok := s.normalizedBestValue(action.Ticks, mod, modableOnly)
		if !ok {
			s.logger.Debug("no eligible baseline for modifier prediction",
				"action", action.Name, "modifier", mod.Name)
			return 0
		}
		return modIncrease(best, mod.Multiplier)
	}

	avg, ok := s.normalizedAverageValue(mod.Duration, mod, modableOnly)
	if !ok {
		s.logger.Debug("no eligible baseline for modifier prediction",
			"action", action.Name, "modifier", mod.Name)
		return 0
	}
	return modIncrease(avg, mod.Multiplier) * float64(mod.Duration)
}

// modIncrease recovers the bonus portion of a modified value: given
// v = v0*(1+m), the amount by which v exceeds the unmodified v0 is
// v - v/(1+m).
func modIncrease(v, m float64) float64 {
	return v - v/(1+m)
}

func modableOnly(a *models.Action) bool {
	return a.Modable
}

// normalizedAverageValue averages the per-tick value of every filtered,
// eligible action usable within the window. Eligibility is checked
// against a projection of the adrenaline balance assuming maximum passive
// gain over the window. Returns ok=false when no action qualifies.
func (s *State) normalizedAverageValue(ticks int, mod *models.Modifier, filter func(*models.Action) bool) (float64, bool) {
	projected := projection{adrenaline: s.adrenaline + (float64(ticks-3)/3.0)*8}

	var sum float64
	var count int

	for _, a := range s.Actions {
		if filter != nil && !filter(a) {
			continue
		}
		if a.TimeRemaining() > ticks || !eligibleIn(projected, a) {
			continue
		}

		val := a.Value(s.rng, true)
		if mod != nil {
			val = mod.ApplyMod(val)
		}

		sum += val
		count++
	}

	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// normalizedBestValue is the same eligibility scan tracking only the
// maximum per-tick value. Returns ok=false when no action qualifies.
func (s *State) normalizedBestValue(ticks int, mod *models.Modifier, filter func(*models.Action) bool) (float64, bool) {
	var best float64
	found := false

	for _, a := range s.Actions {
		if filter != nil && !filter(a) {
			continue
		}
		if a.TimeRemaining() > ticks || !eligibleIn(s, a) {
			continue
		}

		val := a.Value(s.rng, true)
		if mod != nil && a.Modable {
			val = mod.ApplyMod(val)
		}

		if !found || val > best {
			best = val
		}
		found = true
	}

	return best, found
}
