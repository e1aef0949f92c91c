package sim

import (
	"fmt"
	"strings"

	"github.com/sbremner/RsOptimizer/internal/models"
)

// effect is one step of the activation side-effect pipeline.
type effect struct {
	name string
	fn   func(*State, *models.Action) error
}

// EffectResult reports the outcome of a single activation side effect.
type EffectResult struct {
	Name string
	Err  error
}

// OK reports whether the effect completed.
func (r EffectResult) OK() bool {
	return r.Err == nil
}

// ActivationReport aggregates per-effect results for one activation so
// callers see exactly which side effects ran and which failed.
type ActivationReport struct {
	Action  string
	Effects []EffectResult
}

// Failed returns the effects that reported an error.
func (r *ActivationReport) Failed() []EffectResult {
	var failed []EffectResult
	for _, e := range r.Effects {
		if !e.OK() {
			failed = append(failed, e)
		}
	}
	return failed
}

// activationPipeline is the ordered set of side effects run on every
// activation. Order matters: adrenaline settles before modifiers are
// granted, and bookkeeping sees the final modifier set.
func activationPipeline() []effect {
	return []effect{
		{"adrenaline", adjustAdrenaline},
		{"modifiers", applyMods},
		{"buddies", updateBuddies},
		{"bookkeeping", registerActionValue},
	}
}

// adjustAdrenaline applies the action's declared adrenaline change,
// adjusted for configured passives, then clamps the balance at the cap.
// Clamped overflow is fully accounted as excess; gains and spends feed
// separate running totals. No lower clamp is applied.
func adjustAdrenaline(s *State, action *models.Action) error {
	change := action.AdrenalineChange
	if change == 0 {
		return nil
	}

	actual := change
	switch {
	case change == UltimateCost && s.UseRingOfVigour:
		actual = ringOfVigourCost
	case change == ThresholdCost && s.UseASR && s.UsePRNG:
		if s.rng.Float64() <= asrFreeChance {
			actual = 0
		}
	}

	s.adrenaline += actual

	if actual > 0 {
		s.GainedAdrenaline += actual
	} else {
		s.SpentAdrenaline += -actual
	}

	if s.adrenaline > MaxAdrenaline {
		s.ExcessAdrenaline += s.adrenaline - MaxAdrenaline
		s.adrenaline = MaxAdrenaline
	}

	return nil
}

// applyMods grants the action's modifier template, if any: a fresh
// instance joins the active set unless a unique instance of the same name
// is already live, in which case that instance resets in place.
func applyMods(s *State, action *models.Action) error {
	if action.Mod == nil {
		return nil
	}

	inst := action.Mod.Instantiate()

	for _, m := range s.ActiveMods {
		if m.Unique && m.Name == inst.Name {
			m.Reset()
			return nil
		}
	}

	s.ActiveMods = append(s.ActiveMods, inst)
	return nil
}

// updateBuddies forces shared-cooldown siblings into lockstep: using
// either variant of an ability starts the cooldown for both. Unknown
// buddy names are reported but do not stop the remaining resets.
func updateBuddies(s *State, action *models.Action) error {
	if !action.SharesCooldown() {
		return nil
	}

	var missing []string
	for _, name := range action.BuddyActions {
		buddy := s.ActionByName(name)
		if buddy == nil {
			missing = append(missing, name)
			continue
		}
		buddy.LastUsed = 0
	}

	if len(missing) > 0 {
		return fmt.Errorf("unknown buddy actions: %s", strings.Join(missing, ", "))
	}
	return nil
}

// registerActionValue accumulates the realized (non-predictive) value of
// this use into the action's running total, consuming one-time-use
// modifiers in the process.
func registerActionValue(s *State, action *models.Action) error {
	action.TotalUsedValue += s.realizedValue(action)
	return nil
}
