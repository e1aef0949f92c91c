package sim

import (
	"math"
	"testing"

	"github.com/sbremner/RsOptimizer/internal/models"
	"github.com/sbremner/RsOptimizer/internal/rules"
)

func TestValueNilActionIsZero(t *testing.T) {
	s := New(nil, Options{})
	if got := s.Value(nil, true); got != 0 {
		t.Errorf("Value(nil) = %v, want 0", got)
	}
}

func TestActiveModsApplyToModableActionsOnly(t *testing.T) {
	modable := models.NewAction("Modable", 60, 60, 5)
	fixed := models.NewAction("Fixed", 60, 60, 5)
	fixed.Modable = false

	s := New([]*models.Action{modable, fixed}, Options{})
	s.ActiveMods = append(s.ActiveMods, models.NewModifier("Buff", 0.5, 20, false))

	if got := s.Value(modable, false); got != 30 {
		t.Errorf("modable value = %v, want 30 (20 per tick * 1.5)", got)
	}
	if got := s.Value(fixed, false); got != 20 {
		t.Errorf("non-modable value = %v, want 20 unmodified", got)
	}
}

func TestModsApplyOneAtATime(t *testing.T) {
	a := models.NewAction("Test", 30, 30, 5)
	a.Ticks = 1

	s := New([]*models.Action{a}, Options{})
	s.ActiveMods = append(s.ActiveMods,
		models.NewModifier("First", 0.5, 20, false),
		models.NewModifier("Second", 0.1, 20, false),
	)

	// Sequential application: 30 * 1.5 * 1.1, not 30 * 1.6.
	want := 30 * 1.5 * 1.1
	if got := s.Value(a, false); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value = %v, want %v", got, want)
	}
}

func TestOneTimeModifierPrediction(t *testing.T) {
	// Baseline best next action is worth 20 per tick; a one-time 100%
	// buff makes it 40, and the predicted increase is 40 - 40/2 = 20.
	baseline := models.NewAction("Baseline", 60, 60, 5)
	granting := models.NewAction("Granting", 30, 30, 5)
	granting.Modable = false
	granting.Mod = models.NewModifier("Buff", 1.0, 0, true)

	s := New([]*models.Action{baseline, granting}, Options{})

	plain := s.Value(granting, false)
	if plain != 10 {
		t.Fatalf("non-predictive value = %v, want 10", plain)
	}

	predicted := s.Value(granting, true)
	if got := predicted - plain; math.Abs(got-20) > 1e-9 {
		t.Errorf("predicted increase = %v, want 20", got)
	}
}

func TestDurationModifierPrediction(t *testing.T) {
	// Eligible modable per-tick values 10 and 30 become 15 and 45 under a
	// 50% buff; the average 30 yields an increase of 30 - 30/1.5 = 10 per
	// tick, scaled by the 10-tick duration.
	low := models.NewAction("Low", 30, 30, 5)
	high := models.NewAction("High", 90, 90, 5)
	granting := models.NewAction("Granting", 30, 30, 5)
	granting.Modable = false
	granting.Mod = models.NewModifier("Buff", 0.5, 10, false)

	s := New([]*models.Action{low, high, granting}, Options{})

	plain := s.Value(granting, false)
	predicted := s.Value(granting, true)
	if got := predicted - plain; math.Abs(got-100) > 1e-9 {
		t.Errorf("predicted increase = %v, want 100", got)
	}
}

func TestEmptyBaselineContributesZero(t *testing.T) {
	// Nothing modable qualifies, so the buff predicts no extra value
	// instead of failing.
	fixed := models.NewAction("Fixed", 60, 60, 5)
	fixed.Modable = false
	granting := models.NewAction("Granting", 30, 30, 5)
	granting.Modable = false
	granting.Mod = models.NewModifier("Buff", 1.0, 0, true)

	s := New([]*models.Action{fixed, granting}, Options{})

	if s.Value(granting, true) != s.Value(granting, false) {
		t.Error("prediction without an eligible baseline must contribute zero")
	}
}

func TestPredictionSkipsActionsOutsideWindow(t *testing.T) {
	// The only modable action has 10 ticks of cooldown left but the
	// one-time buff window is the granting action's 3 ticks.
	cooling := models.NewAction("Cooling", 60, 60, 20)
	cooling.Activate()
	cooling.Tick(10)
	granting := models.NewAction("Granting", 30, 30, 5)
	granting.Modable = false
	granting.Mod = models.NewModifier("Buff", 1.0, 0, true)

	s := New([]*models.Action{cooling, granting}, Options{})

	if s.Value(granting, true) != s.Value(granting, false) {
		t.Error("actions outside the buff window must not feed the baseline")
	}
}

func TestAverageBaselineUsesProjectedAdrenaline(t *testing.T) {
	gated := models.NewAction("Gated", 60, 60, 5)
	gated.Rule = rules.Threshold{Min: 50}

	s := New([]*models.Action{gated}, Options{Adrenaline: 30})

	// Over a 30-tick window the projection gains (30-3)/3*8 = 72,
	// clearing the threshold.
	if _, ok := s.normalizedAverageValue(30, nil, nil); !ok {
		t.Error("projected adrenaline should make the gated action eligible")
	}

	// Over the minimal window there is no projected gain.
	if _, ok := s.normalizedAverageValue(3, nil, nil); ok {
		t.Error("gated action should be ineligible without projected gain")
	}
}

func TestBestBaselineTracksMaximum(t *testing.T) {
	low := models.NewAction("Low", 30, 30, 5)
	high := models.NewAction("High", 90, 90, 5)

	s := New([]*models.Action{low, high}, Options{})

	best, ok := s.normalizedBestValue(3, nil, nil)
	if !ok {
		t.Fatal("expected a baseline")
	}
	if best != 30 {
		t.Errorf("best = %v, want 30 (the higher per-tick value)", best)
	}
}

func TestGreedyTieBreakPrefersLowerCooldown(t *testing.T) {
	slow := models.NewAction("Slow", 60, 60, 20)
	fast := models.NewAction("Fast", 60, 60, 5)

	s := New([]*models.Action{slow, fast}, Options{})

	if best := s.GreedyBest(); best == nil || best.Name != "Fast" {
		t.Errorf("GreedyBest = %v, want the lower-cooldown action", best)
	}
}

func TestGreedyBestNilWhenNothingAvailable(t *testing.T) {
	a := models.NewAction("Cooling", 60, 60, 10)
	a.Activate()

	s := New([]*models.Action{a}, Options{})

	if best := s.GreedyBest(); best != nil {
		t.Errorf("GreedyBest = %v, want nil with everything on cooldown", best)
	}
}

func TestRealizedValueConsumesOneTimeMods(t *testing.T) {
	a := models.NewAction("Hit", 60, 60, 0)

	s := New([]*models.Action{a}, Options{})
	s.ActiveMods = append(s.ActiveMods, models.NewModifier("Buff", 1.0, 0, true))

	if got := s.realizedValue(a); got != 40 {
		t.Fatalf("realized value = %v, want 40", got)
	}
	if s.ActiveMods[0].Active() {
		t.Error("one-time modifier should be consumed by a realized hit")
	}
	// Evaluation, by contrast, never consumes.
	s.ActiveMods[0].Reset()
	_ = s.Value(a, false)
	if !s.ActiveMods[0].Active() {
		t.Error("evaluating a value must not consume modifiers")
	}
}
