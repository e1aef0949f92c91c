package models

import "math/rand"

// StateView is the read-only slice of simulation state that eligibility
// rules may inspect. The simulation state satisfies it; prediction code
// substitutes a projection with no roster.
type StateView interface {
	Adrenaline() float64
	ActionByName(name string) *Action
}

// EligibilityRule gates whether an action may be selected given the
// current simulation state.
type EligibilityRule interface {
	Eligible(view StateView) bool
}

// Action is a cooldown-gated, optionally adrenaline-gated unit of work
// with a value function, an optional modifier template it grants on use,
// and an optional eligibility rule.
type Action struct {
	Timer

	Name             string
	Min              float64
	Max              float64
	Cooldown         int // ticks before reusable
	Ticks            int // duration of one activation
	AdrenalineChange float64
	AccuracyMod      float64
	NumberOfHits     int
	Modable          bool      // whether active modifiers apply to it
	Mod              *Modifier // template granted on activation
	AlwaysUse        bool      // forces selection whenever eligible
	Enabled          bool
	Equipment        string // e.g. 2H, DW, Shield

	Rule         EligibilityRule
	NegativeRule bool // invert the rule's verdict

	// Names of actions whose cooldowns reset in lockstep with this one,
	// modeling mutually-exclusive variants of the same ability.
	BuddyActions []string

	// Accumulated realized value across all uses, for damage-per-adrenaline
	// reporting.
	TotalUsedValue float64
}

// NewAction creates an action with the standard defaults: three-tick
// duration, +8 adrenaline, a single hit, modable and enabled. A zero min
// defaults to 20% of max. The cooldown timer is seeded so the action
// starts ready.
func NewAction(name string, min, max float64, cooldown int) *Action {
	if min == 0 {
		min = 0.20 * max
	}
	return &Action{
		Timer:            Timer{LastUsed: cooldown},
		Name:             name,
		Min:              min,
		Max:              max,
		Cooldown:         cooldown,
		Ticks:            3,
		AdrenalineChange: 8,
		NumberOfHits:     1,
		Modable:          true,
		Enabled:          true,
	}
}

// Value computes the action's raw value: a uniform draw from [Min, Max]
// when rng is provided, otherwise the midpoint; adjusted by AccuracyMod,
// normalized to a per-tick rate unless suppressed, and multiplied by the
// hit count. Pure with respect to simulation state.
func (a *Action) Value(rng *rand.Rand, normalize bool) float64 {
	var val float64
	if rng != nil {
		val = a.Min + rng.Float64()*(a.Max-a.Min)
	} else {
		val = (a.Min + a.Max) / 2.0
	}

	val += val * a.AccuracyMod

	if normalize {
		val /= float64(a.Ticks)
	}

	return val * float64(a.NumberOfHits)
}

// TimeRemaining returns the ticks until the action is reusable. Negative
// means overdue/ready.
func (a *Action) TimeRemaining() int {
	return a.Cooldown - a.LastUsed
}

// IsReady reports whether the cooldown has elapsed and the action is
// enabled.
func (a *Action) IsReady() bool {
	return a.LastUsed >= a.Cooldown && a.Enabled
}

// SharesCooldown reports whether this action has buddy actions.
func (a *Action) SharesCooldown() bool {
	return len(a.BuddyActions) > 0
}

// Clone returns an independent copy, including the modifier template.
// Eligibility rules are stateless and shared.
func (a *Action) Clone() *Action {
	c := *a
	if a.Mod != nil {
		mod := *a.Mod
		c.Mod = &mod
	}
	c.BuddyActions = append([]string(nil), a.BuddyActions...)
	return &c
}

// CloneActions deep-copies a roster so independent simulation runs never
// share mutable state.
func CloneActions(actions []*Action) []*Action {
	out := make([]*Action, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}

// FindByName returns the action with the given name, or nil. A missing
// name is a recoverable lookup failure; callers must nil-check.
func FindByName(name string, actions []*Action) *Action {
	for _, a := range actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}
