package models

// Modifier is a temporary multiplicative value bonus granted by an action.
// Duration-bound modifiers expire once their timer crosses Duration;
// one-time-use modifiers expire when first consumed. A Modifier attached
// to an Action is a template: every activation instantiates a fresh copy
// owned by the simulation state, never by the action.
type Modifier struct {
	Timer

	Name       string
	Multiplier float64 // signed fractional bonus, applied as value*Multiplier
	Duration   int     // ticks; 0 when OneTimeUse
	OneTimeUse bool
	Unique     bool // at most one live instance per name

	active bool
}

// NewModifier creates a modifier template. Templates default to unique.
func NewModifier(name string, multiplier float64, duration int, oneTimeUse bool) *Modifier {
	return &Modifier{
		Name:       name,
		Multiplier: multiplier,
		Duration:   duration,
		OneTimeUse: oneTimeUse,
		Unique:     true,
		active:     true,
	}
}

// Instantiate returns an independent copy with reset state, ready to join
// an active set. The template itself is never mutated.
func (m *Modifier) Instantiate() *Modifier {
	inst := *m
	inst.Reset()
	return &inst
}

// Active reports whether the modifier still applies. Inactive instances
// are pruned from the active set at the next tick boundary.
func (m *Modifier) Active() bool {
	return m.active
}

// ApplyMod applies the bonus to a value. Pure and state-independent; only
// Consume, Tick and Reset change modifier state.
func (m *Modifier) ApplyMod(value float64) float64 {
	return value + value*m.Multiplier
}

// Consume applies the bonus and expires one-time-use modifiers. An
// instance that already expired but has not been pruned yet contributes
// nothing.
func (m *Modifier) Consume(value float64) float64 {
	if !m.active {
		return value
	}
	if m.OneTimeUse {
		m.active = false
	}
	return m.ApplyMod(value)
}

// Tick advances the timer and expires duration-bound modifiers. One-time
// modifiers are only expired by consumption.
func (m *Modifier) Tick(ticks int) {
	m.Timer.Tick(ticks)
	if m.active && !m.OneTimeUse && m.LastUsed >= m.Duration {
		m.active = false
	}
}

// Reset restores freshly-granted state. Used when a unique modifier is
// re-granted before expiry: the existing instance restarts in place
// instead of stacking.
func (m *Modifier) Reset() {
	m.LastUsed = 0
	m.active = true
}
