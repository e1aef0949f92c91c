package sim

import (
	"github.com/google/uuid"
)

// Decision records one step of the rotation: the chosen action (nil for a
// skip), its non-predictive value and the adrenaline balance at selection
// time, and the names of the modifiers active when it was chosen.
type Decision struct {
	Tick       int
	Action     string // empty for a skip
	Ticks      int    // duration the decision advanced time by
	Value      float64
	Adrenaline float64
	ActiveMods []string

	// Report carries per-effect results for the activation; nil for skips.
	Report *ActivationReport
}

// Skip reports whether this decision passed the tick without acting.
func (d Decision) Skip() bool {
	return d.Action == ""
}

// Rotation is the full decision log of one planner run.
type Rotation struct {
	RunID     uuid.UUID
	Horizon   int
	Decisions []Decision
}

// TotalValue sums the realized value of the rotation: each decision's
// per-tick value times its duration. Skips contribute nothing.
func (r *Rotation) TotalValue() float64 {
	var total float64
	for _, d := range r.Decisions {
		if d.Skip() {
			continue
		}
		total += d.Value * float64(d.Ticks)
	}
	return total
}

// FailedEffects counts activation side effects that reported an error
// across the whole run.
func (r *Rotation) FailedEffects() int {
	count := 0
	for _, d := range r.Decisions {
		if d.Report != nil {
			count += len(d.Report.Failed())
		}
	}
	return count
}

// Planner drives a simulation state across a fixed horizon, selecting and
// activating the greedy-best eligible action at every decision point.
type Planner struct {
	state *State
}

// NewPlanner wraps a state. The planner takes exclusive ownership of the
// state for the duration of the run.
func NewPlanner(state *State) *Planner {
	return &Planner{state: state}
}

// State exposes the driven state for post-run reporting.
func (p *Planner) State() *State {
	return p.state
}

// Run executes the greedy horizon loop: at each decision point, record
// the chosen action (or a skip), activate it, and advance elapsed ticks
// by the action's duration (exactly one tick for a skip) until the
// elapsed counter exceeds the horizon.
func (p *Planner) Run(horizon int) *Rotation {
	rotation := &Rotation{
		RunID:   uuid.New(),
		Horizon: horizon,
	}

	current := 0
	for current <= horizon {
		action := p.state.GreedyBest()

		decision := Decision{
			Tick:       current,
			Ticks:      1,
			Value:      p.state.Value(action, false),
			Adrenaline: p.state.Adrenaline(),
			ActiveMods: p.state.ActiveModNames(),
		}

		if action == nil {
			p.state.ActivateNone()
		} else {
			decision.Action = action.Name
			decision.Ticks = action.Ticks

			report, err := p.state.Activate(action.Name)
			if err != nil {
				// Unreachable for roster actions, but the lookup contract
				// is nil-checked everywhere.
				p.state.logger.Warn("activation failed", "action", action.Name, "error", err)
			}
			decision.Report = report
		}

		rotation.Decisions = append(rotation.Decisions, decision)
		current += decision.Ticks
	}

	return rotation
}
