// Package sim implements the rotation simulation engine: the per-tick
// state model (cooldowns, adrenaline, active modifiers), value
// computation including buff opportunity value, and the greedy planner
// that drives a state across a fixed horizon.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/sbremner/RsOptimizer/internal/models"
	"github.com/sbremner/RsOptimizer/internal/util"
)

// Options configures a simulation state.
type Options struct {
	// Adrenaline is the initial resource balance.
	Adrenaline float64

	// UsePRNG enables uniform value draws and the probabilistic ASR
	// cost waiver instead of deterministic midpoints.
	UsePRNG bool

	// Seed drives the injected random source. Zero maps to a fixed
	// default; the source is never reseeded mid-run.
	Seed int64

	// UseRingOfVigour reduces the ultimate cost from 100 to 90.
	UseRingOfVigour bool

	// UseASR gives threshold abilities a 10% chance of costing nothing
	// (requires UsePRNG).
	UseASR bool

	Logger *slog.Logger
}

// State owns the full action roster, the adrenaline balance and the set
// of currently active modifiers, and orchestrates ticking and activation.
// It is exclusively owned and mutated by the planner driving it.
type State struct {
	Actions    []*models.Action
	ActiveMods []*models.Modifier

	// Running counters for the adrenaline economy. Invariant:
	// balance + excess + spent == gained + initial balance.
	ExcessAdrenaline float64
	SpentAdrenaline  float64
	GainedAdrenaline float64

	UsePRNG         bool
	UseRingOfVigour bool
	UseASR          bool

	adrenaline float64
	rng        *rand.Rand
	onActivate []effect
	logger     *slog.Logger
}

// New constructs a simulation state over the given roster. The roster is
// owned by the state from here on.
func New(actions []*models.Action, opts Options) *State {
	s := &State{
		Actions:         actions,
		adrenaline:      opts.Adrenaline,
		UsePRNG:         opts.UsePRNG,
		UseRingOfVigour: opts.UseRingOfVigour,
		UseASR:          opts.UseASR,
		onActivate:      activationPipeline(),
		logger:          opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if opts.UsePRNG {
		s.rng = util.NewRand(opts.Seed)
	}
	return s
}

// Adrenaline returns the current resource balance. Part of
// models.StateView.
func (s *State) Adrenaline() float64 {
	return s.adrenaline
}

// ActionByName returns the roster action with the given name, or nil.
// Part of models.StateView.
func (s *State) ActionByName(name string) *models.Action {
	return models.FindByName(name, s.Actions)
}

// ActiveModNames returns the names of all currently active modifiers, in
// active-set order.
func (s *State) ActiveModNames() []string {
	var names []string
	for _, m := range s.ActiveMods {
		if m.Active() {
			names = append(names, m.Name)
		}
	}
	return names
}

// Tick advances every action and active modifier by the elapsed ticks,
// then prunes modifiers that crossed their duration.
func (s *State) Tick(ticks int) {
	for _, a := range s.Actions {
		a.Tick(ticks)
	}

	live := s.ActiveMods[:0]
	for _, m := range s.ActiveMods {
		m.Tick(ticks)
		if m.Active() {
			live = append(live, m)
		}
	}
	s.ActiveMods = live
}

// ActivateNone advances time by a single tick with no side effects. Used
// to probe cooldown progress when nothing is currently eligible.
func (s *State) ActivateNone() {
	s.Tick(1)
}

// Activate runs the full activation sequence for the named action: reset
// its cooldown, run the ordered side-effect pipeline, then advance global
// time by the action's duration. An unknown name is a recoverable error.
//
// Each pipeline effect is isolated: a failing effect is reported and
// logged but never aborts the remaining effects or the simulation.
func (s *State) Activate(name string) (*ActivationReport, error) {
	action := s.ActionByName(name)
	if action == nil {
		return nil, fmt.Errorf("no action named %q", name)
	}

	action.Activate()

	report := &ActivationReport{Action: name}
	for _, e := range s.onActivate {
		result := EffectResult{Name: e.name, Err: e.fn(s, action)}
		if result.Err != nil {
			s.logger.Warn("activation effect failed",
				"action", name, "effect", e.name, "error", result.Err)
		}
		report.Effects = append(report.Effects, result)
	}

	s.Tick(action.Ticks)
	return report, nil
}

// CheckEligibility applies the action's eligibility rule against this
// state. Actions without a rule are always eligible; NegativeRule inverts
// the verdict.
func (s *State) CheckEligibility(a *models.Action) bool {
	return eligibleIn(s, a)
}

func eligibleIn(view models.StateView, a *models.Action) bool {
	if a.Rule == nil {
		return true
	}
	return a.Rule.Eligible(view) != a.NegativeRule
}

// projection is the throwaway state view used during prediction: an
// optimistically advanced adrenaline balance over an empty roster, so
// sibling lookups find nothing.
type projection struct {
	adrenaline float64
}

func (p projection) Adrenaline() float64 {
	return p.adrenaline
}

func (p projection) ActionByName(string) *models.Action {
	return nil
}
