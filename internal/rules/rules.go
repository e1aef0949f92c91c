// Package rules provides the closed set of eligibility rule variants that
// gate action selection, plus an expr-based extension point for custom
// conditions.
package rules

import (
	"fmt"

	"github.com/sbremner/RsOptimizer/internal/models"
)

// Adrenaline gain assumptions used by the sibling guard: a basic ability
// costs 15 adrenaline and passive generation averages 8 per 3 ticks.
const (
	defaultThresholdCost = 15.0
	defaultGainPerTick   = 8.0 / 3.0
	defaultThreshold     = 50.0
)

// Threshold is eligible once the adrenaline balance reaches Min.
type Threshold struct {
	Min float64
}

func (r Threshold) Eligible(view models.StateView) bool {
	return view.Adrenaline() >= r.Min
}

// Ultimate is eligible only at a full adrenaline bar.
type Ultimate struct{}

func (r Ultimate) Eligible(view models.StateView) bool {
	return view.Adrenaline() == 100
}

// ThresholdUnlessSibling is a threshold rule that additionally refuses to
// spend when doing so would delay the named sibling (typically the
// ultimate): if the sibling is ready, or spending Cost now leaves too
// little passive gain to reach a full bar by the time it comes off
// cooldown, the action is ineligible.
type ThresholdUnlessSibling struct {
	Min         float64
	Sibling     string
	Cost        float64
	GainPerTick float64
}

// NewThresholdUnlessSibling builds the guard with the standard cost and
// gain assumptions.
func NewThresholdUnlessSibling(min float64, sibling string) ThresholdUnlessSibling {
	return ThresholdUnlessSibling{
		Min:         min,
		Sibling:     sibling,
		Cost:        defaultThresholdCost,
		GainPerTick: defaultGainPerTick,
	}
}

func (r ThresholdUnlessSibling) Eligible(view models.StateView) bool {
	if sibling := view.ActionByName(r.Sibling); sibling != nil {
		if sibling.IsReady() {
			return false
		}
		projected := (view.Adrenaline() - r.Cost) + float64(sibling.TimeRemaining())*r.GainPerTick
		if projected < 100 {
			return false
		}
	}
	return view.Adrenaline() >= r.Min
}

// New builds a rule from its catalog description. Kind selects the
// variant; min defaults to the standard 50-adrenaline threshold.
func New(kind string, min float64, sibling, src string) (models.EligibilityRule, error) {
	if min == 0 {
		min = defaultThreshold
	}
	switch kind {
	case "threshold":
		return Threshold{Min: min}, nil
	case "ultimate":
		return Ultimate{}, nil
	case "threshold_unless_sibling":
		if sibling == "" {
			return nil, fmt.Errorf("rule %q requires a sibling action name", kind)
		}
		return NewThresholdUnlessSibling(min, sibling), nil
	case "expr":
		return CompileExpr(src)
	default:
		return nil, fmt.Errorf("unknown eligibility rule kind %q", kind)
	}
}
