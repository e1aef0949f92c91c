package sim

import (
	"sort"

	"github.com/google/uuid"
)

// UsageEntry is one action's aggregate line in the summary.
type UsageEntry struct {
	Name       string
	TimesUsed  int
	TotalValue float64
}

// Summary aggregates a finished rotation for external formatting. The
// engine computes the numbers; rendering them is the caller's concern.
type Summary struct {
	RunID   uuid.UUID
	Horizon int

	TotalValue   float64
	AverageValue float64 // per tick over the horizon

	MostUsed       string
	MostUsedCount  int
	MostValuable   string
	MostValuableAt float64 // share of the rotation total, 0..1

	GainedAdrenaline float64
	SpentAdrenaline  float64
	ExcessAdrenaline float64

	// ValuePerAdrenaline is the total realized value of adrenaline
	// spenders divided by all adrenaline spent. Zero when nothing was
	// spent.
	ValuePerAdrenaline float64

	ActionsTaken  int
	FailedEffects int
	Usage         []UsageEntry
}

// Summarize computes the aggregate counters for a finished run.
func (p *Planner) Summarize(rotation *Rotation) *Summary {
	s := p.state

	summary := &Summary{
		RunID:            rotation.RunID,
		Horizon:          rotation.Horizon,
		TotalValue:       rotation.TotalValue(),
		GainedAdrenaline: s.GainedAdrenaline,
		SpentAdrenaline:  s.SpentAdrenaline,
		ExcessAdrenaline: s.ExcessAdrenaline,
		FailedEffects:    rotation.FailedEffects(),
	}

	if rotation.Horizon > 0 {
		summary.AverageValue = summary.TotalValue / float64(rotation.Horizon)
	}

	for _, d := range rotation.Decisions {
		if !d.Skip() {
			summary.ActionsTaken++
		}
	}

	if most, uses := s.MostUsed(); most != nil {
		summary.MostUsed = most.Name
		summary.MostUsedCount = uses
	}

	if most, value := s.MostValuable(); most != nil {
		summary.MostValuable = most.Name
		if summary.TotalValue > 0 {
			summary.MostValuableAt = value / summary.TotalValue
		}
	}

	var spenderValue float64
	for _, a := range s.Actions {
		if a.AdrenalineChange < 0 {
			spenderValue += a.TotalUsedValue
		}
	}
	if summary.SpentAdrenaline > 0 {
		summary.ValuePerAdrenaline = spenderValue / summary.SpentAdrenaline
	}

	summary.Usage = make([]UsageEntry, 0, len(s.Actions))
	for _, a := range s.Actions {
		summary.Usage = append(summary.Usage, UsageEntry{
			Name:       a.Name,
			TimesUsed:  a.TimesUsed,
			TotalValue: a.TotalUsedValue,
		})
	}

	// Most-used first; name breaks ties so output stays deterministic.
	sort.SliceStable(summary.Usage, func(i, j int) bool {
		if summary.Usage[i].TimesUsed != summary.Usage[j].TimesUsed {
			return summary.Usage[i].TimesUsed > summary.Usage[j].TimesUsed
		}
		return summary.Usage[i].Name < summary.Usage[j].Name
	})

	return summary
}
