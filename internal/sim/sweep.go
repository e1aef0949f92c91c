package sim

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sbremner/RsOptimizer/internal/models"
)

// Variant is one configuration to evaluate in a sweep.
type Variant struct {
	Name    string
	Options Options
}

// SweepResult pairs a variant with the rotation and summary it produced.
type SweepResult struct {
	Variant  Variant
	Rotation *Rotation
	Summary  *Summary
}

// Sweep runs every variant over an independent clone of the roster,
// concurrently, and returns all results plus the index of the variant
// with the highest total value. Runs share nothing, so parallelism never
// touches shared simulation state.
func Sweep(actions []*models.Action, variants []Variant, horizon int) ([]SweepResult, int, error) {
	if len(variants) == 0 {
		return nil, 0, fmt.Errorf("no variants to sweep")
	}

	results := make([]SweepResult, len(variants))

	var g errgroup.Group
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			state := New(models.CloneActions(actions), v.Options)
			planner := NewPlanner(state)
			rotation := planner.Run(horizon)

			results[i] = SweepResult{
				Variant:  v,
				Rotation: rotation,
				Summary:  planner.Summarize(rotation),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	best := 0
	for i := range results {
		if results[i].Summary.TotalValue > results[best].Summary.TotalValue {
			best = i
		}
	}

	return results, best, nil
}
