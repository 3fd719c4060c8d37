// Package schedules contributes the stock learning-rate schedules to the
// "schedules" registry category.
package schedules

import (
	"github.com/TheVinhLuong102/thinc/registry"
	"github.com/zclconf/go-cty/cty"
)

// Schedule yields a rate for a given timestep.
type Schedule func(step int) float64

// Module implements registry.Module for this package.
type Module struct{}

// Register adds the schedule constructors to r.
func (Module) Register(r *registry.Registry) error {
	defaultDecay := cty.NumberFloatVal(1e-4)
	defaultWarmup := cty.NumberIntVal(1000)

	entries := []struct {
		name string
		ctor *registry.Constructor
	}{
		{
			name: "constant.v0",
			ctor: &registry.Constructor{
				Fn:     Constant,
				Params: []registry.Param{{Name: "rate"}},
			},
		},
		{
			name: "decaying.v0",
			ctor: &registry.Constructor{
				Fn: Decaying,
				Params: []registry.Param{
					{Name: "base"},
					{Name: "decay", Default: &defaultDecay},
				},
			},
		},
		{
			name: "warmup_linear.v0",
			ctor: &registry.Constructor{
				Fn: WarmupLinear,
				Params: []registry.Param{
					{Name: "initial"},
					{Name: "warmupSteps", Default: &defaultWarmup},
					{Name: "totalSteps"},
				},
			},
		},
	}
	for _, e := range entries {
		if err := r.Register("schedules", e.name, e.ctor); err != nil {
			return err
		}
	}
	return nil
}

// Constant yields the same rate at every step.
func Constant(rate float64) Schedule {
	return func(int) float64 { return rate }
}

// Decaying yields base scaled down by a hyperbolic decay over time.
func Decaying(base, decay float64) Schedule {
	return func(step int) float64 {
		return base / (1.0 + decay*float64(step))
	}
}

// WarmupLinear increases the rate linearly from zero over warmupSteps, then
// decays it linearly back to zero at totalSteps.
func WarmupLinear(initial float64, warmupSteps, totalSteps int) Schedule {
	return func(step int) float64 {
		if step < warmupSteps {
			return initial * float64(step) / float64(warmupSteps)
		}
		remaining := float64(totalSteps-step) / float64(totalSteps-warmupSteps)
		if remaining < 0 {
			remaining = 0
		}
		return initial * remaining
	}
}
