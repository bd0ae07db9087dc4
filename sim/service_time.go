package sim

import "math/rand"

// DurationModel computes the service duration for a requested fuel quantity.
// The stochastic variation lives behind this interface so tests (and
// reproducibility-sensitive callers) can pin it to a constant.
type DurationModel interface {
	// EstimateDuration returns the service time in minutes, always >= 1.
	EstimateDuration(quantity int) Minutes
}

// baseDuration is ceil(quantity/10): one minute per started ten litres.
func baseDuration(quantity int) int {
	return (quantity + 9) / 10
}

// UniformVariationModel draws an independent variation from {-1, 0, +1} per
// call and adds it to the base duration, clamped to a minimum of one minute.
type UniformVariationModel struct {
	rand *rand.Rand
}

// NewUniformVariationModel creates the stochastic duration model.
func NewUniformVariationModel(rng *rand.Rand) *UniformVariationModel {
	return &UniformVariationModel{rand: rng}
}

// EstimateDuration implements DurationModel.
func (m *UniformVariationModel) EstimateDuration(quantity int) Minutes {
	variation := m.rand.Intn(3) - 1
	return Minutes(max(1, baseDuration(quantity)+variation))
}

// FixedVariationModel applies a constant variation instead of a random one.
// Two runs over the same inputs with the same variation produce identical
// completion timelines.
type FixedVariationModel struct {
	Variation int
}

// EstimateDuration implements DurationModel.
func (m *FixedVariationModel) EstimateDuration(quantity int) Minutes {
	return Minutes(max(1, baseDuration(quantity)+m.Variation))
}
