package population

// Daily growth tuning.
const (
	// BirthBaseChance is the per-couple daily birth probability.
	BirthBaseChance = 1.0 / 7.0

	// FoodAdjustment is the swing applied to the birth chance when food is
	// abundant (+) or scarce (-). The net adjustment is clamped to
	// [-FoodAdjustment, +FoodAdjustment] before being applied.
	FoodAdjustment = 0.5

	// TwinChance is the independent per-birth probability of twins.
	TwinChance = 0.01
)

// DefaultProjectionHorizon is the horizon used by the population summary.
const DefaultProjectionHorizon = 30

// projectionWeights are the empirically chosen survival-to-death weights per
// proximity bucket. Bucket i covers villagers whose days-to-death fall in
// ((i)*horizon, (i+1)*horizon].
var projectionWeights = [...]float64{1.0, 0.6, 0.3, 0.1}

// projectionBaseHorizon is the horizon the weights were tuned against;
// shorter horizons scale the expectation down linearly.
const projectionBaseHorizon = 30.0
