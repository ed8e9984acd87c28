package domain

// EffectCategory groups effects by origin. Technology bonuses are permanent;
// the other categories are time-bound.
type EffectCategory string

const (
	CategoryMagical    EffectCategory = "magical"
	CategoryWeather    EffectCategory = "weather"
	CategoryTechnology EffectCategory = "technology"
)

// EffectTemplate is a registered effect blueprint. Templates with SingleStack
// replace an active effect of the same key instead of stacking.
type EffectTemplate struct {
	Key         string             `json:"key" validate:"required"`
	DisplayName string             `json:"display_name" validate:"required"`
	Category    EffectCategory     `json:"category" validate:"required,oneof=magical weather technology"`
	Multipliers map[string]float64 `json:"multipliers" validate:"required,min=1"`
	SingleStack bool               `json:"single_stack"`
}

// Effect is an active instance of a template. EndDay is computed once at
// creation (StartDay+Duration) and never recomputed. Technology bonuses have
// no end day (Duration 0, EndDay 0) and never expire.
type Effect struct {
	ID          int64              `json:"id"`
	Key         string             `json:"key"`
	Category    EffectCategory     `json:"category"`
	Multipliers map[string]float64 `json:"multipliers"`
	StartDay    int                `json:"start_day"`
	Duration    int                `json:"duration"`
	EndDay      int                `json:"end_day"`
}

// Permanent reports whether the effect never expires.
func (e *Effect) Permanent() bool {
	return e.Category == CategoryTechnology
}

// ExpiredAt reports whether the effect has lapsed by the given day.
func (e *Effect) ExpiredAt(day int) bool {
	return !e.Permanent() && day >= e.EndDay
}
