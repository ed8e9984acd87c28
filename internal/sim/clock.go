package sim

import "github.com/quennell/hearthstead/internal/domain"

// Clock holds the simulated day counter. Day 0 is the pre-simulation state;
// the first tick advances to day 1.
type Clock struct {
	day int
}

// Day returns the current simulated day.
func (c *Clock) Day() int {
	return c.day
}

// Season returns the season the current day falls in.
func (c *Clock) Season() domain.Season {
	return domain.SeasonForDay(c.day)
}

func (c *Clock) advance() int {
	c.day++
	return c.day
}

func (c *Clock) set(day int) {
	c.day = day
}
