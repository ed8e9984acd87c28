package domain

// Season of the simulated year. Each season spans 90 days.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// DaysPerSeason is the length of one season in simulated days.
const DaysPerSeason = 90

// SeasonForDay returns the season for an absolute day counter.
func SeasonForDay(day int) Season {
	if day < 0 {
		day = 0
	}
	switch (day / DaysPerSeason) % 4 {
	case 0:
		return SeasonSpring
	case 1:
		return SeasonSummer
	case 2:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
