package construction

// Requirement formula parameters: each level past the first adds 30% of the
// base cost, and each technology discount bonus shaves 5% off the total.
const (
	LevelPointScale      = 0.3
	TechDiscountPerBonus = 0.05
)

// Modifier-ledger keys the engine listens to. Weather and magical effects
// scale daily output through SpeedKey; permanent technology bonuses carrying
// DiscountKey reduce the point requirement at site initialization.
const (
	SpeedKey    = "constructionSpeed"
	DiscountKey = "constructionDiscount"
)

// Daily XP awarded to builders on the active site: a 1-2 roll scaled by the
// building's difficulty, granted per relevant skill. Completion pays a lump
// bonus on top.
const (
	xpRollMin         = 1
	xpRollMax         = 2
	completionXPBonus = 5
)
