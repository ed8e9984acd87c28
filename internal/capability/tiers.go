// Package capability factors the worker formulas shared by the job and
// construction engines into one place: skill tiers, the age curve, the
// health/happiness scalers, and the teamwork step function.
package capability

import (
	"fmt"
	"sync"
)

// Tier is a discrete skill rank derived from accumulated XP.
type Tier int

const (
	TierNovice Tier = iota
	TierApprentice
	TierJourneyman
	TierExpert
	TierGrandmaster
)

var tierNames = [...]string{"Novice", "Apprentice", "Journeyman", "Expert", "Grandmaster"}

// Name returns the display name of the tier.
func (t Tier) Name() string {
	if t < TierNovice || int(t) >= len(tierNames) {
		return "Novice"
	}
	return tierNames[t]
}

// Table maps XP thresholds to tier efficiency multipliers. Thresholds and
// multipliers are indexed by Tier and must be monotonically increasing.
type Table struct {
	ID          string
	Thresholds  [5]int64   // XP required to hold each tier
	Multipliers [5]float64 // efficiency multiplier granted by each tier
}

// TierForXP returns the highest tier whose threshold the XP meets.
func (tb *Table) TierForXP(xp int64) Tier {
	tier := TierNovice
	for t := TierNovice; t <= TierGrandmaster; t++ {
		if xp >= tb.Thresholds[t] {
			tier = t
		}
	}
	return tier
}

// MultiplierForXP returns the efficiency multiplier for the tier the XP holds.
func (tb *Table) MultiplierForXP(xp int64) float64 {
	return tb.Multipliers[tb.TierForXP(xp)]
}

// StandardTableID is the table used for ordinary labor and construction.
const StandardTableID = "standard"

// MartialTableID is the steeper table used for soldier-class roles.
const MartialTableID = "martial"

var (
	tableMu sync.RWMutex
	tables  = make(map[string]*Table)
)

// MustRegisterTable registers a tier table. Registering two tables with the
// same id is a programmer error and panics.
func MustRegisterTable(tb *Table) {
	tableMu.Lock()
	defer tableMu.Unlock()
	if _, exists := tables[tb.ID]; exists {
		panic(fmt.Sprintf("capability: duplicate tier table %q", tb.ID))
	}
	tables[tb.ID] = tb
}

// TableByID returns a registered table, falling back to the standard table.
func TableByID(id string) *Table {
	tableMu.RLock()
	defer tableMu.RUnlock()
	if tb, ok := tables[id]; ok {
		return tb
	}
	return tables[StandardTableID]
}

func init() {
	MustRegisterTable(&Table{
		ID:          StandardTableID,
		Thresholds:  [5]int64{0, 50, 150, 400, 1000},
		Multipliers: [5]float64{1.0, 1.15, 1.3, 1.5, 1.75},
	})
	MustRegisterTable(&Table{
		ID:          MartialTableID,
		Thresholds:  [5]int64{0, 80, 240, 600, 1500},
		Multipliers: [5]float64{1.0, 1.1, 1.25, 1.45, 1.7},
	})
}
