// Package sim drives the simulation tick and owns the serialization
// contract. A World wires the population ledger, job registry, construction
// engine, and modifier ledger together and advances them in a fixed order;
// nothing inside the core ever ticks itself.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/quennell/hearthstead/internal/construction"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/jobs"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/naming"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/rng"
)

// Food stock thresholds relative to population size: below one day of eating
// births slow down, above five days they speed up.
const (
	foodScarceDays   = 1.0
	foodAbundantDays = 5.0
)

// TickReport is the outcome of one AdvanceDay pass.
type TickReport struct {
	Day            int                         `json:"day"`
	Season         domain.Season               `json:"season"`
	Deaths         domain.DeathReport          `json:"deaths"`
	Births         domain.GrowthReport         `json:"births"`
	Born           []*domain.Villager          `json:"born,omitempty"`
	ExpiredEffects []domain.Effect             `json:"expired_effects,omitempty"`
	Production     map[domain.Resource]float64 `json:"production"`
	Consumption    map[domain.Resource]float64 `json:"consumption"`
	Construction   *construction.DailyProgress `json:"construction,omitempty"`
	Elapsed        time.Duration               `json:"-"`
}

// WorldSummary aggregates the read-only views for external collaborators.
type WorldSummary struct {
	Day          int                         `json:"day"`
	Season       domain.Season               `json:"season"`
	Population   domain.PopulationSummary     `json:"population"`
	Employment   domain.EmploymentSummary     `json:"employment"`
	Construction []domain.ConstructionSummary `json:"construction"`
	Effects      []domain.Effect             `json:"effects"`
	Stock        map[domain.Resource]float64  `json:"stock"`
}

// World is the tick driver. All mutation flows through AdvanceDay or the
// underlying services; the World itself holds only the clock and the
// resource stockpile.
type World struct {
	mu    sync.Mutex
	clock Clock
	stock map[domain.Resource]float64

	roster    population.Service
	jobs      jobs.Service
	constr    construction.Service
	modifiers modifier.Service
	names     naming.Generator
	rnd       rng.Source
	publisher *event.ResilientPublisher
}

// NewWorld wires a world together and registers the cross-engine event
// subscriptions: died villagers release their job slot or crew seat, and
// completed buildings get their job slots created.
func NewWorld(
	roster population.Service,
	jobSvc jobs.Service,
	constr construction.Service,
	modifiers modifier.Service,
	names naming.Generator,
	rnd rng.Source,
	bus event.Bus,
	publisher *event.ResilientPublisher,
) *World {
	w := &World{
		stock:     make(map[domain.Resource]float64),
		roster:    roster,
		jobs:      jobSvc,
		constr:    constr,
		modifiers: modifiers,
		names:     names,
		rnd:       rnd,
		publisher: publisher,
	}

	bus.Subscribe(event.VillagerDied, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.VillagerDiedPayloadV1); ok {
			w.jobs.ReleaseVillager(ctx, p.VillagerID)
			w.constr.ReleaseVillager(ctx, p.VillagerID)
		}
		return nil
	})
	bus.Subscribe(event.BuildingCompleted, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.BuildingCompletedPayloadV1)
		if !ok {
			return nil
		}
		b, err := w.constr.Building(p.BuildingID)
		if err != nil {
			return err
		}
		_, err = w.jobs.CreateSlotsForBuilding(ctx, b)
		return err
	})

	return w
}

// Day returns the current simulated day.
func (w *World) Day() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clock.Day()
}

// Season returns the current season.
func (w *World) Season() domain.Season {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clock.Season()
}

// AddResources credits the stockpile, used by seeding and scenario setup.
func (w *World) AddResources(amounts map[domain.Resource]float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for res, amt := range amounts {
		w.stock[res] += amt
	}
}

// Stock returns a copy of the resource stockpile.
func (w *World) Stock() map[domain.Resource]float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[domain.Resource]float64, len(w.stock))
	for res, amt := range w.stock {
		out[res] = amt
	}
	return out
}

// AdvanceDay runs one tick: modifier expiry, population aging and death,
// births, the production/consumption tally, then construction accrual.
// Stages communicate only through shared villager records and events, so
// the ordering here is the single place the day's sequence is defined.
func (w *World) AdvanceDay(ctx context.Context) TickReport {
	start := time.Now()

	w.mu.Lock()
	day := w.clock.advance()
	w.mu.Unlock()

	ctx = logger.WithDay(ctx, day)
	season := domain.SeasonForDay(day)
	report := TickReport{Day: day, Season: season}

	report.ExpiredEffects = w.modifiers.ExpireDaily(ctx, day)
	report.Deaths = w.roster.AdvanceDay(ctx, day)

	abundant, scarce := w.foodState()
	report.Births = w.roster.CalculateDailyGrowth(ctx, abundant, scarce)
	report.Born = w.deliverBirths(ctx, day, season, report.Births)

	report.Production = w.jobs.CalculateProduction(season)
	report.Consumption = w.jobs.CalculateConsumption()
	w.applyTally(report.Production, report.Consumption)

	if progress, ok := w.constr.ProcessDailyConstruction(ctx, day); ok {
		report.Construction = &progress
	}

	report.Elapsed = time.Since(start)
	logger.FromContext(ctx).Info("Day advanced",
		"season", season,
		"population", w.roster.Count(),
		"births", report.Births.Births,
		"deaths", len(report.Deaths.Deaths),
		"elapsed_ms", report.Elapsed.Milliseconds())

	if w.publisher != nil {
		_ = w.publisher.PublishWithRetry(ctx, event.NewDayAdvancedEvent(
			day, w.roster.Count(), report.Births.Births, len(report.Deaths.Deaths), report.Elapsed))
	}
	return report
}

// deliverBirths creates a villager for each reported birth, drawing names
// and genders here so the population ledger stays free of naming concerns.
func (w *World) deliverBirths(ctx context.Context, day int, season domain.Season, growth domain.GrowthReport) []*domain.Villager {
	born := make([]*domain.Villager, 0, growth.Births)
	for i := 0; i < growth.Births; i++ {
		gender := domain.GenderFemale
		if w.rnd.Float64() < 0.5 {
			gender = domain.GenderMale
		}
		v, err := w.roster.AddVillager(ctx, day, population.AddVillagerParams{
			Name:   w.names.Generate(gender, season),
			Gender: gender,
			Twin:   i < growth.Twins,
		})
		if err != nil {
			logger.FromContext(ctx).Error("Birth delivery failed", "error", err)
			continue
		}
		born = append(born, v)
	}
	return born
}

// foodState classifies the stockpile against the current population: scarce
// below one day of food per head, abundant above five.
func (w *World) foodState() (abundant, scarce bool) {
	count := float64(w.roster.Count())
	if count == 0 {
		return false, false
	}
	w.mu.Lock()
	food := w.stock[domain.ResourceFood]
	w.mu.Unlock()

	perHead := food / count
	return perHead >= foodAbundantDays, perHead < foodScarceDays
}

// applyTally credits production and debits consumption. The stockpile never
// goes negative; shortfall shows up as scarcity, not debt.
func (w *World) applyTally(production, consumption map[domain.Resource]float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for res, amt := range production {
		w.stock[res] += amt
	}
	for res, amt := range consumption {
		w.stock[res] -= amt
		if w.stock[res] < 0 {
			w.stock[res] = 0
		}
	}
}

// Summary assembles the full read-only view.
func (w *World) Summary() WorldSummary {
	return WorldSummary{
		Day:          w.Day(),
		Season:       w.Season(),
		Population:   w.roster.Summary(),
		Employment:   w.jobs.Summary(w.Season()),
		Construction: w.constr.Summaries(),
		Effects:      w.modifiers.ActiveEffects(),
		Stock:        w.Stock(),
	}
}

// Snapshot returns the plain-data form of the full core state. The caller
// owns when and where to persist it.
func (w *World) Snapshot() domain.WorldSnapshot {
	villagers, nextVillagerID := w.roster.Snapshot()
	slots, nextSlotID := w.jobs.Snapshot()
	buildings, sites, nextBuildingID := w.constr.Snapshot()
	effects, tech, nextEffectID := w.modifiers.Snapshot()

	return domain.WorldSnapshot{
		Day:            w.Day(),
		Villagers:      villagers,
		NextVillagerID: nextVillagerID,
		Buildings:      buildings,
		NextBuildingID: nextBuildingID,
		Slots:          slots,
		NextSlotID:     nextSlotID,
		Sites:          sites,
		Effects:        effects,
		TechEffects:    tech,
		NextEffectID:   nextEffectID,
		Stock:          w.Stock(),
	}
}

// Restore replaces the full core state from a snapshot. Restoring and then
// snapshotting again yields an observably identical world.
func (w *World) Restore(snap domain.WorldSnapshot) {
	w.roster.Restore(snap.Villagers, snap.NextVillagerID)
	w.jobs.Restore(snap.Slots, snap.NextSlotID)
	w.constr.Restore(snap.Buildings, snap.Sites, snap.NextBuildingID)
	w.modifiers.Restore(snap.Effects, snap.TechEffects, snap.NextEffectID)

	w.mu.Lock()
	w.clock.set(snap.Day)
	w.stock = make(map[domain.Resource]float64, len(snap.Stock))
	for res, amt := range snap.Stock {
		w.stock[res] = amt
	}
	w.mu.Unlock()
}
