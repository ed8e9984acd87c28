// Package construction implements the work-point ledger for buildings under
// construction: site initialization, builder crews, daily accrual with
// single-project focus, and the completion transition.
package construction

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/quennell/hearthstead/internal/capability"
	"github.com/quennell/hearthstead/internal/catalog"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/rng"
)

// DailyProgress reports one accrual pass over the active site.
type DailyProgress struct {
	BuildingID  int64   `json:"building_id"`
	TypeKey     string  `json:"type_key"`
	PointsAdded float64 `json:"points_added"`
	Completed   bool    `json:"completed"`
}

// Service defines the construction progress engine.
type Service interface {
	PlaceBuilding(ctx context.Context, day int, typeKey string, level int, pos domain.Position) (*domain.Building, error)
	Building(id int64) (*domain.Building, error)
	AllBuildings() []*domain.Building
	AssignBuilder(ctx context.Context, buildingID, villagerID int64) error
	UnassignBuilder(ctx context.Context, buildingID, villagerID int64) error
	ReleaseVillager(ctx context.Context, villagerID int64)
	ProcessDailyConstruction(ctx context.Context, day int) (DailyProgress, bool)
	CompleteConstruction(ctx context.Context, day int, buildingID int64) error
	ActiveSite() (domain.ConstructionSite, bool)
	Sites() []domain.ConstructionSite
	Summaries() []domain.ConstructionSummary
	Snapshot() (buildings []domain.Building, sites []domain.ConstructionSite, nextBuildingID int64)
	Restore(buildings []domain.Building, sites []domain.ConstructionSite, nextBuildingID int64)
}

type service struct {
	mu             sync.RWMutex
	buildings      map[int64]*domain.Building
	sites          map[int64]*domain.ConstructionSite
	nextBuildingID int64

	catalog   *catalog.Buildings
	roster    population.Service
	modifiers modifier.Service
	rnd       rng.Source
	publisher *event.ResilientPublisher
}

// NewService creates a new construction progress engine.
func NewService(cat *catalog.Buildings, roster population.Service, modifiers modifier.Service, rnd rng.Source, publisher *event.ResilientPublisher) Service {
	return &service{
		buildings:      make(map[int64]*domain.Building),
		sites:          make(map[int64]*domain.ConstructionSite),
		nextBuildingID: 1,
		catalog:        cat,
		roster:         roster,
		modifiers:      modifiers,
		rnd:            rnd,
		publisher:      publisher,
	}
}

// requiredPoints computes the work-point requirement for one site. Each
// level past the first adds 30% of the base cost; technology discount
// bonuses stack linearly, 5% each.
func (s *service) requiredPoints(def domain.BuildingDefinition, level int) float64 {
	if level < 1 {
		level = 1
	}
	discount := 0.0
	if s.modifiers != nil {
		discount = float64(s.modifiers.TechBonus(DiscountKey)) * TechDiscountPerBonus
	}
	if discount > 1 {
		discount = 1
	}
	raw := def.BasePoints * (1 + float64(level-1)*LevelPointScale) * (1 - discount)
	return math.Ceil(raw)
}

// PlaceBuilding creates an unbuilt building and registers its construction
// site. The point requirement is fixed at registration; technologies
// researched later do not retroactively shrink an active site.
func (s *service) PlaceBuilding(ctx context.Context, day int, typeKey string, level int, pos domain.Position) (*domain.Building, error) {
	def, err := s.catalog.Get(typeKey)
	if err != nil {
		return nil, err
	}
	if level < 1 {
		level = 1
	}

	s.mu.Lock()
	b := &domain.Building{
		ID:       s.nextBuildingID,
		TypeKey:  typeKey,
		Level:    level,
		Built:    false,
		Position: pos,
	}
	s.nextBuildingID++
	s.buildings[b.ID] = b

	site := &domain.ConstructionSite{
		BuildingID:    b.ID,
		TypeKey:       typeKey,
		Level:         level,
		TotalPoints:   s.requiredPoints(def, level),
		Status:        domain.SiteActive,
		RegisteredDay: day,
	}
	s.sites[b.ID] = site
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Construction site registered",
		"building_id", b.ID, "type", typeKey, "level", level, "required_points", site.TotalPoints)
	return b, nil
}

// Building returns a placed building by id.
func (s *service) Building(id int64) (*domain.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buildings[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrBuildingNotFound, id)
	}
	return b, nil
}

// AllBuildings returns every placed building, ordered by id.
func (s *service) AllBuildings() []*domain.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AssignBuilder puts a work-eligible villager on a site's crew. A builder
// belongs to at most one site; the villager's status and assigned building
// are updated in place.
func (s *service) AssignBuilder(ctx context.Context, buildingID, villagerID int64) error {
	v, err := s.roster.Get(villagerID)
	if err != nil {
		return err
	}
	if !v.CanWork() {
		return fmt.Errorf("%w: villager %d is %s", domain.ErrIneligibleStage, villagerID, v.Stage())
	}
	if v.AssignedBuildingID != nil {
		return fmt.Errorf("%w: villager %d", domain.ErrAlreadyAssigned, villagerID)
	}

	s.mu.Lock()
	site, ok := s.sites[buildingID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: building %d", domain.ErrSiteNotFound, buildingID)
	}
	site.Builders = append(site.Builders, domain.BuilderAssignment{VillagerID: villagerID})
	s.mu.Unlock()

	assigned := buildingID
	v.Status = domain.StatusWorking
	v.AssignedBuildingID = &assigned

	logger.FromContext(ctx).Info("Builder assigned",
		"villager_id", villagerID, "building_id", buildingID)
	return nil
}

// UnassignBuilder removes a villager from a site's crew and restores them
// to idle.
func (s *service) UnassignBuilder(ctx context.Context, buildingID, villagerID int64) error {
	s.mu.Lock()
	site, ok := s.sites[buildingID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: building %d", domain.ErrSiteNotFound, buildingID)
	}
	if !removeBuilder(site, villagerID) {
		s.mu.Unlock()
		return fmt.Errorf("%w: villager %d not on site %d", domain.ErrVillagerNotFound, villagerID, buildingID)
	}
	s.mu.Unlock()

	if v, err := s.roster.Get(villagerID); err == nil {
		v.Status = domain.StatusIdle
		v.AssignedBuildingID = nil
	}

	logger.FromContext(ctx).Info("Builder unassigned",
		"villager_id", villagerID, "building_id", buildingID)
	return nil
}

// ReleaseVillager drops a dead villager from any crew. The roster record is
// already gone, so only the site side needs clearing.
func (s *service) ReleaseVillager(ctx context.Context, villagerID int64) {
	s.mu.Lock()
	var from int64 = -1
	for id, site := range s.sites {
		if removeBuilder(site, villagerID) {
			from = id
			break
		}
	}
	s.mu.Unlock()

	if from >= 0 {
		logger.FromContext(ctx).Info("Builder released after death",
			"villager_id", villagerID, "building_id", from)
	}
}

func removeBuilder(site *domain.ConstructionSite, villagerID int64) bool {
	for i, ba := range site.Builders {
		if ba.VillagerID == villagerID {
			site.Builders = append(site.Builders[:i], site.Builders[i+1:]...)
			return true
		}
	}
	return false
}

// recomputeEfficiency re-derives each builder's contribution from current
// skill tiers, age, and vitals. Called fresh each accrual pass; values are
// never carried across days.
func (s *service) recomputeEfficiency(site *domain.ConstructionSite, def domain.BuildingDefinition) float64 {
	sum := 0.0
	for i := range site.Builders {
		site.Builders[i].Efficiency = 0
		v, err := s.roster.Get(site.Builders[i].VillagerID)
		if err != nil {
			continue
		}
		eff := capability.Compute(v, def.RelevantSkills, capability.TaskConstruction)
		site.Builders[i].Efficiency = eff
		sum += eff
	}
	return sum
}

// dailyOutput is the crew's point output for one day: summed individual
// efficiency, the teamwork step function, and any speed multiplier active
// in the modifier ledger.
func (s *service) dailyOutput(site *domain.ConstructionSite, def domain.BuildingDefinition) float64 {
	sum := s.recomputeEfficiency(site, def)
	if sum <= 0 {
		return 0
	}
	out := sum * capability.TeamworkBonus(len(site.Builders))
	if s.modifiers != nil {
		out *= s.modifiers.MultiplierFor(SpeedKey)
	}
	return out
}

// activeSiteLocked returns the earliest-registered unfinished site. Ties on
// registration day break by building id, so the ordering is stable.
func (s *service) activeSiteLocked() *domain.ConstructionSite {
	var active *domain.ConstructionSite
	for _, site := range s.sites {
		if site.Status != domain.SiteActive {
			continue
		}
		if active == nil ||
			site.RegisteredDay < active.RegisteredDay ||
			(site.RegisteredDay == active.RegisteredDay && site.BuildingID < active.BuildingID) {
			active = site
		}
	}
	return active
}

// ProcessDailyConstruction runs one accrual pass. Only the earliest
// registered unfinished site accrues points; every other site waits its
// turn. Returns false when no site is active.
func (s *service) ProcessDailyConstruction(ctx context.Context, day int) (DailyProgress, bool) {
	s.mu.Lock()
	site := s.activeSiteLocked()
	if site == nil {
		s.mu.Unlock()
		return DailyProgress{}, false
	}

	def, err := s.catalog.Get(site.TypeKey)
	if err != nil {
		s.mu.Unlock()
		return DailyProgress{}, false
	}

	output := s.dailyOutput(site, def)
	gain := math.Min(output, site.Remaining())
	site.Points += gain
	done := site.Remaining() == 0 && site.TotalPoints > 0
	buildingID := site.BuildingID
	builders := make([]int64, len(site.Builders))
	for i, ba := range site.Builders {
		builders[i] = ba.VillagerID
	}
	s.mu.Unlock()

	progress := DailyProgress{
		BuildingID:  buildingID,
		TypeKey:     site.TypeKey,
		PointsAdded: gain,
		Completed:   done,
	}

	if gain > 0 {
		s.awardXP(ctx, day, builders, def, done)
	}
	logger.FromContext(ctx).Debug("Construction accrued",
		"building_id", buildingID, "points_added", gain, "complete", done)

	if done {
		if err := s.CompleteConstruction(ctx, day, buildingID); err != nil {
			logger.FromContext(ctx).Error("Construction completion failed",
				"building_id", buildingID, "error", err)
		}
	}
	return progress, true
}

// awardXP grants the daily construction XP to each builder, per relevant
// skill: a 1-2 roll scaled by difficulty, plus a lump bonus on completion.
// Tier crossings on the standard table emit skill.levelup events.
func (s *service) awardXP(ctx context.Context, day int, builders []int64, def domain.BuildingDefinition, completed bool) {
	table := capability.TableByID(capability.StandardTableID)
	for _, id := range builders {
		v, err := s.roster.Get(id)
		if err != nil {
			continue
		}
		if v.Skills == nil {
			v.Skills = make(map[string]int64)
		}
		for _, skill := range def.RelevantSkills {
			roll := s.rnd.IntBetween(xpRollMin, xpRollMax)
			gain := int64(math.Round(float64(roll) * def.Difficulty))
			if completed {
				gain += int64(math.Round(completionXPBonus * def.Difficulty))
			}
			if gain <= 0 {
				continue
			}

			before := table.TierForXP(v.Skills[skill])
			v.Skills[skill] += gain
			after := table.TierForXP(v.Skills[skill])
			if after > before && s.publisher != nil {
				_ = s.publisher.PublishWithRetry(ctx, event.NewSkillLevelUpEvent(
					day, v.ID, v.Name, skill, int(before), int(after), after.Name()))
			}
		}
	}
}

// CompleteConstruction transitions a site to built: the building is marked
// complete, builders return to idle, the site is destroyed, and a
// building.completed event goes out for the job registry and UI.
func (s *service) CompleteConstruction(ctx context.Context, day int, buildingID int64) error {
	s.mu.Lock()
	b, ok := s.buildings[buildingID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %d", domain.ErrBuildingNotFound, buildingID)
	}
	if b.Built {
		s.mu.Unlock()
		return fmt.Errorf("%w: id %d", domain.ErrAlreadyBuilt, buildingID)
	}
	site, ok := s.sites[buildingID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: building %d", domain.ErrSiteNotFound, buildingID)
	}

	b.Built = true
	builders := make([]int64, len(site.Builders))
	for i, ba := range site.Builders {
		builders[i] = ba.VillagerID
	}
	delete(s.sites, buildingID)
	s.mu.Unlock()

	for _, id := range builders {
		if v, err := s.roster.Get(id); err == nil {
			v.Status = domain.StatusIdle
			v.AssignedBuildingID = nil
		}
	}

	logger.FromContext(ctx).Info("Construction complete",
		"building_id", b.ID, "type", b.TypeKey, "level", b.Level, "builders_released", len(builders))
	if s.publisher != nil {
		_ = s.publisher.PublishWithRetry(ctx, event.NewBuildingCompletedEvent(day, b))
	}
	return nil
}

// ActiveSite returns a copy of the site currently accruing, if any.
func (s *service) ActiveSite() (domain.ConstructionSite, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	site := s.activeSiteLocked()
	if site == nil {
		return domain.ConstructionSite{}, false
	}
	return copySite(site), true
}

// Sites returns every unfinished site, ordered by registration.
func (s *service) Sites() []domain.ConstructionSite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ConstructionSite, 0, len(s.sites))
	for _, site := range s.sites {
		out = append(out, copySite(site))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredDay != out[j].RegisteredDay {
			return out[i].RegisteredDay < out[j].RegisteredDay
		}
		return out[i].BuildingID < out[j].BuildingID
	})
	return out
}

// Summaries assembles the read-only per-site view: progress, crew, the
// efficiency breakdown, and an ETA at today's output.
func (s *service) Summaries() []domain.ConstructionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.sites))
	for id := range s.sites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.sites[ids[i]], s.sites[ids[j]]
		if a.RegisteredDay != b.RegisteredDay {
			return a.RegisteredDay < b.RegisteredDay
		}
		return a.BuildingID < b.BuildingID
	})

	out := make([]domain.ConstructionSummary, 0, len(ids))
	for _, id := range ids {
		site := s.sites[id]
		summary := domain.ConstructionSummary{
			BuildingID:      site.BuildingID,
			TypeKey:         site.TypeKey,
			PercentComplete: site.PercentComplete(),
			PointsRemaining: site.Remaining(),
			BuilderCount:    len(site.Builders),
			DaysToComplete:  -1,
		}
		if def, err := s.catalog.Get(site.TypeKey); err == nil {
			output := s.dailyOutput(site, def)
			if output > 0 {
				summary.DaysToComplete = int(math.Ceil(site.Remaining() / output))
			}
			for _, ba := range site.Builders {
				name := ""
				if v, err := s.roster.Get(ba.VillagerID); err == nil {
					name = v.Name
				}
				summary.Breakdown = append(summary.Breakdown, domain.EfficiencyBreakdown{
					VillagerID: ba.VillagerID,
					Name:       name,
					Efficiency: ba.Efficiency,
				})
			}
		}
		out = append(out, summary)
	}
	return out
}

// Snapshot returns the plain-data building and site state.
func (s *service) Snapshot() ([]domain.Building, []domain.ConstructionSite, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buildings := make([]domain.Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		buildings = append(buildings, *b)
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })

	sites := make([]domain.ConstructionSite, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, copySite(site))
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].BuildingID < sites[j].BuildingID })

	return buildings, sites, s.nextBuildingID
}

// Restore replaces the building and site state from a snapshot.
func (s *service) Restore(buildings []domain.Building, sites []domain.ConstructionSite, nextBuildingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buildings = make(map[int64]*domain.Building, len(buildings))
	for i := range buildings {
		b := buildings[i]
		s.buildings[b.ID] = &b
	}
	s.sites = make(map[int64]*domain.ConstructionSite, len(sites))
	for i := range sites {
		site := copySite(&sites[i])
		s.sites[site.BuildingID] = &site
	}
	if nextBuildingID > 0 {
		s.nextBuildingID = nextBuildingID
	}
}

func copySite(site *domain.ConstructionSite) domain.ConstructionSite {
	c := *site
	c.Builders = make([]domain.BuilderAssignment, len(site.Builders))
	copy(c.Builders, site.Builders)
	return c
}
