package population

import (
	"context"
	"fmt"
	"sync"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/rng"
)

// Service defines the population ledger business logic: the villager roster,
// daily aging and death, and birth rolls. Villager pointers returned from the
// ledger are the shared live records the other engines mutate.
type Service interface {
	AdvanceDay(ctx context.Context, day int) domain.DeathReport
	CalculateDailyGrowth(ctx context.Context, foodAbundant, foodScarce bool) domain.GrowthReport
	AddVillager(ctx context.Context, day int, params AddVillagerParams) (*domain.Villager, error)
	RemoveVillager(ctx context.Context, id int64) error
	Get(id int64) (*domain.Villager, error)
	All() []*domain.Villager
	Count() int
	GroupByLifeStage() map[domain.LifeStage]int
	GroupByRole() map[string]int
	ProjectDeaths(horizonDays int) domain.DeathProjection
	Summary() domain.PopulationSummary
	Snapshot() (villagers []domain.Villager, nextID int64)
	Restore(villagers []domain.Villager, nextID int64)
}

// AddVillagerParams is the explicit configuration for roster insertion.
// Zero values fall back to the documented defaults; ID 0 auto-assigns the
// next monotonic id.
type AddVillagerParams struct {
	ID        int64
	Name      string
	Age       int
	Gender    domain.Gender
	Role      string
	Status    domain.VillagerStatus
	Health    int
	Happiness int
	Skills    map[string]int64
	Twin      bool // reporting only, rides into the born event
}

type service struct {
	mu        sync.RWMutex
	roster    []*domain.Villager
	index     map[int64]*domain.Villager
	nextID    int64
	rnd       rng.Source
	publisher *event.ResilientPublisher
}

// NewService creates a new population ledger.
func NewService(rnd rng.Source, publisher *event.ResilientPublisher) Service {
	return &service{
		index:     make(map[int64]*domain.Villager),
		nextID:    1,
		rnd:       rnd,
		publisher: publisher,
	}
}

// AdvanceDay increments every living villager's age, then removes everyone
// who reached the death threshold in the same pass. Ages are incremented
// before any death check so a villager cannot die mid-sweep from a stale
// comparison.
func (s *service) AdvanceDay(ctx context.Context, day int) domain.DeathReport {
	s.mu.Lock()

	for _, v := range s.roster {
		v.Age++
	}

	report := domain.DeathReport{Day: day}
	var removed []*domain.Villager
	kept := s.roster[:0]
	for _, v := range s.roster {
		if v.Age >= domain.AgeDeath {
			report.Deaths = append(report.Deaths, domain.DeathRecord{
				Name: v.Name,
				Role: v.Role,
				Age:  v.Age,
			})
			removed = append(removed, v)
			delete(s.index, v.ID)
			continue
		}
		kept = append(kept, v)
	}
	s.roster = kept
	s.mu.Unlock()

	log := logger.FromContext(ctx)
	for _, v := range removed {
		log.Info("Villager died of old age", "villager_id", v.ID, "name", v.Name, "age", v.Age)
		if s.publisher != nil {
			_ = s.publisher.PublishWithRetry(ctx, event.NewVillagerDiedEvent(day, v.ID, v.Name, v.Role, v.Age))
		}
	}
	return report
}

// CalculateDailyGrowth rolls births for the day. Eligible parents are in the
// breeding range and neither sick nor traveling; couples pair off by gender
// count. Villager creation is left to the caller so it can assign names and
// genders.
func (s *service) CalculateDailyGrowth(ctx context.Context, foodAbundant, foodScarce bool) domain.GrowthReport {
	s.mu.RLock()
	males, females := 0, 0
	for _, v := range s.roster {
		if !v.IsBreedingAge() {
			continue
		}
		if v.Status == domain.StatusSick || v.Status == domain.StatusTraveling {
			continue
		}
		if v.Gender == domain.GenderMale {
			males++
		} else {
			females++
		}
	}
	s.mu.RUnlock()

	couples := males
	if females < couples {
		couples = females
	}

	report := domain.GrowthReport{EligibleCouples: couples}
	if couples == 0 {
		return report
	}

	chance := BirthBaseChance * (1.0 + foodChanceAdjustment(foodAbundant, foodScarce))

	for i := 0; i < couples; i++ {
		if s.rnd.Float64() >= chance {
			continue
		}
		report.Births++
		if s.rnd.Float64() < TwinChance {
			report.Births++
			report.Twins++
		}
	}

	if report.Births > 0 {
		logger.FromContext(ctx).Info("Births rolled",
			"couples", couples, "births", report.Births, "twins", report.Twins)
	}
	return report
}

// foodChanceAdjustment combines the food flags into a single net adjustment,
// clamped to the documented band before it is applied.
func foodChanceAdjustment(abundant, scarce bool) float64 {
	adj := 0.0
	if abundant {
		adj += FoodAdjustment
	}
	if scarce {
		adj -= FoodAdjustment
	}
	if adj > FoodAdjustment {
		adj = FoodAdjustment
	}
	if adj < -FoodAdjustment {
		adj = -FoodAdjustment
	}
	return adj
}

// AddVillager inserts a villager, auto-assigning the next id when none is
// supplied.
func (s *service) AddVillager(ctx context.Context, day int, params AddVillagerParams) (*domain.Villager, error) {
	if params.Age < 0 {
		return nil, fmt.Errorf("%w: age must not be negative", domain.ErrInvalidInput)
	}
	if params.Gender == "" {
		return nil, fmt.Errorf("%w: gender is required", domain.ErrInvalidInput)
	}

	v := &domain.Villager{
		Name:      params.Name,
		Age:       params.Age,
		Gender:    params.Gender,
		Role:      params.Role,
		Status:    params.Status,
		Health:    params.Health,
		Happiness: params.Happiness,
		Skills:    params.Skills,
	}
	if v.Role == "" {
		v.Role = domain.RoleUnemployed
	}
	if v.Status == "" {
		v.Status = domain.StatusIdle
	}
	if v.Health == 0 {
		v.Health = domain.DefaultHealth
	}
	if v.Happiness == 0 {
		v.Happiness = domain.DefaultHappiness
	}
	if v.Skills == nil {
		v.Skills = make(map[string]int64)
	}

	s.mu.Lock()
	if params.ID != 0 {
		if _, exists := s.index[params.ID]; exists {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: villager id %d already exists", domain.ErrInvalidInput, params.ID)
		}
		v.ID = params.ID
		if params.ID >= s.nextID {
			s.nextID = params.ID + 1
		}
	} else {
		v.ID = s.nextID
		s.nextID++
	}
	s.roster = append(s.roster, v)
	s.index[v.ID] = v
	s.mu.Unlock()

	if v.Age == 0 && s.publisher != nil {
		_ = s.publisher.PublishWithRetry(ctx, event.NewVillagerBornEvent(day, v.ID, v.Name, v.Gender, params.Twin))
	}
	return v, nil
}

// RemoveVillager deletes a villager from the roster.
func (s *service) RemoveVillager(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("%w: id %d", domain.ErrVillagerNotFound, id)
	}
	delete(s.index, id)
	for i, v := range s.roster {
		if v.ID == id {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the live villager record for an id.
func (s *service) Get(id int64) (*domain.Villager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrVillagerNotFound, id)
	}
	return v, nil
}

// All returns the roster in insertion order.
func (s *service) All() []*domain.Villager {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Villager, len(s.roster))
	copy(out, s.roster)
	return out
}

// Count returns the living population size.
func (s *service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roster)
}

// GroupByLifeStage buckets the roster by derived life stage. Read-only.
func (s *service) GroupByLifeStage() map[domain.LifeStage]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.LifeStage]int)
	for _, v := range s.roster {
		out[v.Stage()]++
	}
	return out
}

// GroupByRole buckets the roster by role. Read-only.
func (s *service) GroupByRole() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int)
	for _, v := range s.roster {
		out[v.Role]++
	}
	return out
}

// ProjectDeaths estimates deaths over the horizon by bucketing villagers on
// proximity to the death threshold and weighting each bucket by its
// survival-to-death probability. A projection only: nothing is removed.
func (s *service) ProjectDeaths(horizonDays int) domain.DeathProjection {
	if horizonDays < 1 {
		horizonDays = 1
	}

	scale := float64(horizonDays) / projectionBaseHorizon
	if scale > 1 {
		scale = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	proj := domain.DeathProjection{HorizonDays: horizonDays}
	for _, v := range s.roster {
		daysLeft := domain.AgeDeath - v.Age
		bucket := (daysLeft - 1) / horizonDays
		if bucket < 0 {
			bucket = 0
		}
		if bucket >= len(projectionWeights) {
			continue
		}
		proj.AtRisk++
		proj.ExpectedCount += projectionWeights[bucket] * scale
	}
	return proj
}

// Summary assembles the read-only population view for UI collaborators.
func (s *service) Summary() domain.PopulationSummary {
	byStage := s.GroupByLifeStage()
	byRole := s.GroupByRole()

	s.mu.RLock()
	total := len(s.roster)
	var ageSum, healthSum float64
	for _, v := range s.roster {
		ageSum += float64(v.Age)
		healthSum += float64(v.Health)
	}
	s.mu.RUnlock()

	summary := domain.PopulationSummary{
		Total:   total,
		ByStage: byStage,
		ByRole:  byRole,
	}
	if total > 0 {
		summary.AverageAge = ageSum / float64(total)
		summary.AverageHealth = healthSum / float64(total)
	}
	summary.Projection = s.ProjectDeaths(DefaultProjectionHorizon)
	return summary
}

// Snapshot returns the plain-data roster state.
func (s *service) Snapshot() ([]domain.Villager, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Villager, 0, len(s.roster))
	for _, v := range s.roster {
		c := *v
		c.Skills = make(map[string]int64, len(v.Skills))
		for k, xp := range v.Skills {
			c.Skills[k] = xp
		}
		if v.AssignedBuildingID != nil {
			b := *v.AssignedBuildingID
			c.AssignedBuildingID = &b
		}
		out = append(out, c)
	}
	return out, s.nextID
}

// Restore replaces the roster from a snapshot.
func (s *service) Restore(villagers []domain.Villager, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = make([]*domain.Villager, 0, len(villagers))
	s.index = make(map[int64]*domain.Villager, len(villagers))
	for i := range villagers {
		v := villagers[i]
		if v.Skills == nil {
			v.Skills = make(map[string]int64)
		}
		s.roster = append(s.roster, &v)
		s.index[v.ID] = &v
	}
	if nextID > 0 {
		s.nextID = nextID
	}
}
