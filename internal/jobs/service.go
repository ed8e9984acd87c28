package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/quennell/hearthstead/internal/capability"
	"github.com/quennell/hearthstead/internal/catalog"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/population"
)

// Service defines the job allocation registry: job definitions, slots bound
// to buildings, assignment, and the daily production/consumption tally.
type Service interface {
	RegisterJobType(def domain.JobDefinition)
	JobType(key string) (domain.JobDefinition, error)
	AllJobTypes() []domain.JobDefinition
	CreateSlotsForBuilding(ctx context.Context, b *domain.Building) (int, error)
	Assign(ctx context.Context, villagerID, slotID int64) error
	Unassign(ctx context.Context, villagerID int64) error
	ReleaseVillager(ctx context.Context, villagerID int64)
	CalculateProduction(season domain.Season) map[domain.Resource]float64
	CalculateConsumption() map[domain.Resource]float64
	AutoAssign(ctx context.Context) int
	SlotFor(villagerID int64) (*domain.JobSlot, bool)
	Summary(season domain.Season) domain.EmploymentSummary
	Snapshot() (slots []domain.JobSlot, nextID int64)
	Restore(slots []domain.JobSlot, nextID int64)
}

type service struct {
	mu         sync.RWMutex
	defs       map[string]domain.JobDefinition
	slots      []*domain.JobSlot
	slotIndex  map[int64]*domain.JobSlot
	byOccupant map[int64]*domain.JobSlot
	nextID     int64

	roster    population.Service
	modifiers modifier.Service
	buildings *catalog.Buildings
	validate  *validator.Validate
}

// NewService creates a new job allocation registry.
func NewService(roster population.Service, modifiers modifier.Service, buildings *catalog.Buildings) Service {
	return &service{
		defs:       make(map[string]domain.JobDefinition),
		slotIndex:  make(map[int64]*domain.JobSlot),
		byOccupant: make(map[int64]*domain.JobSlot),
		nextID:     1,
		roster:     roster,
		modifiers:  modifiers,
		buildings:  buildings,
		validate:   validator.New(),
	}
}

// RegisterJobType adds an immutable job definition. Registering two
// definitions with the same key is a programmer error and panics — job
// content is compiled in, so a collision can never be handled at runtime.
func (s *service) RegisterJobType(def domain.JobDefinition) {
	if err := s.validate.Struct(def); err != nil {
		panic(fmt.Sprintf("jobs: invalid job definition %q: %v", def.Key, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.defs[def.Key]; exists {
		panic(fmt.Sprintf("jobs: duplicate job definition %q", def.Key))
	}
	s.defs[def.Key] = def
}

// JobType returns a registered definition.
func (s *service) JobType(key string) (domain.JobDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[key]
	if !ok {
		return domain.JobDefinition{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, key)
	}
	return def, nil
}

// AllJobTypes returns every registered definition, sorted by key.
func (s *service) AllJobTypes() []domain.JobDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JobDefinition, 0, len(s.defs))
	for _, def := range s.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// CreateSlotsForBuilding creates the slot set a completed building offers.
// Slot counts come from the building definition and are fixed for the
// building's lifetime. Idempotent: a second call for the same building
// creates nothing.
func (s *service) CreateSlotsForBuilding(ctx context.Context, b *domain.Building) (int, error) {
	def, err := s.buildings.Get(b.TypeKey)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		if slot.BuildingID == b.ID {
			return 0, nil
		}
	}

	jobKeys := make([]string, 0, len(def.JobSlots))
	for key := range def.JobSlots {
		jobKeys = append(jobKeys, key)
	}
	sort.Strings(jobKeys)

	created := 0
	for _, jobKey := range jobKeys {
		if _, ok := s.defs[jobKey]; !ok {
			return created, fmt.Errorf("%w: %s (offered by %s)", domain.ErrJobNotFound, jobKey, b.TypeKey)
		}
		for i := 0; i < def.JobSlots[jobKey]; i++ {
			slot := &domain.JobSlot{
				ID:         s.nextID,
				BuildingID: b.ID,
				JobKey:     jobKey,
				Index:      i,
			}
			s.nextID++
			s.slots = append(s.slots, slot)
			s.slotIndex[slot.ID] = slot
			created++
		}
	}

	logger.FromContext(ctx).Info("Job slots created",
		"building_id", b.ID, "type", b.TypeKey, "slots", created)
	return created, nil
}

// Assign places a villager into a slot. Fails when the slot is occupied,
// the villager already holds a slot, or the life stage is ineligible.
// Villager status and AssignedBuildingID are the single source of truth;
// the slot table merely mirrors them.
func (s *service) Assign(ctx context.Context, villagerID, slotID int64) error {
	v, err := s.roster.Get(villagerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slotIndex[slotID]
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrSlotNotFound, slotID)
	}
	if slot.Occupied() {
		return fmt.Errorf("%w: slot %d", domain.ErrSlotOccupied, slotID)
	}
	if existing, held := s.byOccupant[villagerID]; held {
		return fmt.Errorf("%w: villager %d holds slot %d", domain.ErrAlreadyAssigned, villagerID, existing.ID)
	}
	if v.AssignedBuildingID != nil {
		return fmt.Errorf("%w: villager %d", domain.ErrAlreadyAssigned, villagerID)
	}

	def, ok := s.defs[slot.JobKey]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, slot.JobKey)
	}
	if !v.CanWork() {
		return fmt.Errorf("%w: villager %d is %s", domain.ErrIneligibleStage, villagerID, v.Stage())
	}
	if def.SoldierClass && !v.CanSoldier() {
		return fmt.Errorf("%w: villager %d is %s", domain.ErrIneligibleSoldier, villagerID, v.Stage())
	}

	occupant := villagerID
	slot.OccupantID = &occupant
	s.byOccupant[villagerID] = slot

	buildingID := slot.BuildingID
	v.Status = domain.StatusWorking
	v.Role = def.Key
	v.AssignedBuildingID = &buildingID

	logger.FromContext(ctx).Info("Villager assigned",
		"villager_id", villagerID, "slot_id", slotID, "job", def.Key, "building_id", buildingID)
	return nil
}

// Unassign clears a villager's slot and restores them to idle.
func (s *service) Unassign(ctx context.Context, villagerID int64) error {
	v, err := s.roster.Get(villagerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	slot, held := s.byOccupant[villagerID]
	if !held {
		s.mu.Unlock()
		return fmt.Errorf("%w: villager %d holds no slot", domain.ErrSlotNotFound, villagerID)
	}
	slot.OccupantID = nil
	delete(s.byOccupant, villagerID)
	s.mu.Unlock()

	v.Status = domain.StatusIdle
	v.Role = domain.RoleUnemployed
	v.AssignedBuildingID = nil

	logger.FromContext(ctx).Info("Villager unassigned", "villager_id", villagerID, "slot_id", slot.ID)
	return nil
}

// ReleaseVillager frees any slot held by a villager who no longer exists.
// Used by the death cleanup; the roster record is already gone, so only the
// slot side needs clearing.
func (s *service) ReleaseVillager(ctx context.Context, villagerID int64) {
	s.mu.Lock()
	slot, held := s.byOccupant[villagerID]
	if held {
		slot.OccupantID = nil
		delete(s.byOccupant, villagerID)
	}
	s.mu.Unlock()

	if held {
		logger.FromContext(ctx).Info("Slot released after death",
			"villager_id", villagerID, "slot_id", slot.ID)
	}
}

// CalculateProduction tallies daily output across occupied slots: base
// production scaled by season, the occupant's bonus-skill tier (10% per
// level), and any modifier-ledger multiplier keyed to the job.
func (s *service) CalculateProduction(season domain.Season) map[domain.Resource]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Resource]float64)
	for _, slot := range s.slots {
		if !slot.Occupied() {
			continue
		}
		def, ok := s.defs[slot.JobKey]
		if !ok {
			continue
		}
		v, err := s.roster.Get(*slot.OccupantID)
		if err != nil {
			continue
		}

		skillLevel := capability.TableByID(capability.StandardTableID).TierForXP(v.SkillXP(def.BonusSkill))
		skillMult := 1.0 + SkillBonusPerLevel*float64(skillLevel)

		effectMult := 1.0
		if s.modifiers != nil {
			effectMult = s.modifiers.MultiplierFor(EfficiencyKey(def.Key))
		}

		for res, base := range def.Production {
			out[res] += base * SeasonalMultiplier(season, res) * skillMult * effectMult
		}
	}
	return out
}

// CalculateConsumption tallies daily upkeep across occupied slots. Summed
// unmodified — no seasonal or skill scaling is applied to consumption, an
// explicit policy of the economy design.
func (s *service) CalculateConsumption() map[domain.Resource]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Resource]float64)
	for _, slot := range s.slots {
		if !slot.Occupied() {
			continue
		}
		def, ok := s.defs[slot.JobKey]
		if !ok {
			continue
		}
		for res, base := range def.Consumption {
			out[res] += base
		}
	}
	return out
}

// AutoAssign greedily places idle, work-eligible villagers into vacant
// slots, filling the emptiest building first to avoid concentration. The
// fill-emptiest tie-break is the only objective. Returns the number of
// assignments made.
func (s *service) AutoAssign(ctx context.Context) int {
	assigned := 0
	for _, v := range s.roster.All() {
		if v.Status != domain.StatusIdle || !v.CanWork() {
			continue
		}
		slotID, ok := s.pickVacantSlot(v)
		if !ok {
			continue
		}
		if err := s.Assign(ctx, v.ID, slotID); err != nil {
			continue
		}
		assigned++
	}
	return assigned
}

// pickVacantSlot chooses the vacant slot whose building currently has the
// lowest fill ratio, among slots the villager is eligible for.
func (s *service) pickVacantSlot(v *domain.Villager) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type fill struct{ occupied, total int }
	fills := make(map[int64]*fill)
	for _, slot := range s.slots {
		f, ok := fills[slot.BuildingID]
		if !ok {
			f = &fill{}
			fills[slot.BuildingID] = f
		}
		f.total++
		if slot.Occupied() {
			f.occupied++
		}
	}

	var (
		best      *domain.JobSlot
		bestRatio float64
	)
	for _, slot := range s.slots {
		if slot.Occupied() {
			continue
		}
		def, ok := s.defs[slot.JobKey]
		if !ok {
			continue
		}
		if def.SoldierClass && !v.CanSoldier() {
			continue
		}
		f := fills[slot.BuildingID]
		ratio := float64(f.occupied) / float64(f.total)
		if best == nil || ratio < bestRatio || (ratio == bestRatio && slot.ID < best.ID) {
			best = slot
			bestRatio = ratio
		}
	}
	if best == nil {
		return 0, false
	}
	return best.ID, true
}

// SlotFor returns the slot a villager occupies, if any.
func (s *service) SlotFor(villagerID int64) (*domain.JobSlot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.byOccupant[villagerID]
	if !ok {
		return nil, false
	}
	c := *slot
	return &c, true
}

// Summary assembles the read-only employment view for UI collaborators.
func (s *service) Summary(season domain.Season) domain.EmploymentSummary {
	s.mu.RLock()
	total, filled := len(s.slots), 0
	for _, slot := range s.slots {
		if slot.Occupied() {
			filled++
		}
	}
	s.mu.RUnlock()

	summary := domain.EmploymentSummary{
		TotalSlots:  total,
		FilledSlots: filled,
		Production:  s.CalculateProduction(season),
		Consumption: s.CalculateConsumption(),
	}
	if total > 0 {
		summary.VacancyRate = float64(total-filled) / float64(total)
	}
	return summary
}

// Snapshot returns the plain-data slot state.
func (s *service) Snapshot() ([]domain.JobSlot, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JobSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		c := *slot
		if slot.OccupantID != nil {
			id := *slot.OccupantID
			c.OccupantID = &id
		}
		out = append(out, c)
	}
	return out, s.nextID
}

// Restore replaces the slot state from a snapshot. Job definitions are
// compiled in and must already be registered.
func (s *service) Restore(slots []domain.JobSlot, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = make([]*domain.JobSlot, 0, len(slots))
	s.slotIndex = make(map[int64]*domain.JobSlot, len(slots))
	s.byOccupant = make(map[int64]*domain.JobSlot)
	for i := range slots {
		slot := slots[i]
		s.slots = append(s.slots, &slot)
		s.slotIndex[slot.ID] = &slot
		if slot.OccupantID != nil {
			s.byOccupant[*slot.OccupantID] = &slot
		}
	}
	if nextID > 0 {
		s.nextID = nextID
	}
}
