package modifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/logger"
)

// Service defines the modifier ledger business logic. It holds time-bound
// effects (magical, weather) and permanent technology bonuses, and exposes
// the multiplier lookup the other engines consume.
type Service interface {
	RegisterTemplate(tpl domain.EffectTemplate) error
	Apply(ctx context.Context, day int, key string, duration int) (*domain.Effect, error)
	ApplyTechnology(ctx context.Context, day int, key string) (*domain.Effect, error)
	ExpireDaily(ctx context.Context, day int) []domain.Effect
	MultiplierFor(key string) float64
	TechBonus(key string) int
	ActiveEffects() []domain.Effect
	Snapshot() (effects, tech []domain.Effect, nextID int64)
	Restore(effects, tech []domain.Effect, nextID int64)
}

type service struct {
	mu        sync.RWMutex
	templates map[string]domain.EffectTemplate
	effects   []*domain.Effect // time-bound, sorted by arrival
	tech      []*domain.Effect // permanent, no end day
	nextID    int64
	publisher *event.ResilientPublisher
	validate  *validator.Validate
}

// NewService creates a new modifier ledger.
func NewService(publisher *event.ResilientPublisher) Service {
	return &service{
		templates: make(map[string]domain.EffectTemplate),
		nextID:    1,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// RegisterTemplate adds an effect blueprint. Templates are immutable once
// registered.
func (s *service) RegisterTemplate(tpl domain.EffectTemplate) error {
	if err := s.validate.Struct(tpl); err != nil {
		return fmt.Errorf("%w: effect template %q: %v", domain.ErrInvalidInput, tpl.Key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[tpl.Key]; exists {
		return fmt.Errorf("%w: effect template %q already registered", domain.ErrInvalidInput, tpl.Key)
	}
	s.templates[tpl.Key] = tpl
	return nil
}

// Apply activates a time-bound effect from a registered template. When the
// template is single-stack and an effect of the same key is active, the
// existing one is replaced, not stacked.
func (s *service) Apply(ctx context.Context, day int, key string, duration int) (*domain.Effect, error) {
	s.mu.Lock()
	tpl, ok := s.templates[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrEffectNotFound, key)
	}
	if tpl.Category == domain.CategoryTechnology {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is a technology, use ApplyTechnology", domain.ErrInvalidInput, key)
	}

	if tpl.SingleStack {
		for i, e := range s.effects {
			if e.Key == key {
				s.effects = append(s.effects[:i], s.effects[i+1:]...)
				break
			}
		}
	}

	eff := s.newEffectLocked(tpl, day, duration)
	s.effects = append(s.effects, eff)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Effect applied",
		"effect", key, "category", tpl.Category, "until_day", eff.EndDay)
	if s.publisher != nil {
		_ = s.publisher.PublishWithRetry(ctx, event.NewEffectAppliedEvent(day, eff))
	}
	return eff, nil
}

// ApplyTechnology activates a permanent technology bonus. Technologies never
// stack: researching the same key twice keeps a single instance.
func (s *service) ApplyTechnology(ctx context.Context, day int, key string) (*domain.Effect, error) {
	s.mu.Lock()
	tpl, ok := s.templates[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrEffectNotFound, key)
	}
	if tpl.Category != domain.CategoryTechnology {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s is not a technology", domain.ErrInvalidInput, key)
	}
	for _, e := range s.tech {
		if e.Key == key {
			s.mu.Unlock()
			return e, nil
		}
	}

	eff := s.newEffectLocked(tpl, day, 0)
	s.tech = append(s.tech, eff)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Technology researched", "effect", key)
	if s.publisher != nil {
		_ = s.publisher.PublishWithRetry(ctx, event.NewEffectAppliedEvent(day, eff))
	}
	return eff, nil
}

// newEffectLocked builds an effect instance. EndDay is computed exactly once
// here; for technologies it stays zero.
func (s *service) newEffectLocked(tpl domain.EffectTemplate, day, duration int) *domain.Effect {
	mults := make(map[string]float64, len(tpl.Multipliers))
	for k, v := range tpl.Multipliers {
		mults[k] = v
	}
	eff := &domain.Effect{
		ID:          s.nextID,
		Key:         tpl.Key,
		Category:    tpl.Category,
		Multipliers: mults,
		StartDay:    day,
		Duration:    duration,
	}
	if tpl.Category != domain.CategoryTechnology {
		eff.EndDay = day + duration
	}
	s.nextID++
	return eff
}

// ExpireDaily removes every time-bound effect whose end day has passed and
// returns the removed effects. Technology bonuses are untouched.
func (s *service) ExpireDaily(ctx context.Context, day int) []domain.Effect {
	s.mu.Lock()
	var expired []domain.Effect
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.ExpiredAt(day) {
			expired = append(expired, *e)
		} else {
			kept = append(kept, e)
		}
	}
	s.effects = kept
	s.mu.Unlock()

	for i := range expired {
		logger.FromContext(ctx).Info("Effect expired", "effect", expired[i].Key)
		if s.publisher != nil {
			_ = s.publisher.PublishWithRetry(ctx, event.NewEffectExpiredEvent(day, &expired[i]))
		}
	}
	return expired
}

// MultiplierFor returns the product of every active contribution to the key
// across all categories. Composition is multiplicative throughout; a key no
// effect touches yields 1.0.
func (s *service) MultiplierFor(key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mult := 1.0
	for _, e := range s.effects {
		if v, ok := e.Multipliers[key]; ok {
			mult *= v
		}
	}
	for _, e := range s.tech {
		if v, ok := e.Multipliers[key]; ok {
			mult *= v
		}
	}
	return mult
}

// TechBonus counts active technologies contributing to the key. The
// construction engine turns this count into its linear discount.
func (s *service) TechBonus(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.tech {
		if _, ok := e.Multipliers[key]; ok {
			count++
		}
	}
	return count
}

// ActiveEffects returns copies of all active effects, time-bound first.
func (s *service) ActiveEffects() []domain.Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Effect, 0, len(s.effects)+len(s.tech))
	for _, e := range s.effects {
		out = append(out, *e)
	}
	for _, e := range s.tech {
		out = append(out, *e)
	}
	return out
}

// Snapshot returns the plain-data form of the ledger state.
func (s *service) Snapshot() (effects, tech []domain.Effect, nextID int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	effects = make([]domain.Effect, 0, len(s.effects))
	for _, e := range s.effects {
		effects = append(effects, *e)
	}
	tech = make([]domain.Effect, 0, len(s.tech))
	for _, e := range s.tech {
		tech = append(tech, *e)
	}
	return effects, tech, s.nextID
}

// Restore replaces the ledger state from a snapshot.
func (s *service) Restore(effects, tech []domain.Effect, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.effects = make([]*domain.Effect, 0, len(effects))
	for i := range effects {
		e := effects[i]
		s.effects = append(s.effects, &e)
	}
	s.tech = make([]*domain.Effect, 0, len(tech))
	for i := range tech {
		e := tech[i]
		s.tech = append(s.tech, &e)
	}
	if nextID > 0 {
		s.nextID = nextID
	}
}
