// Package catalog holds the registered building definitions: construction
// cost, difficulty, relevant skills, and the job slots a building offers
// once complete.
package catalog

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/quennell/hearthstead/internal/domain"
)

// Buildings is a registry of building definitions, immutable once registered.
type Buildings struct {
	mu       sync.RWMutex
	defs     map[string]domain.BuildingDefinition
	validate *validator.Validate
}

// NewBuildings creates an empty building catalog.
func NewBuildings() *Buildings {
	return &Buildings{
		defs:     make(map[string]domain.BuildingDefinition),
		validate: validator.New(),
	}
}

// Register adds a building definition.
func (c *Buildings) Register(def domain.BuildingDefinition) error {
	if err := c.validate.Struct(def); err != nil {
		return fmt.Errorf("%w: building definition %q: %v", domain.ErrInvalidInput, def.Key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Key]; exists {
		return fmt.Errorf("%w: building definition %q already registered", domain.ErrInvalidInput, def.Key)
	}
	c.defs[def.Key] = def
	return nil
}

// Get returns the definition for a building type key.
func (c *Buildings) Get(key string) (domain.BuildingDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[key]
	if !ok {
		return domain.BuildingDefinition{}, fmt.Errorf("%w: type %q", domain.ErrBuildingNotFound, key)
	}
	return def, nil
}

// All returns every registered definition.
func (c *Buildings) All() []domain.BuildingDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.BuildingDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	return out
}
