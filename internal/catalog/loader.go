package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/validation"
)

// Content pack layout: a directory holding three JSON files, each validated
// against a schema before any definition is registered. A pack replaces the
// compiled-in stock content wholesale rather than merging with it.
const (
	BuildingsFile = "buildings.json"
	JobsFile      = "jobs.json"
	EffectsFile   = "effects.json"

	BuildingsSchema = "configs/schemas/buildings.schema.json"
	JobsSchema      = "configs/schemas/jobs.schema.json"
	EffectsSchema   = "configs/schemas/effects.schema.json"
)

// ContentPack is custom settlement content loaded from disk.
type ContentPack struct {
	Buildings *Buildings
	Jobs      []domain.JobDefinition
	Effects   []domain.EffectTemplate
}

// LoadContentPack reads and validates a content directory. Schema validation
// runs first so a malformed pack fails with a field-level message instead of
// a registration error deep in a service.
func LoadContentPack(dir string, sv validation.SchemaValidator) (*ContentPack, error) {
	var buildingDefs []domain.BuildingDefinition
	if err := loadValidated(filepath.Join(dir, BuildingsFile), BuildingsSchema, sv, &buildingDefs); err != nil {
		return nil, err
	}

	var jobDefs []domain.JobDefinition
	if err := loadValidated(filepath.Join(dir, JobsFile), JobsSchema, sv, &jobDefs); err != nil {
		return nil, err
	}

	var effectDefs []domain.EffectTemplate
	if err := loadValidated(filepath.Join(dir, EffectsFile), EffectsSchema, sv, &effectDefs); err != nil {
		return nil, err
	}

	buildings := NewBuildings()
	for _, def := range buildingDefs {
		if err := buildings.Register(def); err != nil {
			return nil, fmt.Errorf("content pack %s: %w", dir, err)
		}
	}

	// Job and effect registration treats duplicate keys as programmer error,
	// so packs must be checked here where a bad file is still recoverable.
	jobKeys := make(map[string]bool, len(jobDefs))
	for _, def := range jobDefs {
		if jobKeys[def.Key] {
			return nil, fmt.Errorf("%w: content pack %s: duplicate job %q", domain.ErrInvalidInput, dir, def.Key)
		}
		jobKeys[def.Key] = true
	}
	effectKeys := make(map[string]bool, len(effectDefs))
	for _, def := range effectDefs {
		if effectKeys[def.Key] {
			return nil, fmt.Errorf("%w: content pack %s: duplicate effect %q", domain.ErrInvalidInput, dir, def.Key)
		}
		effectKeys[def.Key] = true
	}

	return &ContentPack{
		Buildings: buildings,
		Jobs:      jobDefs,
		Effects:   effectDefs,
	}, nil
}

// loadValidated validates a JSON file against its schema, then decodes it.
func loadValidated(path, schemaPath string, sv validation.SchemaValidator, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read content file %s: %w", path, err)
	}

	if err := sv.ValidateBytes(data, schemaPath); err != nil {
		return fmt.Errorf("content file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode content file %s: %w", path, err)
	}
	return nil
}
