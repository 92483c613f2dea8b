// internal/defs/loader.go
package defs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"grid-tower-defense/internal/effect"
)

//go:embed data/catalog.json
var defaultCatalogJSON []byte

// Catalog is the full set of static definitions a session runs on.
type Catalog struct {
	Towers   []TowerDefinition   `json:"towers"`
	Enemies  []EnemyDefinition   `json:"enemies"`
	PowerUps []PowerUpDefinition `json:"power_ups"`
	Maps     []MapDefinition     `json:"maps"`

	towerIndex   map[TowerType]TowerDefinition
	enemyIndex   map[EnemyType]EnemyDefinition
	powerUpIndex map[string]PowerUpDefinition
	mapIndex     map[string]MapDefinition
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("defs: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := ParseCatalog(file)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d tower, %d enemy, %d power-up and %d map definitions from %s",
		len(c.Towers), len(c.Enemies), len(c.PowerUps), len(c.Maps), path)
	return c, nil
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	var errs []error

	c.towerIndex = make(map[TowerType]TowerDefinition, len(c.Towers))
	for _, def := range c.Towers {
		if !def.ID.Valid() {
			errs = append(errs, fmt.Errorf("tower %q: unknown type", def.ID))
			continue
		}
		if !def.HitEffect.Valid() {
			errs = append(errs, fmt.Errorf("tower %q: unknown hit effect %q", def.ID, def.HitEffect))
		}
		if def.FireInterval <= 0 || def.Range <= 0 || def.Cost <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: cost, range and fire interval must be positive", def.ID))
		}
		c.towerIndex[def.ID] = def
	}
	for _, t := range TowerTypes {
		if _, ok := c.towerIndex[t]; !ok {
			errs = append(errs, fmt.Errorf("tower %q: missing definition", t))
		}
	}

	c.enemyIndex = make(map[EnemyType]EnemyDefinition, len(c.Enemies))
	for _, def := range c.Enemies {
		if !def.ID.Valid() {
			errs = append(errs, fmt.Errorf("enemy %q: unknown type", def.ID))
			continue
		}
		if def.Health <= 0 || def.Speed < 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health must be positive and speed non-negative", def.ID))
		}
		c.enemyIndex[def.ID] = def
	}
	for _, t := range EnemyTypes {
		if _, ok := c.enemyIndex[t]; !ok {
			errs = append(errs, fmt.Errorf("enemy %q: missing definition", t))
		}
	}

	c.powerUpIndex = make(map[string]PowerUpDefinition, len(c.PowerUps))
	for _, def := range c.PowerUps {
		if def.ID == "" {
			errs = append(errs, errors.New("power-up with empty id"))
			continue
		}
		if _, dup := c.powerUpIndex[def.ID]; dup {
			errs = append(errs, fmt.Errorf("power-up %q: duplicate id", def.ID))
		}
		if !def.Rarity.Valid() || !def.Effect.Type.Valid() || !def.Stacking.Valid() || !def.Duration.Kind.Valid() {
			errs = append(errs, fmt.Errorf("power-up %q: unknown rarity, effect, stacking or duration", def.ID))
			continue
		}
		if def.Duration.Kind == effect.Waves && def.Duration.Waves <= 0 {
			errs = append(errs, fmt.Errorf("power-up %q: wave duration must be positive", def.ID))
		}
		if def.Effect.Type.IsGrant() && def.Duration.Kind != effect.Immediate {
			errs = append(errs, fmt.Errorf("power-up %q: %s grants must be immediate", def.ID, def.Effect.Type))
		}
		c.powerUpIndex[def.ID] = def
	}

	c.mapIndex = make(map[string]MapDefinition, len(c.Maps))
	for _, def := range c.Maps {
		if _, err := def.Grid(); err != nil {
			errs = append(errs, fmt.Errorf("map %q: %w", def.ID, err))
			continue
		}
		if def.MaxWaves <= 0 || def.StartingLives <= 0 {
			errs = append(errs, fmt.Errorf("map %q: max waves and starting lives must be positive", def.ID))
		}
		c.mapIndex[def.ID] = def
	}
	if len(c.mapIndex) == 0 {
		errs = append(errs, errors.New("catalog has no maps"))
	}

	return errors.Join(errs...)
}

// Tower looks up a tower definition.
func (c *Catalog) Tower(t TowerType) (TowerDefinition, bool) {
	def, ok := c.towerIndex[t]
	return def, ok
}

// Enemy looks up an enemy definition.
func (c *Catalog) Enemy(t EnemyType) (EnemyDefinition, bool) {
	def, ok := c.enemyIndex[t]
	return def, ok
}

// PowerUp looks up a power-up definition.
func (c *Catalog) PowerUp(id string) (PowerUpDefinition, bool) {
	def, ok := c.powerUpIndex[id]
	return def, ok
}

// Map looks up a map definition.
func (c *Catalog) Map(id string) (MapDefinition, bool) {
	def, ok := c.mapIndex[id]
	return def, ok
}
