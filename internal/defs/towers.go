// internal/defs/towers.go
package defs

import "image/color"

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID           TowerType `json:"id" jsonschema:"enum=basic,enum=cannon,enum=frost,enum=sniper"`
	Name         string    `json:"name"`
	Cost         int       `json:"cost" jsonschema:"minimum=1"`
	Damage       int       `json:"damage" jsonschema:"minimum=0"`
	Range        float64   `json:"range" jsonschema:"description=Radius in cells"`
	FireInterval float64   `json:"fire_interval" jsonschema:"description=Simulated seconds between shots"`
	HitEffect    HitEffect `json:"hit_effect" jsonschema:"enum=none,enum=area,enum=slow,enum=pierce"`
	SlowFactor   float64   `json:"slow_factor,omitempty" jsonschema:"description=Speed multiplier while slowed"`
	SlowDuration float64   `json:"slow_duration,omitempty" jsonschema:"description=Seconds the slow lasts"`
	Visuals      Visuals   `json:"visuals"`
}

// UpgradeCost is the price of raising a tower from level to level+1.
func (d TowerDefinition) UpgradeCost(level int) int {
	return d.Cost * level
}

// Visuals contains parameters for rendering an entity.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
}
