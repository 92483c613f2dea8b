// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     EnemyType `json:"id" jsonschema:"enum=grunt,enum=runner,enum=tank,enum=boss"`
	Name   string    `json:"name"`
	Health int       `json:"health" jsonschema:"minimum=1"`
	Speed  float64   `json:"speed" jsonschema:"description=Cells per simulated second"`
	Armor  int       `json:"armor"`
	Reward int       `json:"reward"`
	// Visuals drives the front end only.
	Visuals Visuals `json:"visuals"`
}
