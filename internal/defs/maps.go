// internal/defs/maps.go
package defs

import "grid-tower-defense/pkg/grid"

// MapDefinition describes a playable board.
type MapDefinition struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Rows          []string `json:"rows" jsonschema:"description=. buildable # blocked S start G goal"`
	StartingMoney int      `json:"starting_money"`
	StartingLives int      `json:"starting_lives"`
	MaxWaves      int      `json:"max_waves"`
}

// Grid parses the board rows.
func (m MapDefinition) Grid() (*grid.Grid, error) {
	return grid.Parse(m.Rows)
}
