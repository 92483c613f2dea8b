// internal/component/tower.go
package component

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/pkg/grid"
)

// Tower is a placed defence. One tower per cell.
type Tower struct {
	Type     defs.TowerType
	Cell     grid.Pos
	Level    int // 1..config.MaxTowerLevel
	Invested int // money spent on placement and upgrades, basis for refunds
}
