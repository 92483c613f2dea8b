// internal/component/enemy.go
package component

import "grid-tower-defense/internal/defs"

// Enemy is a mobile agent walking towards a goal.
type Enemy struct {
	Type   defs.EnemyType
	Armor  int
	Reward int
	Wave   int // wave number that spawned it
}
