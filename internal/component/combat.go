// internal/component/combat.go
package component

import "grid-tower-defense/internal/defs"

// Health never drops below zero.
type Health struct {
	Value int
	Max   int
}

// Combat drives a tower's attack.
type Combat struct {
	Damage       int     // base damage at level 1
	FireInterval float64 // simulated seconds between shots
	Cooldown     float64 // simulated seconds until the next shot
	Range        float64 // radius in cells
	HitEffect    defs.HitEffect
	SlowFactor   float64
	SlowDuration float64
}
