// internal/component/projectile.go
package component

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/types"
)

// Projectile is a homing shot. It references its target by id only, so a
// target that dies simply disappears from the store.
type Projectile struct {
	SourceID     types.EntityID
	TargetID     types.EntityID
	Speed        float64 // cells per simulated second
	Damage       int
	Effect       defs.HitEffect
	SlowFactor   float64
	SlowDuration float64
}
