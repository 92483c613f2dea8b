// internal/system/utils.go
package system

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/effect"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/types"
)

// Modifiers is the read side of the active power-up set.
type Modifiers interface {
	Aggregate(t effect.EffectType) float64
	Multiplier(t effect.EffectType) float64
}

// ApplyDamage deals damage to an entity. Armor is subtracted unless
// ignoreArmor is set; a positive hit always deals at least 1. Health is
// clamped at zero. It returns the damage actually dealt.
func ApplyDamage(ecs *entity.ECS, entityID types.EntityID, damage int, ignoreArmor bool) int {
	health, hasHealth := ecs.Healths[entityID]
	if !hasHealth || damage <= 0 {
		return 0
	}

	finalDamage := damage
	if enemy, isEnemy := ecs.Enemies[entityID]; isEnemy && !ignoreArmor {
		finalDamage -= enemy.Armor
	}
	if finalDamage < 1 {
		finalDamage = 1
	}
	if finalDamage > health.Value {
		finalDamage = health.Value
	}

	health.Value -= finalDamage
	if health.Value < 0 {
		health.Value = 0
	}
	return finalDamage
}

func distance(a, b component.Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RemainingDistance is how far an enemy still has to walk, in cells.
func RemainingDistance(pos component.Position, path *component.Path) float64 {
	if path == nil || path.Done() {
		return 0
	}
	next := component.CellCenter(path.Cells[path.Index])
	return distance(pos, next) + float64(len(path.Cells)-1-path.Index)
}
