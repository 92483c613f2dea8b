// internal/system/status_effect.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/types"
)

// StatusEffectSystem ages debuffs such as slows.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// Update decrements every timer and drops the expired effects.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, effect := range s.ecs.SlowEffects {
		effect.Timer -= deltaTime
		if effect.Timer <= 0 {
			delete(s.ecs.SlowEffects, id)
		}
	}
}

// ApplySlow puts a slow on an enemy. The strongest slow wins; an equally
// strong one refreshes the timer.
func ApplySlow(ecs *entity.ECS, id types.EntityID, factor, duration float64) {
	if factor <= 0 || factor >= 1 || duration <= 0 {
		return
	}
	current, ok := ecs.SlowEffects[id]
	switch {
	case !ok || factor < current.SlowFactor:
		ecs.SlowEffects[id] = &component.SlowEffect{Timer: duration, SlowFactor: factor}
	case factor == current.SlowFactor && duration > current.Timer:
		current.Timer = duration
	}
}

// SpeedFactor returns the speed multiplier from active slows.
func SpeedFactor(ecs *entity.ECS, id types.EntityID) float64 {
	if slow, ok := ecs.SlowEffects[id]; ok {
		return slow.SlowFactor
	}
	return 1
}
