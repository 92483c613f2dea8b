// internal/system/combat.go
package system

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/effect"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/types"
)

// minFireRateMultiplier keeps a heavily debuffed tower from dividing by zero.
const minFireRateMultiplier = 0.05

// CombatSystem runs tower cooldowns, picks targets and fires projectiles.
type CombatSystem struct {
	ecs             *entity.ECS
	modifiers       Modifiers
	eventDispatcher *event.Dispatcher
}

func NewCombatSystem(ecs *entity.ECS, modifiers Modifiers, eventDispatcher *event.Dispatcher) *CombatSystem {
	return &CombatSystem{ecs: ecs, modifiers: modifiers, eventDispatcher: eventDispatcher}
}

func (s *CombatSystem) Update(deltaTime float64) {
	rangeMult := s.modifiers.Multiplier(effect.Range)
	rangeFlat := s.modifiers.Aggregate(effect.RangeFlat)
	damageMult := s.modifiers.Multiplier(effect.Damage)
	fireRateMult := math.Max(minFireRateMultiplier, s.modifiers.Multiplier(effect.FireRate))

	for _, id := range s.ecs.TowerIDs() {
		combat, ok := s.ecs.Combats[id]
		if !ok {
			continue
		}
		tower := s.ecs.Towers[id]

		if combat.Cooldown <= config.CooldownEpsilon {
			effectiveRange := EffectiveRange(combat.Range, rangeMult, rangeFlat)
			targetID := s.findTarget(component.CellCenter(tower.Cell), effectiveRange)
			if targetID == 0 {
				// Idle towers do not bank shots.
				combat.Cooldown = 0
				continue
			}
			damage := int(math.Round(float64(combat.Damage*tower.Level) * damageMult))
			s.createProjectile(id, targetID, combat, damage)
			combat.Cooldown += combat.FireInterval / fireRateMult
		}
		combat.Cooldown -= deltaTime
	}
}

// EffectiveRange combines the base range with the range modifiers.
func EffectiveRange(base, multiplier, flat float64) float64 {
	return math.Max(0, base*multiplier+flat)
}

// findTarget returns the enemy in range that is furthest along its path,
// that is the one with the least distance left. Ties go to the lowest id.
func (s *CombatSystem) findTarget(origin component.Position, radius float64) types.EntityID {
	var best types.EntityID
	bestRemaining := math.MaxFloat64
	for _, id := range s.ecs.EnemyIDs() {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if health, ok := s.ecs.Healths[id]; ok && health.Value <= 0 {
			continue
		}
		if distance(origin, *pos) > radius {
			continue
		}
		remaining := RemainingDistance(*pos, s.ecs.Paths[id])
		if remaining < bestRemaining {
			bestRemaining = remaining
			best = id
		}
	}
	return best
}

func (s *CombatSystem) createProjectile(towerID, enemyID types.EntityID, combat *component.Combat, damage int) {
	projID := s.ecs.NewEntity()
	origin := component.CellCenter(s.ecs.Towers[towerID].Cell)
	s.ecs.Positions[projID] = &origin
	s.ecs.Projectiles[projID] = &component.Projectile{
		SourceID:     towerID,
		TargetID:     enemyID,
		Speed:        config.ProjectileSpeed,
		Damage:       damage,
		Effect:       combat.HitEffect,
		SlowFactor:   combat.SlowFactor,
		SlowDuration: combat.SlowDuration,
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.TowerFired, Data: event.TowerData{ID: towerID}})
}
