// internal/system/projectile.go
package system

import (
	"fmt"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/types"
)

// ProjectileSystem moves homing projectiles and resolves their hits.
type ProjectileSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewProjectileSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, eventDispatcher: eventDispatcher}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		pos, hasPos := s.ecs.Positions[id]
		if !hasPos {
			s.ecs.RemoveProjectile(id)
			continue
		}

		targetPos, alive := s.ecs.Positions[proj.TargetID]
		if _, isEnemy := s.ecs.Enemies[proj.TargetID]; !alive || !isEnemy {
			// Target died or leaked: the shot fizzles.
			s.ecs.RemoveProjectile(id)
			continue
		}

		step := proj.Speed * deltaTime
		dist := distance(*pos, *targetPos)
		if dist <= step+config.HitEpsilon {
			*pos = *targetPos
			s.resolveHit(proj, *targetPos)
			s.ecs.RemoveProjectile(id)
			continue
		}
		pos.X += (targetPos.X - pos.X) / dist * step
		pos.Y += (targetPos.Y - pos.Y) / dist * step
	}
}

func (s *ProjectileSystem) resolveHit(proj *component.Projectile, at component.Position) {
	switch proj.Effect {
	case defs.HitNone:
		s.hit(proj.TargetID, proj.Damage, false)
	case defs.HitPierce:
		s.hit(proj.TargetID, proj.Damage, true)
	case defs.HitSlow:
		ApplySlow(s.ecs, proj.TargetID, proj.SlowFactor, proj.SlowDuration)
		s.hit(proj.TargetID, proj.Damage, false)
	case defs.HitArea:
		victims := []types.EntityID{proj.TargetID}
		for _, id := range s.ecs.EnemyIDs() {
			if id == proj.TargetID {
				continue
			}
			if pos, ok := s.ecs.Positions[id]; ok && distance(at, *pos) <= config.BlastRadius {
				victims = append(victims, id)
			}
		}
		for _, id := range victims {
			s.hit(id, proj.Damage, false)
		}
	default:
		panic(fmt.Sprintf("system: unknown hit effect %q", string(proj.Effect)))
	}
}

func (s *ProjectileSystem) hit(id types.EntityID, damage int, ignoreArmor bool) {
	if _, ok := s.ecs.Enemies[id]; !ok {
		return
	}
	dealt := ApplyDamage(s.ecs, id, damage, ignoreArmor)
	pos := *s.ecs.Positions[id]
	if dealt > 0 {
		SpawnDamageNumber(s.ecs, pos, dealt)
	}
	if health := s.ecs.Healths[id]; health.Value <= 0 {
		s.killEnemy(id, pos)
	}
}

func (s *ProjectileSystem) killEnemy(id types.EntityID, pos component.Position) {
	enemy := s.ecs.Enemies[id]
	SpawnDeathBurst(s.ecs, pos)
	s.ecs.RemoveEnemy(id)
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.EnemyKilled,
		Data: event.EnemyData{ID: id, Type: enemy.Type, Reward: enemy.Reward},
	})
}
