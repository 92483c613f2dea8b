// internal/system/movement.go
package system

import (
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
)

// MovementSystem walks enemies along their paths and reports the ones that
// reach a goal.
type MovementSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{ecs: ecs, eventDispatcher: eventDispatcher}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.EnemyIDs() {
		pos, hasPos := s.ecs.Positions[id]
		path, hasPath := s.ecs.Paths[id]
		if !hasPos || !hasPath {
			continue
		}
		speed := 0.0
		if vel, ok := s.ecs.Velocities[id]; ok {
			speed = vel.Speed * SpeedFactor(s.ecs, id)
		}

		budget := speed * deltaTime
		for !path.Done() {
			target := component.CellCenter(path.Cells[path.Index])
			dist := distance(*pos, target)
			if dist <= budget {
				*pos = target
				budget -= dist
				path.Index++
				continue
			}
			if budget > 0 {
				pos.X += (target.X - pos.X) / dist * budget
				pos.Y += (target.Y - pos.Y) / dist * budget
			}
			break
		}

		if path.Done() {
			enemy := s.ecs.Enemies[id]
			s.ecs.RemoveEnemy(id)
			s.eventDispatcher.Dispatch(event.Event{
				Type: event.EnemyLeaked,
				Data: event.EnemyData{ID: id, Type: enemy.Type, Reward: enemy.Reward},
			})
		}
	}
}
