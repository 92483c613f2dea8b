// internal/entity/ecs.go
package entity

import (
	"slices"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/pkg/grid"
)

// ECS is the single mutable store of a session. Systems and commands read and
// write it only between or inside ticks, never concurrently.
type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Paths       map[types.EntityID]*component.Path
	Healths     map[types.EntityID]*component.Health
	Towers      map[types.EntityID]*component.Tower
	Combats     map[types.EntityID]*component.Combat
	Enemies     map[types.EntityID]*component.Enemy
	Projectiles map[types.EntityID]*component.Projectile
	SlowEffects map[types.EntityID]*component.SlowEffect
	TowerAt     map[grid.Pos]types.EntityID
	Particles   *ParticlePool
	Wave        *component.Wave
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Paths:       make(map[types.EntityID]*component.Path),
		Healths:     make(map[types.EntityID]*component.Health),
		Towers:      make(map[types.EntityID]*component.Tower),
		Combats:     make(map[types.EntityID]*component.Combat),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		SlowEffects: make(map[types.EntityID]*component.SlowEffect),
		TowerAt:     make(map[grid.Pos]types.EntityID),
		Particles:   NewParticlePool(config.MaxParticles),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Reserve makes sure future ids are above id, used when restoring snapshots.
func (ecs *ECS) Reserve(id types.EntityID) {
	if id >= ecs.NextID {
		ecs.NextID = id + 1
	}
}

// RemoveEnemy deletes every component of an enemy.
func (ecs *ECS) RemoveEnemy(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Enemies, id)
	delete(ecs.SlowEffects, id)
}

// RemoveProjectile deletes a projectile.
func (ecs *ECS) RemoveProjectile(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Projectiles, id)
}

// RemoveTower deletes a tower and frees its cell.
func (ecs *ECS) RemoveTower(id types.EntityID) {
	if tower, ok := ecs.Towers[id]; ok {
		delete(ecs.TowerAt, tower.Cell)
	}
	delete(ecs.Positions, id)
	delete(ecs.Towers, id)
	delete(ecs.Combats, id)
}

// ClearEnemies drops every enemy and projectile, used on terminal states.
func (ecs *ECS) ClearEnemies() {
	for id := range ecs.Enemies {
		ecs.RemoveEnemy(id)
	}
	for id := range ecs.Projectiles {
		ecs.RemoveProjectile(id)
	}
}

// BlockedCells returns the cells occupied by towers.
func (ecs *ECS) BlockedCells() map[grid.Pos]bool {
	blocked := make(map[grid.Pos]bool, len(ecs.TowerAt))
	for cell := range ecs.TowerAt {
		blocked[cell] = true
	}
	return blocked
}

// EnemyIDs returns live enemy ids in ascending order so every pass over
// them is reproducible.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	return sortedKeys(ecs.Enemies)
}

// TowerIDs returns tower ids in ascending order.
func (ecs *ECS) TowerIDs() []types.EntityID {
	return sortedKeys(ecs.Towers)
}

// ProjectileIDs returns projectile ids in ascending order.
func (ecs *ECS) ProjectileIDs() []types.EntityID {
	return sortedKeys(ecs.Projectiles)
}

func sortedKeys[V any](m map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
