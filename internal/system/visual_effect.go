// internal/system/visual_effect.go
package system

import (
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/entity"
)

const deathBurstParticles = 6

// VisualEffectSystem ages pooled particles. It keeps running after the game
// ends so bursts finish playing.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

func (s *VisualEffectSystem) Update(deltaTime float64) {
	s.ecs.Particles.Update(deltaTime)
}

// SpawnDeathBurst emits a ring of particles at pos.
func SpawnDeathBurst(ecs *entity.ECS, pos component.Position) {
	for i := 0; i < deathBurstParticles; i++ {
		angle := 2 * math.Pi * float64(i) / deathBurstParticles
		ecs.Particles.Spawn(component.Particle{
			Kind:     component.ParticleDeathBurst,
			X:        pos.X,
			Y:        pos.Y,
			VX:       math.Cos(angle),
			VY:       math.Sin(angle),
			Lifetime: config.DeathParticleTTL,
		})
	}
}

// SpawnDamageNumber emits a rising number above pos.
func SpawnDamageNumber(ecs *entity.ECS, pos component.Position, value int) {
	ecs.Particles.Spawn(component.Particle{
		Kind:     component.ParticleDamageNumber,
		X:        pos.X,
		Y:        pos.Y,
		VY:       -config.DamageNumberRise,
		Lifetime: config.DamageNumberTTL,
		Value:    value,
	})
}
