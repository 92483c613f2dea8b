package entity

import (
	"testing"

	"grid-tower-defense/internal/component"
)

func TestParticlePoolRecyclesSlots(t *testing.T) {
	pool := NewParticlePool(4)
	for i := 0; i < 4; i++ {
		pool.Spawn(component.Particle{Lifetime: 1})
	}
	if pool.Live() != 4 {
		t.Fatalf("live = %d, want 4", pool.Live())
	}
	pool.Update(2)
	if pool.Live() != 0 {
		t.Fatalf("live after expiry = %d, want 0", pool.Live())
	}
	idx := pool.Spawn(component.Particle{Lifetime: 1})
	if idx < 0 || idx >= pool.Cap() {
		t.Fatalf("slot %d out of range", idx)
	}
}

func TestParticlePoolOverwritesOldestWhenFull(t *testing.T) {
	pool := NewParticlePool(3)
	first := pool.Spawn(component.Particle{Lifetime: 5, Value: 1})
	pool.Spawn(component.Particle{Lifetime: 5, Value: 2})
	pool.Spawn(component.Particle{Lifetime: 5, Value: 3})
	got := pool.Spawn(component.Particle{Lifetime: 5, Value: 4})
	if got != first {
		t.Fatalf("expected oldest slot %d to be reused, got %d", first, got)
	}
	if pool.Live() != 3 {
		t.Fatalf("live = %d, want 3", pool.Live())
	}
	values := map[int]bool{}
	pool.Each(func(p component.Particle) { values[p.Value] = true })
	if values[1] || !values[4] {
		t.Fatalf("unexpected live values %v", values)
	}
}

func TestParticlePoolStress(t *testing.T) {
	pool := NewParticlePool(1024)
	for tick := 0; tick < 100; tick++ {
		for i := 0; i < 200; i++ {
			pool.Spawn(component.Particle{Lifetime: 0.5, VX: 1})
		}
		pool.Update(0.1)
		if pool.Live() > pool.Cap() {
			t.Fatalf("live %d exceeds capacity %d", pool.Live(), pool.Cap())
		}
	}
}

func TestParticleMovesWhileAlive(t *testing.T) {
	pool := NewParticlePool(2)
	pool.Spawn(component.Particle{Lifetime: 1, VY: -2})
	pool.Update(0.25)
	pool.Each(func(p component.Particle) {
		if p.Y != -0.5 {
			t.Fatalf("y = %v, want -0.5", p.Y)
		}
	})
}
