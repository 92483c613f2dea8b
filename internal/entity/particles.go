// internal/entity/particles.go
package entity

import "grid-tower-defense/internal/component"

// ParticlePool is a fixed-capacity slot array for ephemeral effects. Slots are
// recycled instead of reallocated; when every slot is live the oldest one is
// overwritten.
type ParticlePool struct {
	slots []component.Particle
	free  []int
	seq   uint64
	live  int
}

// NewParticlePool allocates capacity slots up front.
func NewParticlePool(capacity int) *ParticlePool {
	if capacity <= 0 {
		capacity = 1
	}
	p := &ParticlePool{
		slots: make([]component.Particle, capacity),
		free:  make([]int, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Spawn claims a slot and returns its index.
func (p *ParticlePool) Spawn(part component.Particle) int {
	var idx int
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
		p.live++
	} else {
		idx = p.oldest()
	}
	p.seq++
	part.Active = true
	part.Seq = p.seq
	if part.Remaining <= 0 {
		part.Remaining = part.Lifetime
	}
	p.slots[idx] = part
	return idx
}

// Update ages every live particle by dt and frees the expired ones.
func (p *ParticlePool) Update(dt float64) {
	for i := range p.slots {
		part := &p.slots[i]
		if !part.Active {
			continue
		}
		part.Remaining -= dt
		if part.Remaining <= 0 {
			part.Active = false
			p.free = append(p.free, i)
			p.live--
			continue
		}
		part.X += part.VX * dt
		part.Y += part.VY * dt
	}
}

// Each calls fn for every live particle.
func (p *ParticlePool) Each(fn func(component.Particle)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(p.slots[i])
		}
	}
}

// Live returns the number of active particles.
func (p *ParticlePool) Live() int {
	return p.live
}

// Cap returns the number of slots.
func (p *ParticlePool) Cap() int {
	return len(p.slots)
}

// Reset frees every slot.
func (p *ParticlePool) Reset() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.slots[i].Active = false
		p.free = append(p.free, i)
	}
	p.live = 0
}

func (p *ParticlePool) oldest() int {
	oldest := 0
	for i := range p.slots {
		if p.slots[i].Seq < p.slots[oldest].Seq {
			oldest = i
		}
	}
	return oldest
}
