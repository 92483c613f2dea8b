// internal/component/visual.go
package component

// ParticleKind tells the front end how to draw a particle.
type ParticleKind uint8

const (
	ParticleDeathBurst ParticleKind = iota
	ParticleDamageNumber
)

// Particle is a pooled, self-expiring visual effect. Inactive slots are free.
type Particle struct {
	Active    bool
	Kind      ParticleKind
	X, Y      float64
	VX, VY    float64
	Lifetime  float64
	Remaining float64
	Value     int // damage shown by damage numbers
	Seq       uint64
}
