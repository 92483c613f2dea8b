// internal/defs/powerups.go
package defs

import "grid-tower-defense/internal/effect"

// PowerUpDefinition is one entry of the offer pool.
type PowerUpDefinition struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Rarity      Rarity          `json:"rarity" jsonschema:"enum=common,enum=rare,enum=epic,enum=legendary"`
	Effect      effect.Effect   `json:"effect"`
	Duration    effect.Duration `json:"duration"`
	Stacking    effect.Stacking `json:"stacking" jsonschema:"enum=additive,enum=multiplicative,enum=replace"`
}

// Instantiate builds an inactive power-up from the definition.
func (d PowerUpDefinition) Instantiate() effect.PowerUp {
	p := effect.PowerUp{
		DefID:    d.ID,
		Name:     d.Name,
		Effect:   d.Effect,
		Duration: d.Duration,
		Stacking: d.Stacking,
	}
	if d.Duration.Kind == effect.Waves {
		p.WavesRemaining = d.Duration.Waves
	}
	return p
}
