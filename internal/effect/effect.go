// internal/effect/effect.go
package effect

import "fmt"

// EffectType is the category a power-up modifies.
type EffectType string

const (
	Damage    EffectType = "damage"
	FireRate  EffectType = "fire_rate"
	Range     EffectType = "range"
	RangeFlat EffectType = "range_flat"
	Reward    EffectType = "reward"
	Money     EffectType = "money"
	Lives     EffectType = "lives"
)

// EffectTypes lists every effect type in a stable order.
var EffectTypes = []EffectType{Damage, FireRate, Range, RangeFlat, Reward, Money, Lives}

// Valid reports whether t is a known effect type.
func (t EffectType) Valid() bool {
	switch t {
	case Damage, FireRate, Range, RangeFlat, Reward, Money, Lives:
		return true
	}
	return false
}

// IsGrant reports whether the effect is a one-off resource grant applied at
// activation rather than a modifier read by combat.
func (t EffectType) IsGrant() bool {
	switch t {
	case Money, Lives:
		return true
	case Damage, FireRate, Range, RangeFlat, Reward:
		return false
	}
	panic(fmt.Sprintf("effect: unknown effect type %q", string(t)))
}

// Stacking is the rule for combining several active entries of one type.
type Stacking string

const (
	Additive       Stacking = "additive"
	Multiplicative Stacking = "multiplicative"
	Replace        Stacking = "replace"
)

// Valid reports whether s is a known stacking policy.
func (s Stacking) Valid() bool {
	switch s {
	case Additive, Multiplicative, Replace:
		return true
	}
	return false
}

// DurationKind says how long a power-up stays active.
type DurationKind string

const (
	Waves     DurationKind = "waves"
	Permanent DurationKind = "permanent"
	Immediate DurationKind = "immediate"
)

// Valid reports whether k is a known duration kind.
func (k DurationKind) Valid() bool {
	switch k {
	case Waves, Permanent, Immediate:
		return true
	}
	return false
}

// Duration is a wave count, permanent, or immediate.
type Duration struct {
	Kind  DurationKind `json:"kind" msgpack:"kind" jsonschema:"enum=waves,enum=permanent,enum=immediate"`
	Waves int          `json:"waves,omitempty" msgpack:"waves,omitempty"`
}

// Effect is the numeric payload of a power-up. Percentage types use
// fractions: 0.2 means +20%.
type Effect struct {
	Type  EffectType `json:"type" msgpack:"type"`
	Value float64    `json:"value" msgpack:"value"`
}

// PowerUp is one activated wave-level modifier.
type PowerUp struct {
	ID             uint64   `json:"id" msgpack:"id"`
	DefID          string   `json:"defId" msgpack:"defId"`
	Name           string   `json:"name" msgpack:"name"`
	Effect         Effect   `json:"effect" msgpack:"effect"`
	Duration       Duration `json:"duration" msgpack:"duration"`
	Stacking       Stacking `json:"stacking" msgpack:"stacking"`
	WavesRemaining int      `json:"wavesRemaining" msgpack:"wavesRemaining"`
	Seq            uint64   `json:"seq" msgpack:"seq"`
}

// Expired reports whether a wave-limited power-up has run out.
func (p PowerUp) Expired() bool {
	switch p.Duration.Kind {
	case Waves:
		return p.WavesRemaining <= 0
	case Permanent:
		return false
	case Immediate:
		return true
	}
	panic(fmt.Sprintf("effect: unknown duration kind %q", string(p.Duration.Kind)))
}
