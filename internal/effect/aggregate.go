// internal/effect/aggregate.go
package effect

import "fmt"

// Aggregate combines every active power-up of type t into one contribution.
//
//   - additive entries are summed;
//   - multiplicative entries combine as Π(1+v) − 1, so two +20% give +44%;
//   - among replace entries only the one with the highest Seq counts.
//
// When several policies are present for the same type the three group
// results are added: R + A + (Π(1+m) − 1). Replace therefore overrides only
// other replace entries.
func Aggregate(active []PowerUp, t EffectType) float64 {
	var (
		additive    float64
		product     = 1.0
		hasReplace  bool
		replaceSeq  uint64
		replaceWith float64
	)
	for _, p := range active {
		if p.Effect.Type != t {
			continue
		}
		switch p.Stacking {
		case Additive:
			additive += p.Effect.Value
		case Multiplicative:
			product *= 1 + p.Effect.Value
		case Replace:
			if !hasReplace || p.Seq >= replaceSeq {
				hasReplace = true
				replaceSeq = p.Seq
				replaceWith = p.Effect.Value
			}
		default:
			panic(fmt.Sprintf("effect: unknown stacking %q", string(p.Stacking)))
		}
	}
	return replaceWith + additive + (product - 1)
}

// Multiplier returns 1 + Aggregate, the factor combat applies to a base stat.
func Multiplier(active []PowerUp, t EffectType) float64 {
	return 1 + Aggregate(active, t)
}

// Cache memoizes aggregates for one version of an active set.
type Cache struct {
	version uint64
	valid   bool
	values  map[EffectType]float64
}

// Get returns the aggregate for t, recomputing when version differs from the
// version the cached values were computed for.
func (c *Cache) Get(version uint64, active []PowerUp, t EffectType) float64 {
	if !c.valid || c.version != version {
		c.version = version
		c.valid = true
		if c.values == nil {
			c.values = make(map[EffectType]float64, len(EffectTypes))
		} else {
			clear(c.values)
		}
	}
	if v, ok := c.values[t]; ok {
		return v
	}
	v := Aggregate(active, t)
	c.values[t] = v
	return v
}
