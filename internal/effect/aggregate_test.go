package effect

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func entries(t EffectType, s Stacking, values ...float64) []PowerUp {
	out := make([]PowerUp, 0, len(values))
	for i, v := range values {
		out = append(out, PowerUp{
			ID:       uint64(i + 1),
			Effect:   Effect{Type: t, Value: v},
			Stacking: s,
			Duration: Duration{Kind: Permanent},
			Seq:      uint64(i + 1),
		})
	}
	return out
}

func TestAggregateSinglePolicies(t *testing.T) {
	cases := []struct {
		name   string
		active []PowerUp
		want   float64
	}{
		{"additive", entries(Damage, Additive, 1, 2, 3), 6},
		{"multiplicative", entries(Damage, Multiplicative, 0.2, 0.2), 0.44},
		{"replace latest wins", entries(Damage, Replace, 0.5, 0.1, 0.3), 0.3},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		if got := Aggregate(tc.active, Damage); !almostEqual(got, tc.want) {
			t.Errorf("%s: Aggregate = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAggregateReplaceUsesSeqNotSliceOrder(t *testing.T) {
	active := entries(Range, Replace, 0.5, 0.1)
	active[0].Seq = 10
	if got := Aggregate(active, Range); !almostEqual(got, 0.5) {
		t.Fatalf("expected most recently activated value 0.5, got %v", got)
	}
}

func TestAggregateIgnoresOtherTypes(t *testing.T) {
	active := append(entries(Damage, Additive, 0.5), entries(FireRate, Additive, 2)...)
	if got := Aggregate(active, Damage); !almostEqual(got, 0.5) {
		t.Fatalf("damage aggregate = %v, want 0.5", got)
	}
	if got := Aggregate(active, Reward); got != 0 {
		t.Fatalf("reward aggregate = %v, want 0", got)
	}
}

func TestAggregateMixedPolicies(t *testing.T) {
	active := []PowerUp{
		{Effect: Effect{Type: Damage, Value: 0.1}, Stacking: Additive, Seq: 1},
		{Effect: Effect{Type: Damage, Value: 0.2}, Stacking: Multiplicative, Seq: 2},
		{Effect: Effect{Type: Damage, Value: 0.2}, Stacking: Multiplicative, Seq: 3},
		{Effect: Effect{Type: Damage, Value: 0.9}, Stacking: Replace, Seq: 4},
		{Effect: Effect{Type: Damage, Value: 0.3}, Stacking: Replace, Seq: 5},
	}
	// replace 0.3 + additive 0.1 + multiplicative 0.44
	if got := Aggregate(active, Damage); !almostEqual(got, 0.84) {
		t.Fatalf("mixed aggregate = %v, want 0.84", got)
	}
	if got := Multiplier(active, Damage); !almostEqual(got, 1.84) {
		t.Fatalf("multiplier = %v, want 1.84", got)
	}
}

func TestCacheRecomputesOnVersionChange(t *testing.T) {
	var c Cache
	active := entries(Damage, Additive, 1)
	if got := c.Get(1, active, Damage); got != 1 {
		t.Fatalf("first get = %v", got)
	}
	active = entries(Damage, Additive, 1, 2)
	if got := c.Get(1, active, Damage); got != 1 {
		t.Fatalf("same version must reuse cached value, got %v", got)
	}
	if got := c.Get(2, active, Damage); got != 3 {
		t.Fatalf("new version must recompute, got %v", got)
	}
}
