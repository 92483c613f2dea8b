// internal/defs/types.go
package defs

import "fmt"

// TowerType is the closed set of buildable towers.
type TowerType string

const (
	TowerBasic  TowerType = "basic"
	TowerCannon TowerType = "cannon"
	TowerFrost  TowerType = "frost"
	TowerSniper TowerType = "sniper"
)

// TowerTypes lists every tower type in menu order.
var TowerTypes = []TowerType{TowerBasic, TowerCannon, TowerFrost, TowerSniper}

// Valid reports whether t is a known tower type.
func (t TowerType) Valid() bool {
	switch t {
	case TowerBasic, TowerCannon, TowerFrost, TowerSniper:
		return true
	}
	return false
}

// EnemyType is the closed set of enemies a wave can contain.
type EnemyType string

const (
	EnemyGrunt  EnemyType = "grunt"
	EnemyRunner EnemyType = "runner"
	EnemyTank   EnemyType = "tank"
	EnemyBoss   EnemyType = "boss"
)

// EnemyTypes lists every enemy type from weakest to strongest.
var EnemyTypes = []EnemyType{EnemyGrunt, EnemyRunner, EnemyTank, EnemyBoss}

// Valid reports whether t is a known enemy type.
func (t EnemyType) Valid() bool {
	switch t {
	case EnemyGrunt, EnemyRunner, EnemyTank, EnemyBoss:
		return true
	}
	return false
}

// HitEffect is the on-hit behaviour a projectile carries.
type HitEffect string

const (
	HitNone   HitEffect = "none"
	HitArea   HitEffect = "area"
	HitSlow   HitEffect = "slow"
	HitPierce HitEffect = "pierce"
)

// Valid reports whether h is a known hit effect.
func (h HitEffect) Valid() bool {
	switch h {
	case HitNone, HitArea, HitSlow, HitPierce:
		return true
	}
	return false
}

// Rarity weights power-up offers.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Weight is the relative chance of a rarity appearing in an offer.
func (r Rarity) Weight() int {
	switch r {
	case RarityCommon:
		return 60
	case RarityRare:
		return 25
	case RarityEpic:
		return 10
	case RarityLegendary:
		return 5
	}
	panic(fmt.Sprintf("defs: unknown rarity %q", string(r)))
}

// Valid reports whether r is a known rarity.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}
