// internal/economy/energy.go
package economy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"grid-tower-defense/internal/config"
)

var (
	// ErrInsufficientGold is returned when a purchase costs more than the player holds.
	ErrInsufficientGold = errors.New("insufficient gold")
	// ErrInsufficientEnergy is returned when a spend exceeds the materialized energy.
	ErrInsufficientEnergy = errors.New("insufficient energy")
	// ErrInsufficientTechPoints is returned when an upgrade costs more tech points than owned.
	ErrInsufficientTechPoints = errors.New("insufficient tech points")
	// ErrUnknownUpgrade is returned for upgrade ids the economy does not know.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrUpgradeMaxed is returned when an upgrade is already at its top level.
	ErrUpgradeMaxed = errors.New("upgrade at max level")
)

// Infinite is returned by TimeUntilNextUnit when energy never regenerates.
const Infinite = time.Duration(math.MaxInt64)

// Energy is the derived, read-only view of the energy counter at some instant.
type Energy struct {
	Energy    float64
	MaxEnergy float64
}

// Progress is the long-lived player state that outlives a session. Energy is
// the value committed at LastEnergyTimestamp; the current value is always
// derived with Materialize.
type Progress struct {
	Energy              float64
	LastEnergyTimestamp time.Time
	TechPoints          int
	Upgrades            map[string]int
	MapRatings          map[string]int
	// RecoveryPerMinute is the regeneration rate; zero means config.EnergyRecoveryPerMinute.
	RecoveryPerMinute float64
}

// NewProgress returns a fresh profile with a full energy bar committed at now.
func NewProgress(now time.Time) Progress {
	p := Progress{
		LastEnergyTimestamp: now,
		Upgrades:            make(map[string]int),
		MapRatings:          make(map[string]int),
	}
	p.Energy = p.MaxEnergy()
	return p
}

// MaxEnergyFor derives the energy cap from the capacity upgrade level.
func MaxEnergyFor(capacityLevel int) float64 {
	if capacityLevel < 0 {
		capacityLevel = 0
	}
	return config.BaseMaxEnergy + float64(capacityLevel)*config.MaxEnergyPerUpgrade
}

// MaxEnergy returns the cap for the current upgrade levels.
func (p Progress) MaxEnergy() float64 {
	return MaxEnergyFor(p.Upgrades[UpgradeEnergyCapacity])
}

func (p Progress) rate() float64 {
	if p.RecoveryPerMinute != 0 {
		return p.RecoveryPerMinute
	}
	return config.EnergyRecoveryPerMinute
}

// Materialize computes min(maxEnergy, stored + elapsedMinutes*rate) without
// changing p. A clock that went backwards counts as zero elapsed time.
func Materialize(p Progress, now time.Time) Energy {
	maxEnergy := p.MaxEnergy()
	elapsed := now.Sub(p.LastEnergyTimestamp)
	if elapsed < 0 {
		elapsed = 0
	}
	rate := math.Max(0, p.rate())
	current := math.Min(maxEnergy, p.Energy+elapsed.Minutes()*rate)
	return Energy{Energy: current, MaxEnergy: maxEnergy}
}

// TimeUntilNextUnit returns how long until the energy counter reaches its
// next whole unit: 0 when full, Infinite when regeneration is disabled.
func TimeUntilNextUnit(p Progress, now time.Time) time.Duration {
	e := Materialize(p, now)
	if e.Energy >= e.MaxEnergy {
		return 0
	}
	rate := p.rate()
	if rate <= 0 {
		return Infinite
	}
	missing := 1 - (e.Energy - math.Floor(e.Energy))
	if next := math.Floor(e.Energy) + 1; next > e.MaxEnergy {
		missing = e.MaxEnergy - e.Energy
	}
	ms := math.Ceil(missing/rate*float64(time.Minute/time.Millisecond) - 1e-6)
	return time.Duration(ms) * time.Millisecond
}

// commit folds regeneration up to now into the stored value.
func commit(p Progress, now time.Time) Progress {
	e := Materialize(p, now)
	p.Energy = e.Energy
	if now.After(p.LastEnergyTimestamp) {
		p.LastEnergyTimestamp = now
	}
	return p
}

// Purchase buys amount energy for cost gold. It returns the updated progress
// and the gold left over. The result is clamped to the cap.
func Purchase(p Progress, amount float64, cost, gold int, now time.Time) (Progress, int, error) {
	if gold < cost {
		return p, gold, fmt.Errorf("purchase %.0f energy for %d (have %d): %w", amount, cost, gold, ErrInsufficientGold)
	}
	p = commit(p, now)
	p.Energy = math.Min(p.MaxEnergy(), p.Energy+amount)
	return p, gold - cost, nil
}

// Spend removes amount energy, committing regeneration first.
func Spend(p Progress, amount float64, now time.Time) (Progress, error) {
	e := Materialize(p, now)
	if e.Energy+1e-9 < amount {
		return p, fmt.Errorf("spend %.1f energy (have %.1f): %w", amount, e.Energy, ErrInsufficientEnergy)
	}
	p = commit(p, now)
	p.Energy = math.Max(0, p.Energy-amount)
	return p, nil
}

// Clone deep-copies the maps so callers can mutate the result freely.
func (p Progress) Clone() Progress {
	out := p
	out.Upgrades = make(map[string]int, len(p.Upgrades))
	for k, v := range p.Upgrades {
		out.Upgrades[k] = v
	}
	out.MapRatings = make(map[string]int, len(p.MapRatings))
	for k, v := range p.MapRatings {
		out.MapRatings[k] = v
	}
	return out
}
