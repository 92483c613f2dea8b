// internal/economy/progress.go
package economy

import (
	"fmt"
	"time"

	"grid-tower-defense/internal/config"
)

// Account-level upgrades bought with tech points.
const (
	UpgradeEnergyCapacity = "energy_capacity"
	UpgradeStartingMoney  = "starting_money"
	UpgradeStartingLives  = "starting_lives"
)

// UpgradeSpec describes one account-level upgrade track.
type UpgradeSpec struct {
	ID       string
	MaxLevel int
	BaseCost int // tech points for level 1; level n costs BaseCost*n
}

// Upgrades lists the purchasable tracks.
var Upgrades = map[string]UpgradeSpec{
	UpgradeEnergyCapacity: {ID: UpgradeEnergyCapacity, MaxLevel: 5, BaseCost: 10},
	UpgradeStartingMoney:  {ID: UpgradeStartingMoney, MaxLevel: 5, BaseCost: 5},
	UpgradeStartingLives:  {ID: UpgradeStartingLives, MaxLevel: 3, BaseCost: 8},
}

// BuyUpgrade raises an upgrade by one level, paying tech points. Raising
// energy capacity commits regeneration first so the old cap governs the
// time already elapsed.
func BuyUpgrade(p Progress, id string, now time.Time) (Progress, error) {
	spec, ok := Upgrades[id]
	if !ok {
		return p, fmt.Errorf("buy upgrade %q: %w", id, ErrUnknownUpgrade)
	}
	level := p.Upgrades[id]
	if level >= spec.MaxLevel {
		return p, fmt.Errorf("buy upgrade %q: %w", id, ErrUpgradeMaxed)
	}
	cost := spec.BaseCost * (level + 1)
	if p.TechPoints < cost {
		return p, fmt.Errorf("buy upgrade %q for %d (have %d): %w", id, cost, p.TechPoints, ErrInsufficientTechPoints)
	}
	p = commit(p.Clone(), now)
	p.TechPoints -= cost
	p.Upgrades[id] = level + 1
	return p, nil
}

// AwardTechPoints adds tech points earned at the end of a session.
func AwardTechPoints(p Progress, amount int) Progress {
	if amount <= 0 {
		return p
	}
	p.TechPoints += amount
	return p
}

// RecordRating keeps the best star rating seen for a map.
func RecordRating(p Progress, mapID string, stars int) Progress {
	if stars < 1 {
		return p
	}
	if stars > 3 {
		stars = 3
	}
	if p.MapRatings[mapID] >= stars {
		return p
	}
	p = p.Clone()
	p.MapRatings[mapID] = stars
	return p
}

// StarsFor rates a won session by the share of lives kept.
func StarsFor(livesLeft, startingLives int) int {
	if startingLives <= 0 {
		return 1
	}
	ratio := float64(livesLeft) / float64(startingLives)
	switch {
	case ratio >= config.ThreeStarLivesRatio:
		return 3
	case ratio >= config.TwoStarLivesRatio:
		return 2
	default:
		return 1
	}
}

// TechPointsFor is the award for finishing a session.
func TechPointsFor(wavesCompleted int, won bool) int {
	points := wavesCompleted * config.TechPointsPerWave
	if won {
		points += config.TechPointsWinBonus
	}
	return points
}
