// internal/persist/snapshot.go
package persist

import (
	"time"

	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/effect"
)

// SnapshotVersion is bumped whenever the layout changes incompatibly.
const SnapshotVersion = 1

// TowerSnapshot is one placed tower.
type TowerSnapshot struct {
	Type     defs.TowerType `json:"type" msgpack:"type"`
	X        int            `json:"x" msgpack:"x"`
	Y        int            `json:"y" msgpack:"y"`
	Level    int            `json:"level" msgpack:"level"`
	Invested int            `json:"invested" msgpack:"invested"`
}

// SessionSnapshot is a resumable session, taken between waves.
type SessionSnapshot struct {
	Version        int              `json:"version" msgpack:"version"`
	SessionID      string           `json:"sessionId" msgpack:"sessionId"`
	MapID          string           `json:"mapId" msgpack:"mapId"`
	Wave           int              `json:"wave" msgpack:"wave"`
	Score          int              `json:"score" msgpack:"score"`
	Money          int              `json:"money" msgpack:"money"`
	Lives          int              `json:"lives" msgpack:"lives"`
	StartingLives  int              `json:"startingLives" msgpack:"startingLives"`
	Towers         []TowerSnapshot  `json:"towers" msgpack:"towers"`
	ActivePowerUps []effect.PowerUp `json:"activePowerUps" msgpack:"activePowerUps"`
	PendingOffer   []string         `json:"pendingOffer,omitempty" msgpack:"pendingOffer,omitempty"`
	// OfferSlotGranted means the next completed wave's offer was already
	// given out, for instance as a starting power-up.
	OfferSlotGranted bool      `json:"offerSlotGranted" msgpack:"offerSlotGranted"`
	AutoAdvance      bool      `json:"autoAdvance" msgpack:"autoAdvance"`
	Seed             int64     `json:"seed" msgpack:"seed"`
	Timestamp        time.Time `json:"timestamp" msgpack:"timestamp"`
}

// ProgressSnapshot is the long-lived player profile.
type ProgressSnapshot struct {
	Energy              float64        `json:"energy" msgpack:"energy"`
	LastEnergyTimestamp time.Time      `json:"lastEnergyTimestamp" msgpack:"lastEnergyTimestamp"`
	MaxEnergy           float64        `json:"maxEnergy" msgpack:"maxEnergy"`
	TechPoints          int            `json:"techPoints" msgpack:"techPoints"`
	Upgrades            map[string]int `json:"upgrades" msgpack:"upgrades"`
	MapRatings          map[string]int `json:"mapRatings" msgpack:"mapRatings"`
}

// ProgressFrom captures a profile. MaxEnergy is derived and stored for
// readers that do not know the upgrade table.
func ProgressFrom(p economy.Progress) ProgressSnapshot {
	p = p.Clone()
	return ProgressSnapshot{
		Energy:              p.Energy,
		LastEnergyTimestamp: p.LastEnergyTimestamp,
		MaxEnergy:           p.MaxEnergy(),
		TechPoints:          p.TechPoints,
		Upgrades:            p.Upgrades,
		MapRatings:          p.MapRatings,
	}
}

// Progress rebuilds the profile. Stored energy above the cap is clamped.
func (s ProgressSnapshot) Progress() economy.Progress {
	p := economy.Progress{
		Energy:              s.Energy,
		LastEnergyTimestamp: s.LastEnergyTimestamp,
		TechPoints:          s.TechPoints,
		Upgrades:            s.Upgrades,
		MapRatings:          s.MapRatings,
	}
	p = p.Clone()
	if p.Energy > p.MaxEnergy() {
		p.Energy = p.MaxEnergy()
	}
	if p.Energy < 0 {
		p.Energy = 0
	}
	return p
}
