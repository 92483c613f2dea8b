// internal/event/types.go
package event

import (
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/types"
)

const (
	WaveStarted      EventType = "WaveStarted"
	WaveCompleted    EventType = "WaveCompleted"
	EnemySpawned     EventType = "EnemySpawned"
	EnemyKilled      EventType = "EnemyKilled"
	EnemyLeaked      EventType = "EnemyLeaked"
	TowerPlaced      EventType = "TowerPlaced"
	TowerUpgraded    EventType = "TowerUpgraded"
	TowerRemoved     EventType = "TowerRemoved"
	TowerFired       EventType = "TowerFired"
	PowerUpOffered   EventType = "PowerUpOffered"
	PowerUpSelected  EventType = "PowerUpSelected"
	GameOver         EventType = "GameOver"
	TechPointsEarned EventType = "TechPointsEarned"
)

// WaveData accompanies WaveStarted and WaveCompleted.
type WaveData struct {
	Wave int
	Boss bool
}

// EnemyData accompanies EnemySpawned, EnemyKilled and EnemyLeaked.
type EnemyData struct {
	ID     types.EntityID
	Type   defs.EnemyType
	Reward int // base reward from the definition
}

// TowerData accompanies the tower events.
type TowerData struct {
	ID     types.EntityID
	Level  int
	Refund int
}

// OfferData lists the candidate definition ids of a power-up offer.
type OfferData struct {
	Wave       int
	Candidates []string
}

// PowerUpData accompanies PowerUpSelected.
type PowerUpData struct {
	DefID string
	ID    uint64
}

// GameOverData accompanies GameOver.
type GameOverData struct {
	Won   bool
	Wave  int
	Score int
	Stars int // zero on a loss
}

// TechPointsData accompanies TechPointsEarned.
type TechPointsData struct {
	Amount int
}
