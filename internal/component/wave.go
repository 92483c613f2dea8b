// internal/component/wave.go
package component

import "grid-tower-defense/internal/defs"

// SpawnEntry is one scheduled enemy of a wave.
type SpawnEntry struct {
	EnemyType defs.EnemyType `json:"enemyType"`
	OffsetMs  int            `json:"spawnOffsetMs"`
}

// Wave tracks the spawning of the wave in progress.
type Wave struct {
	Number      int
	Boss        bool
	Schedule    []SpawnEntry
	Spawned     int     // entries already spawned
	Elapsed     float64 // simulated seconds since the wave started
	HealthScale float64
	NextStart   int // round-robin over entry cells
}

// FullySpawned reports whether every schedule entry has spawned.
func (w *Wave) FullySpawned() bool {
	return w.Spawned >= len(w.Schedule)
}
