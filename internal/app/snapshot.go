// internal/app/snapshot.go
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/persist"
	"grid-tower-defense/internal/timer"
	"grid-tower-defense/pkg/grid"
)

// Snapshot captures the resumable part of the session. A wave in flight is
// not captured; resuming starts again from the last completed wave.
func (s *Session) Snapshot(now time.Time) persist.SessionSnapshot {
	snap := persist.SessionSnapshot{
		Version:          persist.SnapshotVersion,
		SessionID:        s.ID.String(),
		MapID:            s.Map.ID,
		Wave:             s.Wave,
		Score:            s.Score(),
		Money:            s.Money,
		Lives:            s.Lives,
		StartingLives:    s.StartingLives,
		ActivePowerUps:   s.PowerUps.Active(),
		PendingOffer:     append([]string(nil), s.PendingOffer...),
		OfferSlotGranted: s.offerSlotGranted,
		AutoAdvance:      s.autoAdvance,
		Seed:             s.Rng.Seed(),
		Timestamp:        now,
	}
	for _, id := range s.ECS.TowerIDs() {
		t := s.ECS.Towers[id]
		snap.Towers = append(snap.Towers, persist.TowerSnapshot{
			Type:     t.Type,
			X:        t.Cell.X,
			Y:        t.Cell.Y,
			Level:    t.Level,
			Invested: t.Invested,
		})
	}
	return snap
}

// checkSnapshot rejects snapshots that cannot be resumed at all: an unknown
// or broken map, or a session that had already ended.
func checkSnapshot(catalog *defs.Catalog, snap persist.SessionSnapshot) (defs.MapDefinition, error) {
	m, ok := catalog.Map(snap.MapID)
	if !ok {
		return m, fmt.Errorf("resume %q: %w", snap.MapID, ErrUnknownMap)
	}
	if _, err := m.Grid(); err != nil {
		return m, fmt.Errorf("resume %q: %w", snap.MapID, err)
	}
	if snap.Wave >= m.MaxWaves || snap.Lives <= 0 {
		return m, fmt.Errorf("resume %q: session already finished: %w", snap.MapID, ErrGameOver)
	}
	return m, nil
}

// restoreSession rebuilds a session from a snapshot. Entries that no longer
// fit the catalog or the map are skipped with a log line.
func restoreSession(id uuid.UUID, catalog *defs.Catalog, snap persist.SessionSnapshot,
	dispatcher *event.Dispatcher, timers *timer.Scheduler) (*Session, error) {
	m, err := checkSnapshot(catalog, snap)
	if err != nil {
		return nil, err
	}
	s, err := newSession(id, catalog, m, SessionOptions{Seed: snap.Seed}, dispatcher, timers)
	if err != nil {
		return nil, err
	}
	s.Wave = snap.Wave
	s.Money = snap.Money
	s.Lives = snap.Lives
	if snap.StartingLives > 0 {
		s.StartingLives = snap.StartingLives
	}
	s.score = float64(snap.Score)
	s.autoAdvance = snap.AutoAdvance
	s.offerSlotGranted = snap.OfferSlotGranted

	for _, ts := range snap.Towers {
		def, ok := catalog.Tower(ts.Type)
		cell := grid.Pos{X: ts.X, Y: ts.Y}
		if !ok || !s.Grid.Buildable(cell) || s.ECS.TowerAt[cell] != 0 {
			log.Printf("Skipping saved tower %s at %s", ts.Type, cell)
			continue
		}
		if !grid.PlacementKeepsRoutes(s.Grid, s.ECS.BlockedCells(), cell, nil) {
			log.Printf("Skipping saved tower %s at %s: it would block a path", ts.Type, cell)
			continue
		}
		level := min(max(ts.Level, 1), config.MaxTowerLevel)
		s.createTowerEntity(def, cell, level, ts.Invested)
	}

	s.PowerUps.Restore(snap.ActivePowerUps)
	for _, defID := range snap.PendingOffer {
		if _, ok := catalog.PowerUp(defID); ok {
			s.PendingOffer = append(s.PendingOffer, defID)
		}
	}
	s.scheduleAutoAdvance()
	return s, nil
}
