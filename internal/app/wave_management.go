// internal/app/wave_management.go
package app

import (
	"fmt"
	"slices"

	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/event"
)

// StartWave launches the next wave. The previous wave must be fully spawned
// and cleared, and any power-up offer resolved.
func (s *Session) StartWave() error {
	if s.Status.Terminal() {
		return ErrGameOver
	}
	if s.ECS.Wave != nil || len(s.ECS.Enemies) > 0 {
		return fmt.Errorf("start wave %d: %w", s.Wave+1, ErrWaveActive)
	}
	if s.OfferPending() {
		return fmt.Errorf("start wave %d: %w", s.Wave+1, ErrSelectionPending)
	}
	s.cancelAutoAdvance()
	s.WaveSystem.StartWave(s.Wave + 1)
	return nil
}

// SelectPowerUp activates one candidate of the pending offer and clears it.
func (s *Session) SelectPowerUp(defID string) error {
	if s.Status.Terminal() {
		return ErrGameOver
	}
	if !s.OfferPending() {
		return ErrNoPendingOffer
	}
	if !slices.Contains(s.PendingOffer, defID) {
		return fmt.Errorf("select %q: %w", defID, ErrPowerUpNotOffered)
	}
	def, ok := s.Catalog.PowerUp(defID)
	if !ok {
		return fmt.Errorf("select %q: %w", defID, ErrUnknownPowerUp)
	}
	p := s.activate(def)
	s.PendingOffer = nil
	s.EventDispatcher.Dispatch(event.Event{Type: event.PowerUpSelected, Data: event.PowerUpData{DefID: defID, ID: p.ID}})
	s.scheduleAutoAdvance()
	return nil
}

// SetGameSpeed clamps speed into the supported range.
func (s *Session) SetGameSpeed(speed float64) {
	switch {
	case speed < config.MinGameSpeed:
		speed = config.MinGameSpeed
	case speed > config.MaxGameSpeed:
		speed = config.MaxGameSpeed
	}
	s.gameSpeed = speed
}

func (s *Session) TogglePause() bool {
	s.isPaused = !s.isPaused
	return s.isPaused
}

// ToggleAutoAdvance flips auto-advance. Turning it on with a clear board
// queues the next wave.
func (s *Session) ToggleAutoAdvance() bool {
	s.autoAdvance = !s.autoAdvance
	if s.autoAdvance {
		s.scheduleAutoAdvance()
	} else {
		s.cancelAutoAdvance()
	}
	return s.autoAdvance
}
