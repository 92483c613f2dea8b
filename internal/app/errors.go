// internal/app/errors.go
package app

import (
	"errors"

	"grid-tower-defense/internal/economy"
)

// Command errors. Every command either applies completely or returns one of
// these, wrapped with context, and leaves the session unchanged.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrPathBlocked        = errors.New("placement would block a path")
	ErrCellOccupied       = errors.New("cell is occupied")
	ErrInvalidCell        = errors.New("cell is not buildable")
	ErrMaxLevelReached    = errors.New("tower is at max level")
	ErrWaveActive         = errors.New("a wave is in progress")
	ErrSelectionPending   = errors.New("a power-up selection is pending")
	ErrNoPendingOffer     = errors.New("no power-up offer pending")
	ErrPowerUpNotOffered  = errors.New("power-up was not offered")
	ErrUnknownTower       = errors.New("unknown tower")
	ErrUnknownMap         = errors.New("unknown map")
	ErrUnknownPowerUp     = errors.New("unknown power-up")
	ErrGameOver           = errors.New("game is over")
	ErrNoSession          = errors.New("no active session")
	ErrInsufficientGold   = economy.ErrInsufficientGold
	ErrInsufficientEnergy = economy.ErrInsufficientEnergy
)
