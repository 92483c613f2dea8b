// internal/app/tower_management.go
package app

import (
	"fmt"
	"log"
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/pkg/grid"
)

// PlaceTower builds a tower of type t on cell. The placement is rejected
// when it would cut off any start from a goal it can currently reach, or
// seal in a live enemy.
func (s *Session) PlaceTower(t defs.TowerType, cell grid.Pos) (types.EntityID, error) {
	if s.Status.Terminal() {
		return 0, ErrGameOver
	}
	def, ok := s.Catalog.Tower(t)
	if !ok {
		return 0, fmt.Errorf("place %q: %w", t, ErrUnknownTower)
	}
	if !s.Grid.Buildable(cell) {
		return 0, fmt.Errorf("place %s at %s: %w", t, cell, ErrInvalidCell)
	}
	if _, taken := s.ECS.TowerAt[cell]; taken {
		return 0, fmt.Errorf("place %s at %s: %w", t, cell, ErrCellOccupied)
	}
	enemyCells := s.enemyCells()
	for _, c := range enemyCells {
		if c == cell {
			return 0, fmt.Errorf("place %s at %s: enemy on cell: %w", t, cell, ErrCellOccupied)
		}
	}
	if s.Money < def.Cost {
		return 0, fmt.Errorf("place %s for %d (have %d): %w", t, def.Cost, s.Money, ErrInsufficientFunds)
	}
	if !grid.PlacementKeepsRoutes(s.Grid, s.ECS.BlockedCells(), cell, enemyCells) {
		return 0, fmt.Errorf("place %s at %s: %w", t, cell, ErrPathBlocked)
	}

	s.Money -= def.Cost
	id := s.createTowerEntity(def, cell, 1, def.Cost)
	s.repathEnemies()
	s.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.TowerData{ID: id, Level: 1}})
	return id, nil
}

// UpgradeTower raises a tower one level. Level n to n+1 costs Cost*n.
func (s *Session) UpgradeTower(id types.EntityID) error {
	if s.Status.Terminal() {
		return ErrGameOver
	}
	tower, ok := s.ECS.Towers[id]
	if !ok {
		return fmt.Errorf("upgrade tower %d: %w", id, ErrUnknownTower)
	}
	if tower.Level >= config.MaxTowerLevel {
		return fmt.Errorf("upgrade tower %d: %w", id, ErrMaxLevelReached)
	}
	def, _ := s.Catalog.Tower(tower.Type)
	cost := def.UpgradeCost(tower.Level)
	if s.Money < cost {
		return fmt.Errorf("upgrade tower %d for %d (have %d): %w", id, cost, s.Money, ErrInsufficientFunds)
	}
	s.Money -= cost
	tower.Level++
	tower.Invested += cost
	s.EventDispatcher.Dispatch(event.Event{Type: event.TowerUpgraded, Data: event.TowerData{ID: id, Level: tower.Level}})
	return nil
}

// DeleteTower sells a tower for a share of everything invested in it and
// returns the refund.
func (s *Session) DeleteTower(id types.EntityID) (int, error) {
	if s.Status.Terminal() {
		return 0, ErrGameOver
	}
	tower, ok := s.ECS.Towers[id]
	if !ok {
		return 0, fmt.Errorf("delete tower %d: %w", id, ErrUnknownTower)
	}
	refund := int(math.Round(float64(tower.Invested) * config.RefundRatio))
	s.Money += refund
	s.ECS.RemoveTower(id)
	s.repathEnemies()
	s.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: event.TowerData{ID: id, Refund: refund}})
	return refund, nil
}

// TowerAt returns the tower on cell, or zero.
func (s *Session) TowerAt(cell grid.Pos) types.EntityID {
	return s.ECS.TowerAt[cell]
}

func (s *Session) createTowerEntity(def defs.TowerDefinition, cell grid.Pos, level, invested int) types.EntityID {
	id := s.ECS.NewEntity()
	pos := component.CellCenter(cell)
	s.ECS.Positions[id] = &pos
	s.ECS.Towers[id] = &component.Tower{
		Type:     def.ID,
		Cell:     cell,
		Level:    level,
		Invested: invested,
	}
	s.ECS.Combats[id] = &component.Combat{
		Damage:       def.Damage,
		FireInterval: def.FireInterval,
		Range:        def.Range,
		HitEffect:    def.HitEffect,
		SlowFactor:   def.SlowFactor,
		SlowDuration: def.SlowDuration,
	}
	s.ECS.TowerAt[cell] = id
	return id
}

func (s *Session) enemyCells() []grid.Pos {
	ids := s.ECS.EnemyIDs()
	cells := make([]grid.Pos, 0, len(ids))
	for _, id := range ids {
		if pos, ok := s.ECS.Positions[id]; ok {
			cells = append(cells, pos.Cell())
		}
	}
	return cells
}

// repathEnemies sends every live enemy down the shortest route from the
// cell it currently stands on.
func (s *Session) repathEnemies() {
	blocked := s.ECS.BlockedCells()
	for _, id := range s.ECS.EnemyIDs() {
		pos, ok := s.ECS.Positions[id]
		if !ok {
			continue
		}
		cells := grid.NearestGoalPath(s.Grid, pos.Cell(), blocked)
		if cells == nil {
			log.Printf("Enemy %d has no route from %s; keeping its old path", id, pos.Cell())
			continue
		}
		s.ECS.Paths[id] = &component.Path{Cells: cells}
	}
}
