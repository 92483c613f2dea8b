// internal/state/menu_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/persist"
	"grid-tower-defense/internal/ui"
)

var (
	mapKeys     = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	upgradeKeys = map[ebiten.Key]string{
		ebiten.KeyQ: economy.UpgradeEnergyCapacity,
		ebiten.KeyW: economy.UpgradeStartingMoney,
		ebiten.KeyE: economy.UpgradeStartingLives,
	}
)

// MenuState picks a map, resumes a save or spends tech points.
type MenuState struct {
	sm      *StateMachine
	ctx     *Context
	energy  *ui.EnergyIndicator
	saved   *persist.SessionSnapshot
	message string
}

func NewMenuState(sm *StateMachine, ctx *Context) *MenuState {
	return &MenuState{sm: sm, ctx: ctx, energy: ui.NewEnergyIndicator(40, 40)}
}

func (m *MenuState) Enter() {
	m.saved = nil
	if m.ctx.Store == nil {
		return
	}
	snap, err := m.ctx.Store.LoadSession()
	if err != nil {
		if !errors.Is(err, persist.ErrNoSavedGame) {
			log.Printf("Failed to load saved session: %v", err)
		}
		return
	}
	m.saved = &snap
}

func (m *MenuState) Update(deltaTime float64) {
	for i, key := range mapKeys {
		if i >= len(m.ctx.Catalog.Maps) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			mapID := m.ctx.Catalog.Maps[i].ID
			err := m.ctx.Engine.StartSession(mapID, app.SessionOptions{Seed: time.Now().UnixNano()})
			if err != nil {
				m.message = err.Error()
				return
			}
			m.sm.SetState(NewGameState(m.sm, m.ctx))
			return
		}
	}
	if m.saved != nil && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := m.ctx.Engine.ResumeSession(*m.saved); err != nil {
			m.message = err.Error()
			m.saved = nil
			return
		}
		m.sm.SetState(NewGameState(m.sm, m.ctx))
		return
	}
	for key, id := range upgradeKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := m.ctx.Engine.BuyUpgrade(id); err != nil {
				m.message = err.Error()
			} else {
				m.message = fmt.Sprintf("Bought %s", id)
			}
		}
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})
	v := m.ctx.Engine.View()
	progress := m.ctx.Engine.Progress()
	m.energy.Draw(screen, m.ctx.Face, v.Economy.Energy, v.Economy.MaxEnergy, v.Economy.TimeUntilNextUnit, 0)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tech points: %d    Session cost: %.0f energy\n\n", progress.TechPoints, config.SessionEnergyCost)
	for i, mp := range m.ctx.Catalog.Maps {
		if i >= len(mapKeys) {
			break
		}
		stars := strings.Repeat("*", progress.MapRatings[mp.ID])
		fmt.Fprintf(&sb, "[%d] %-14s waves %-3d lives %-3d %s\n", i+1, mp.Name, mp.MaxWaves, mp.StartingLives, stars)
	}
	if m.saved != nil {
		fmt.Fprintf(&sb, "\n[C] Continue %s from wave %d\n", m.saved.MapID, m.saved.Wave)
	}
	sb.WriteString("\nUpgrades:\n")
	for _, key := range []ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE} {
		id := upgradeKeys[key]
		spec := economy.Upgrades[id]
		level := progress.Upgrades[id]
		cost := "max"
		if level < spec.MaxLevel {
			cost = fmt.Sprintf("%d tp", spec.BaseCost*(level+1))
		}
		fmt.Fprintf(&sb, "[%s] %-16s %d/%d  %s\n", key, id, level, spec.MaxLevel, cost)
	}
	if m.message != "" {
		sb.WriteString("\n" + m.message + "\n")
	}
	ebitenutil.DebugPrintAt(screen, sb.String(), 40, 100)
}

func (m *MenuState) Exit() {}
