// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/internal/ui"
	"grid-tower-defense/pkg/grid"
	"grid-tower-defense/pkg/render"
)

const (
	feedInterval    = 0.2 // seconds between debug feed views
	messageDuration = 2 * time.Second
)

var (
	towerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

	buildStateColor     = color.RGBA{60, 180, 75, 255}
	waveStateColor      = color.RGBA{220, 120, 40, 255}
	selectionStateColor = color.RGBA{160, 80, 200, 255}
	overStateColor      = color.RGBA{90, 90, 90, 255}
)

// GameState runs a live session: it ticks the engine, turns input into
// commands and draws the latest view.
type GameState struct {
	sm  *StateMachine
	ctx *Context

	board         *render.BoardRenderer
	entities      *EntityRenderer
	indicator     *ui.StateIndicator
	speedButton   *ui.SpeedButton
	pauseButton   *ui.PauseButton
	waveIndicator *ui.WaveIndicator
	lives         *ui.LivesIndicator
	energy        *ui.EnergyIndicator
	infoPanel     *ui.InfoPanel
	offerPanel    *ui.OfferPanel

	view         app.View
	buildType    defs.TowerType
	feedElapsed  float64
	message      string
	messageUntil time.Time
}

func NewGameState(sm *StateMachine, ctx *Context) *GameState {
	board := render.NewBoardRenderer(config.CellSize, config.BoardOffsetX, config.BoardOffsetY, render.MapColors{
		BackgroundColor: config.BackgroundColor,
		BuildableColor:  config.BuildableColor,
		BlockedColor:    config.BlockedColor,
		StartColor:      config.StartColor,
		GoalColor:       config.GoalColor,
		GridLineColor:   color.RGBA{40, 50, 60, 255},
		StrokeWidth:     1,
	})
	speedColors := []color.RGBA{{0, 200, 0, 255}, {255, 200, 0, 255}, {255, 60, 0, 255}}
	return &GameState{
		sm:            sm,
		ctx:           ctx,
		board:         board,
		entities:      NewEntityRenderer(board, ctx.Catalog, ctx.Face),
		indicator:     ui.NewStateIndicator(config.ScreenWidth-40, 40, 18),
		speedButton:   ui.NewSpeedButton(config.ScreenWidth-100, 40, 12, config.GameSpeeds, speedColors),
		pauseButton:   ui.NewPauseButton(config.ScreenWidth-160, 40, 10, color.RGBA{200, 200, 200, 255}, color.RGBA{0, 200, 0, 255}),
		waveIndicator: ui.NewWaveIndicator(config.ScreenWidth-40, 80),
		lives:         ui.NewLivesIndicator(config.ScreenWidth/2-90, 20),
		energy:        ui.NewEnergyIndicator(config.ScreenWidth/2+120, 20),
		infoPanel:     ui.NewInfoPanel(ctx.Face, ctx.Face),
		offerPanel:    ui.NewOfferPanel(config.ScreenWidth/2, config.ScreenHeight/2-60, ctx.Face),
		buildType:     defs.TowerBasic,
	}
}

func (g *GameState) Enter() {
	g.refresh()
}

func (g *GameState) refresh() {
	g.view = g.ctx.Engine.View()
	g.board.SetLayout(g.view.Grid.Rows)
	g.speedButton.Sync(g.view.Stats.GameSpeed)
	g.pauseButton.SetPaused(g.view.Stats.Paused)
}

func (g *GameState) flash(err error) {
	g.message = err.Error()
	g.messageUntil = time.Now().Add(messageDuration)
}

func (g *GameState) Update(deltaTime float64) {
	engine := g.ctx.Engine
	engine.Update(deltaTime)
	g.refresh()
	if !g.view.Active {
		g.sm.SetState(NewMenuState(g.sm, g.ctx))
		return
	}
	if g.ctx.Feed != nil {
		g.feedElapsed += deltaTime
		if g.feedElapsed >= feedInterval {
			g.feedElapsed = 0
			g.ctx.Feed.PublishView(g.view)
		}
	}
	g.infoPanel.Update(&g.view)

	if g.view.Stats.Status != "playing" {
		g.updateGameOver()
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF9), inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		engine.Quit()
		g.sm.SetState(NewMenuState(g.sm, g.ctx))
		return
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.report(engine.StartWave())
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		engine.SetGameSpeed(g.speedButton.Next())
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		engine.ToggleAutoAdvance()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.report(engine.PurchaseEnergy())
	case inpututil.IsKeyJustPressed(ebiten.KeyU) && g.infoPanel.TargetEntity != 0:
		g.report(engine.UpgradeTower(g.infoPanel.TargetEntity))
	}

	offer := g.view.PowerUps.Offer
	for i, key := range towerKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if len(offer) > 0 {
			if i < len(offer) {
				g.report(engine.SelectPowerUp(offer[i].ID))
			}
		} else if i < len(defs.TowerTypes) {
			g.buildType = defs.TowerTypes[i]
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(x, y) {
			g.handleBoardClick(x, y, ebiten.MouseButtonLeft)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleBoardClick(x, y, ebiten.MouseButtonRight)
	}
}

func (g *GameState) updateGameOver() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.report(g.ctx.Engine.Restart())
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.ctx.Engine.Quit()
		g.sm.SetState(NewMenuState(g.sm, g.ctx))
	}
}

func (g *GameState) report(err error) {
	if err != nil {
		g.flash(err)
	}
}

// handleUIClick returns true when a HUD element consumed the click.
func (g *GameState) handleUIClick(x, y int) bool {
	engine := g.ctx.Engine
	switch {
	case g.speedButton.IsClicked(x, y):
		engine.SetGameSpeed(g.speedButton.Next())
	case g.pauseButton.IsClicked(x, y):
		g.sm.SetState(NewPauseState(g.sm, g))
	case g.indicator.IsClicked(x, y):
		g.indicator.HandleClick()
		g.report(engine.StartWave())
	case len(g.view.PowerUps.Offer) > 0:
		if id, ok := g.offerPanel.CardAt(g.view.PowerUps.Offer, x, y); ok {
			g.report(engine.SelectPowerUp(id))
			return true
		}
		return false
	case g.infoPanel.Contains(x, y):
		switch g.infoPanel.Click(x, y) {
		case ui.PanelUpgrade:
			g.report(engine.UpgradeTower(g.infoPanel.TargetEntity))
		case ui.PanelSell:
			if _, err := engine.DeleteTower(g.infoPanel.TargetEntity); err != nil {
				g.flash(err)
			}
			g.infoPanel.Hide()
		}
	default:
		return false
	}
	return true
}

func (g *GameState) towerAt(cell grid.Pos) (types.EntityID, bool) {
	for _, t := range g.view.Entities.Towers {
		if t.X == cell.X && t.Y == cell.Y {
			return t.ID, true
		}
	}
	return 0, false
}

func (g *GameState) handleBoardClick(x, y int, button ebiten.MouseButton) {
	cx, cy, ok := g.board.CellAt(x, y)
	if !ok {
		g.infoPanel.Hide()
		return
	}
	cell := grid.Pos{X: cx, Y: cy}
	engine := g.ctx.Engine
	id, hasTower := g.towerAt(cell)

	if button == ebiten.MouseButtonRight {
		if hasTower {
			if _, err := engine.DeleteTower(id); err != nil {
				g.flash(err)
			}
			if id == g.infoPanel.TargetEntity {
				g.infoPanel.Hide()
			}
		}
		return
	}
	if hasTower {
		g.infoPanel.SetTarget(id)
		return
	}
	g.infoPanel.Hide()
	if _, err := engine.PlaceTower(g.buildType, cell); err != nil {
		if errors.Is(err, app.ErrInvalidCell) {
			return
		}
		g.flash(err)
	}
}

func (g *GameState) stateColor() color.Color {
	switch {
	case g.view.Stats.Status != "playing":
		return overStateColor
	case len(g.view.PowerUps.Offer) > 0:
		return selectionStateColor
	case g.view.Stats.WaveInProgress:
		return waveStateColor
	default:
		return buildStateColor
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	v := &g.view
	g.board.Draw(screen)
	g.entities.Draw(screen, v, g.infoPanel.TargetEntity)

	g.indicator.Draw(screen, g.stateColor())
	g.speedButton.Draw(screen, g.ctx.Face)
	g.pauseButton.Draw(screen)
	g.waveIndicator.Draw(screen, g.ctx.Face, v.Stats.Wave+1, v.Stats.NextWaveIsBoss)
	g.lives.Draw(screen, g.ctx.Face, v.Stats.Lives, v.Stats.StartingLives)
	g.energy.Draw(screen, g.ctx.Face, v.Economy.Energy, v.Economy.MaxEnergy, v.Economy.TimeUntilNextUnit, v.Stats.Stars)
	g.infoPanel.Draw(screen, v, g.ctx.Catalog)
	g.offerPanel.Draw(screen, v.PowerUps.Offer)

	hud := fmt.Sprintf("Map: %s  Wave: %d/%d  Money: %d  Score: %d  Combo: %d\nBuild [1-4]: %s  Auto: %t",
		v.Stats.MapID, v.Stats.Wave, v.Stats.MaxWaves, v.Stats.Money, v.Stats.Score, v.Stats.Combo, g.buildType, v.Stats.AutoAdvance)
	if len(v.PowerUps.Active) > 0 {
		hud += "\nActive:"
		for _, p := range v.PowerUps.Active {
			hud += " " + p.Name
			if p.WavesRemaining > 0 {
				hud += fmt.Sprintf("(%d)", p.WavesRemaining)
			}
		}
	}
	if g.message != "" && time.Now().Before(g.messageUntil) {
		hud += "\n" + g.message
	}
	ebitenutil.DebugPrint(screen, hud)

	switch v.Stats.Status {
	case "won":
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("VICTORY  %d stars  score %d\n[R] restart  [Enter] menu", v.Stats.Stars, v.Stats.Score), config.ScreenWidth/2-100, config.ScreenHeight/2)
	case "lost":
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("DEFEAT at wave %d  score %d\n[R] restart  [Enter] menu", v.Stats.Wave, v.Stats.Score), config.ScreenWidth/2-100, config.ScreenHeight/2)
	}
}

func (g *GameState) Exit() {}
