// internal/state/pause_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"grid-tower-defense/internal/config"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the session and draws the game underneath an overlay.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{stateMachine: sm, previousState: prevState}
}

func (s *PauseState) Enter() {
	if !s.previousState.view.Stats.Paused {
		s.previousState.ctx.Engine.TogglePause()
	}
}

func (s *PauseState) Update(deltaTime float64) {
	clicked := false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		clicked = s.previousState.pauseButton.IsClicked(x, y)
	}
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.previousState.ctx.Engine.TogglePause()
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.PauseOverlayColor, false)

	label := "PAUSED"
	face := s.previousState.ctx.Face
	bounds := text.BoundString(face, label)
	text.Draw(screen, label, face, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, config.TextLightColor)
}

func (s *PauseState) Exit() {}
