// internal/state/state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/debugfeed"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/persist"
)

// State is one screen of the front end.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Context is shared by every screen.
type Context struct {
	Engine  *app.Engine
	Catalog *defs.Catalog
	Store   persist.Store  // optional; enables "continue"
	Feed    *debugfeed.Hub // optional debug stream
	Face    font.Face
}

// StateMachine switches between screens.
type StateMachine struct {
	current State
}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits the current screen and enters newState.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
