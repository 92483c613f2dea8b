// internal/component/game_state.go
package component

// GameStatus is the session state machine. Won and Lost are terminal.
type GameStatus int

const (
	Playing GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether no further simulation may happen.
func (s GameStatus) Terminal() bool {
	return s == Won || s == Lost
}
