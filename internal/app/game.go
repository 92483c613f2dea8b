// internal/app/game.go
package app

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/effect"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/system"
	"grid-tower-defense/internal/timer"
	"grid-tower-defense/internal/utils"
	"grid-tower-defense/pkg/grid"
)

// SessionOptions tune a new session.
type SessionOptions struct {
	// Seed drives power-up offers; zero picks one from the clock.
	Seed int64
	// StartingPowerUp is an optional run upgrade granted before wave 1. It
	// takes the place of the offer that would follow wave 1.
	StartingPowerUp string
	BonusMoney      int
	BonusLives      int
}

// Session is one play-through of a map. It owns every piece of mutable
// session state; nothing about a session lives in package globals.
type Session struct {
	ID      uuid.UUID
	Map     defs.MapDefinition
	Grid    *grid.Grid
	Catalog *defs.Catalog

	ECS             *entity.ECS
	PowerUps        *effect.Set
	EventDispatcher *event.Dispatcher
	Timers          *timer.Scheduler
	Rng             *utils.PRNGService

	WaveSystem         *system.WaveSystem
	MovementSystem     *system.MovementSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	StatusEffectSystem *system.StatusEffectSystem
	VisualEffectSystem *system.VisualEffectSystem

	Money         int
	Lives         int
	StartingLives int
	Combo         int
	Wave          int // completed waves
	MaxWaves      int
	Status        component.GameStatus
	Stars         int
	PendingOffer  []string

	score            float64
	isPaused         bool
	gameSpeed        float64
	autoAdvance      bool
	autoAdvanceTimer timer.ID
	offerSlotGranted bool
	listener         *sessionListener
}

// newSession builds a fresh session on m. The dispatcher and scheduler are
// shared with the engine; the scheduler's epoch must already be the new
// session id.
func newSession(id uuid.UUID, catalog *defs.Catalog, m defs.MapDefinition, opts SessionOptions,
	dispatcher *event.Dispatcher, timers *timer.Scheduler) (*Session, error) {
	g, err := m.Grid()
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", m.ID, err)
	}

	ecs := entity.NewECS()
	powerUps := effect.NewSet()
	s := &Session{
		ID:              id,
		Map:             m,
		Grid:            g,
		Catalog:         catalog,
		ECS:             ecs,
		PowerUps:        powerUps,
		EventDispatcher: dispatcher,
		Timers:          timers,
		Rng:             utils.NewPRNGService(opts.Seed),
		Money:           m.StartingMoney + opts.BonusMoney,
		Lives:           m.StartingLives + opts.BonusLives,
		MaxWaves:        m.MaxWaves,
		Status:          component.Playing,
		gameSpeed:       1,
	}
	s.StartingLives = s.Lives

	s.WaveSystem = system.NewWaveSystem(ecs, g, catalog, dispatcher)
	s.MovementSystem = system.NewMovementSystem(ecs, dispatcher)
	s.CombatSystem = system.NewCombatSystem(ecs, powerUps, dispatcher)
	s.ProjectileSystem = system.NewProjectileSystem(ecs, dispatcher)
	s.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	s.VisualEffectSystem = system.NewVisualEffectSystem(ecs)

	s.listener = &sessionListener{session: s}
	dispatcher.Subscribe(event.EnemyKilled, s.listener)
	dispatcher.Subscribe(event.EnemyLeaked, s.listener)

	if opts.StartingPowerUp != "" {
		def, ok := catalog.PowerUp(opts.StartingPowerUp)
		if !ok {
			s.close()
			return nil, fmt.Errorf("starting power-up %q: %w", opts.StartingPowerUp, ErrUnknownPowerUp)
		}
		s.activate(def)
		s.offerSlotGranted = true
	}
	return s, nil
}

// close detaches the session from the shared dispatcher.
func (s *Session) close() {
	s.EventDispatcher.Unsubscribe(event.EnemyKilled, s.listener)
	s.EventDispatcher.Unsubscribe(event.EnemyLeaked, s.listener)
	s.cancelAutoAdvance()
}

// Score is the rounded running score.
func (s *Session) Score() int {
	return int(math.Round(s.score))
}

func (s *Session) IsPaused() bool       { return s.isPaused }
func (s *Session) GameSpeed() float64   { return s.gameSpeed }
func (s *Session) AutoAdvance() bool    { return s.autoAdvance }
func (s *Session) WaveInProgress() bool { return s.ECS.Wave != nil }
func (s *Session) Terminal() bool       { return s.Status.Terminal() }
func (s *Session) NextWaveIsBoss() bool { return system.IsBossWave(s.Wave + 1) }
func (s *Session) OfferPending() bool   { return len(s.PendingOffer) > 0 }

// Update advances the session by one frame of wall-clock time. The frame is
// clamped, scaled by the game speed and split into fixed-size slices so a
// faster game resolves exactly like a slower one, just sooner.
func (s *Session) Update(wallDelta float64) {
	if s.isPaused || wallDelta <= 0 {
		return
	}
	dt := math.Min(wallDelta, config.MaxDeltaTime) * s.gameSpeed
	for dt > 1e-12 {
		step := math.Min(dt, config.SimStep)
		dt -= step
		if s.Status.Terminal() {
			s.VisualEffectSystem.Update(step)
			continue
		}
		s.step(step)
	}
}

// step is one simulated slice, in a fixed order.
func (s *Session) step(dt float64) {
	s.ECS.GameTime += dt

	s.WaveSystem.Update(dt)
	s.StatusEffectSystem.Update(dt)
	s.MovementSystem.Update(dt)
	if s.Status.Terminal() {
		s.VisualEffectSystem.Update(dt)
		return
	}
	s.CombatSystem.Update(dt)
	s.ProjectileSystem.Update(dt)
	s.VisualEffectSystem.Update(dt)

	if s.ECS.Wave != nil && s.WaveSystem.IsWaveComplete() {
		s.completeWave()
	}
	s.Timers.Advance(dt)
}

func (s *Session) completeWave() {
	number := s.ECS.Wave.Number
	s.ECS.Wave = nil
	s.Wave = number
	for _, p := range s.PowerUps.CompleteWave() {
		log.Printf("Power-up %s expired", p.Name)
	}
	log.Printf("Wave %d complete (%d/%d), money %d, lives %d", number, s.Wave, s.MaxWaves, s.Money, s.Lives)

	won := s.Wave >= s.MaxWaves
	if !won {
		if s.offerSlotGranted {
			s.offerSlotGranted = false
		} else {
			s.makeOffer()
		}
		s.scheduleAutoAdvance()
	}
	s.EventDispatcher.Dispatch(event.Event{
		Type: event.WaveCompleted,
		Data: event.WaveData{Wave: number, Boss: system.IsBossWave(number)},
	})
	if won {
		s.finish(true)
	}
}

// makeOffer draws distinct candidates weighted by rarity.
func (s *Session) makeOffer() {
	table := make([]utils.Weighted[string], 0, len(s.Catalog.PowerUps))
	for _, def := range s.Catalog.PowerUps {
		table = append(table, utils.Weighted[string]{Item: def.ID, Weight: def.Rarity.Weight()})
	}
	offer := utils.ChooseDistinct(s.Rng, table, config.PowerUpOfferSize)
	if len(offer) == 0 {
		return
	}
	s.PendingOffer = offer
	s.EventDispatcher.Dispatch(event.Event{
		Type: event.PowerUpOffered,
		Data: event.OfferData{Wave: s.Wave, Candidates: append([]string(nil), offer...)},
	})
}

// activate applies a power-up. Money and lives are granted at once; other
// effects join the active set.
func (s *Session) activate(def defs.PowerUpDefinition) effect.PowerUp {
	p := s.PowerUps.Activate(def.Instantiate())
	switch def.Effect.Type {
	case effect.Money:
		s.Money += int(math.Round(def.Effect.Value))
	case effect.Lives:
		s.Lives += int(math.Round(def.Effect.Value))
	}
	log.Printf("Power-up %s activated", def.Name)
	return p
}

func (s *Session) scheduleAutoAdvance() {
	s.cancelAutoAdvance()
	if !s.autoAdvance || s.OfferPending() || s.ECS.Wave != nil || s.Status.Terminal() {
		return
	}
	s.autoAdvanceTimer = s.Timers.After(config.AutoAdvanceDelay, func() {
		s.autoAdvanceTimer = 0
		if err := s.StartWave(); err != nil {
			log.Printf("Auto-advance skipped: %v", err)
		}
	})
}

func (s *Session) cancelAutoAdvance() {
	if s.autoAdvanceTimer != 0 {
		s.Timers.Cancel(s.autoAdvanceTimer)
		s.autoAdvanceTimer = 0
	}
}

// finish moves the session into a terminal state.
func (s *Session) finish(won bool) {
	if s.Status.Terminal() {
		return
	}
	if won {
		s.Status = component.Won
		s.Stars = economy.StarsFor(s.Lives, s.StartingLives)
	} else {
		s.Status = component.Lost
	}
	s.ECS.ClearEnemies()
	s.ECS.Wave = nil
	s.PendingOffer = nil
	s.cancelAutoAdvance()
	log.Printf("Game over on %s: %s after %d waves, score %d", s.Map.ID, s.Status, s.Wave, s.Score())
	s.EventDispatcher.Dispatch(event.Event{
		Type: event.GameOver,
		Data: event.GameOverData{Won: won, Wave: s.Wave, Score: s.Score(), Stars: s.Stars},
	})
}

// sessionListener keeps the economy in step with combat outcomes.
type sessionListener struct {
	session *Session
}

func (l *sessionListener) OnEvent(e event.Event) {
	s := l.session
	if s.Status.Terminal() {
		return
	}
	data, ok := e.Data.(event.EnemyData)
	if !ok {
		return
	}
	switch e.Type {
	case event.EnemyKilled:
		s.Money += int(math.Round(float64(data.Reward) * s.PowerUps.Multiplier(effect.Reward)))
		s.Combo++
		s.score += float64(data.Reward) * (1 + float64(s.Combo)*config.ComboScoreStep)
	case event.EnemyLeaked:
		s.Combo = 0
		s.Lives--
		if s.Lives <= 0 {
			s.Lives = 0
			s.finish(false)
		}
	}
}
