// internal/app/engine.go
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/persist"
	"grid-tower-defense/internal/timer"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/pkg/grid"
)

// Saver receives snapshots for asynchronous persistence. *persist.Saver
// implements it.
type Saver interface {
	SaveSession(snap persist.SessionSnapshot)
	ClearSession()
	SaveProgress(snap persist.ProgressSnapshot)
}

// Options configure an Engine. Zero values pick the defaults.
type Options struct {
	Catalog  *defs.Catalog
	Progress *economy.Progress
	Saver    Saver
	Clock    func() time.Time
}

// Engine serializes ticks and commands for at most one live session and owns
// the player profile. All methods are safe for concurrent use. Callbacks run
// after the engine lock is released, so they may call back into the engine.
type Engine struct {
	mu         sync.Mutex
	catalog    *defs.Catalog
	clock      func() time.Time
	saver      Saver
	progress   economy.Progress
	dispatcher *event.Dispatcher
	timers     *timer.Scheduler
	session    *Session

	lastMapID string
	lastOpts  SessionOptions

	pending          []func()
	onWaveComplete   []func(wave int)
	onGameOver       []func(result event.GameOverData)
	onEarnTechPoints []func(amount int)
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		catalog:    opts.Catalog,
		clock:      opts.Clock,
		saver:      opts.Saver,
		dispatcher: event.NewDispatcher(),
		timers:     timer.NewScheduler(uuid.Nil),
	}
	if e.catalog == nil {
		e.catalog = defs.Default()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if opts.Progress != nil {
		e.progress = opts.Progress.Clone()
	} else {
		e.progress = economy.NewProgress(e.clock())
	}
	listener := &engineListener{engine: e}
	e.dispatcher.Subscribe(event.WaveCompleted, listener)
	e.dispatcher.Subscribe(event.GameOver, listener)
	return e
}

// do runs fn under the lock and then fires the callbacks fn queued.
func (e *Engine) do(fn func() error) error {
	e.mu.Lock()
	err := fn()
	calls := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, call := range calls {
		call()
	}
	return err
}

func (e *Engine) withSession(fn func(s *Session) error) error {
	return e.do(func() error {
		if e.session == nil {
			return ErrNoSession
		}
		return fn(e.session)
	})
}

// OnWaveComplete registers fn to run after every completed wave.
func (e *Engine) OnWaveComplete(fn func(wave int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWaveComplete = append(e.onWaveComplete, fn)
}

// OnGameOver registers fn to run when a session is won or lost.
func (e *Engine) OnGameOver(fn func(result event.GameOverData)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGameOver = append(e.onGameOver, fn)
}

// OnEarnTechPoints registers fn to run when tech points are awarded.
func (e *Engine) OnEarnTechPoints(fn func(amount int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEarnTechPoints = append(e.onEarnTechPoints, fn)
}

// Subscribe registers a listener on the engine's event stream. Listeners run
// under the engine lock and must not call the engine.
func (e *Engine) Subscribe(eventType event.EventType, listener event.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatcher.Subscribe(eventType, listener)
}

// StartSession spends energy and begins a fresh session on mapID, ending
// any session in progress first.
func (e *Engine) StartSession(mapID string, opts SessionOptions) error {
	return e.do(func() error {
		return e.startSession(mapID, opts, false)
	})
}

// startSession validates and pays before touching the live session, so a
// failed start leaves it running. discard drops the live session without a
// resumable save.
func (e *Engine) startSession(mapID string, opts SessionOptions, discard bool) error {
	requested := opts
	m, ok := e.catalog.Map(mapID)
	if !ok {
		return fmt.Errorf("start session %q: %w", mapID, ErrUnknownMap)
	}
	if opts.StartingPowerUp != "" {
		if _, ok := e.catalog.PowerUp(opts.StartingPowerUp); !ok {
			return fmt.Errorf("start session %q: starting power-up %q: %w", mapID, opts.StartingPowerUp, ErrUnknownPowerUp)
		}
	}
	now := e.clock()
	progress, err := economy.Spend(e.progress, config.SessionEnergyCost, now)
	if err != nil {
		return fmt.Errorf("start session %q: %w", mapID, err)
	}

	if discard {
		e.discard()
	} else {
		e.quit()
	}
	opts.BonusMoney += progress.Upgrades[economy.UpgradeStartingMoney] * config.StartingMoneyPerLevel
	opts.BonusLives += progress.Upgrades[economy.UpgradeStartingLives] * config.StartingLivesPerLevel

	id := uuid.New()
	e.timers.SetEpoch(id)
	s, err := newSession(id, e.catalog, m, opts, e.dispatcher, e.timers)
	if err != nil {
		e.timers.SetEpoch(uuid.Nil)
		return fmt.Errorf("start session %q: %w", mapID, err)
	}
	e.progress = progress
	e.session = s
	e.lastMapID, e.lastOpts = mapID, requested
	e.saveProgress()
	log.Printf("Session %s started on %s (energy %.1f left)", id, mapID, economy.Materialize(e.progress, now).Energy)
	return nil
}

// ResumeSession continues a saved session. Energy was paid when the session
// first started. A snapshot that cannot be resumed leaves the live session
// running.
func (e *Engine) ResumeSession(snap persist.SessionSnapshot) error {
	return e.do(func() error {
		if _, err := checkSnapshot(e.catalog, snap); err != nil {
			return err
		}
		e.quit()
		id, err := uuid.Parse(snap.SessionID)
		if err != nil {
			id = uuid.New()
		}
		e.timers.SetEpoch(id)
		s, err := restoreSession(id, e.catalog, snap, e.dispatcher, e.timers)
		if err != nil {
			e.timers.SetEpoch(uuid.Nil)
			return err
		}
		e.session = s
		e.lastMapID, e.lastOpts = snap.MapID, SessionOptions{}
		log.Printf("Session %s resumed on %s at wave %d", id, snap.MapID, snap.Wave)
		return nil
	})
}

// Quit ends the live session, handing its final snapshot to the saver.
// Calling it without a session does nothing.
func (e *Engine) Quit() {
	_ = e.do(func() error {
		e.quit()
		return nil
	})
}

func (e *Engine) quit() {
	s := e.session
	if s == nil {
		return
	}
	e.timers.CancelAll()
	e.timers.SetEpoch(uuid.Nil)
	s.close()
	if e.saver != nil {
		if s.Terminal() {
			e.saver.ClearSession()
		} else {
			e.saver.SaveSession(s.Snapshot(e.clock()))
		}
	}
	e.session = nil
	log.Printf("Session %s closed", s.ID)
}

// discard closes the live session and forgets its save.
func (e *Engine) discard() {
	s := e.session
	if s == nil {
		return
	}
	e.timers.CancelAll()
	e.timers.SetEpoch(uuid.Nil)
	s.close()
	if e.saver != nil {
		e.saver.ClearSession()
	}
	e.session = nil
	log.Printf("Session %s discarded", s.ID)
}

// Restart ends the live session and starts a fresh one on the same map with
// the same options, paying energy again.
func (e *Engine) Restart() error {
	return e.do(func() error {
		if e.lastMapID == "" {
			return ErrNoSession
		}
		return e.startSession(e.lastMapID, e.lastOpts, true)
	})
}

// Update advances the live session by a frame of wall-clock seconds.
func (e *Engine) Update(wallDelta float64) {
	_ = e.do(func() error {
		if e.session != nil {
			e.session.Update(wallDelta)
		}
		return nil
	})
}

func (e *Engine) PlaceTower(t defs.TowerType, cell grid.Pos) (types.EntityID, error) {
	var id types.EntityID
	err := e.withSession(func(s *Session) error {
		var err error
		id, err = s.PlaceTower(t, cell)
		return err
	})
	return id, err
}

func (e *Engine) UpgradeTower(id types.EntityID) error {
	return e.withSession(func(s *Session) error { return s.UpgradeTower(id) })
}

func (e *Engine) DeleteTower(id types.EntityID) (int, error) {
	var refund int
	err := e.withSession(func(s *Session) error {
		var err error
		refund, err = s.DeleteTower(id)
		return err
	})
	return refund, err
}

func (e *Engine) StartWave() error {
	return e.withSession(func(s *Session) error { return s.StartWave() })
}

func (e *Engine) SelectPowerUp(defID string) error {
	return e.withSession(func(s *Session) error { return s.SelectPowerUp(defID) })
}

func (e *Engine) SetGameSpeed(speed float64) {
	_ = e.withSession(func(s *Session) error {
		s.SetGameSpeed(speed)
		return nil
	})
}

func (e *Engine) TogglePause() {
	_ = e.withSession(func(s *Session) error {
		s.TogglePause()
		return nil
	})
}

func (e *Engine) ToggleAutoAdvance() {
	_ = e.withSession(func(s *Session) error {
		s.ToggleAutoAdvance()
		return nil
	})
}

// PurchaseEnergy trades session money for energy.
func (e *Engine) PurchaseEnergy() error {
	return e.withSession(func(s *Session) error {
		progress, gold, err := economy.Purchase(e.progress, config.EnergyPurchaseAmount, config.EnergyPurchaseCost, s.Money, e.clock())
		if err != nil {
			return err
		}
		e.progress = progress
		s.Money = gold
		e.saveProgress()
		return nil
	})
}

// BuyUpgrade spends tech points on an account upgrade.
func (e *Engine) BuyUpgrade(id string) error {
	return e.do(func() error {
		progress, err := economy.BuyUpgrade(e.progress, id, e.clock())
		if err != nil {
			return err
		}
		e.progress = progress
		e.saveProgress()
		return nil
	})
}

// Energy returns the materialized energy counter.
func (e *Engine) Energy() economy.Energy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return economy.Materialize(e.progress, e.clock())
}

// Progress returns a copy of the player profile.
func (e *Engine) Progress() economy.Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress.Clone()
}

// View returns an immutable snapshot for rendering.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	var v View
	if e.session != nil {
		e.session.view(&v)
	}
	v.Economy = economyView(e.progress, e.clock())
	return v
}

func (e *Engine) saveProgress() {
	if e.saver != nil {
		e.saver.SaveProgress(persist.ProgressFrom(e.progress))
	}
}

// engineListener turns session events into persistence, profile updates
// and user callbacks.
type engineListener struct {
	engine *Engine
}

func (l *engineListener) OnEvent(ev event.Event) {
	e := l.engine
	switch ev.Type {
	case event.WaveCompleted:
		data := ev.Data.(event.WaveData)
		if e.saver != nil && e.session != nil {
			e.saver.SaveSession(e.session.Snapshot(e.clock()))
		}
		for _, fn := range e.onWaveComplete {
			e.pending = append(e.pending, func() { fn(data.Wave) })
		}
	case event.GameOver:
		data := ev.Data.(event.GameOverData)
		points := economy.TechPointsFor(data.Wave, data.Won)
		e.progress = economy.AwardTechPoints(e.progress, points)
		if data.Won && e.session != nil {
			e.progress = economy.RecordRating(e.progress, e.session.Map.ID, data.Stars)
		}
		if e.saver != nil {
			e.saver.ClearSession()
		}
		e.saveProgress()
		e.dispatcher.Dispatch(event.Event{Type: event.TechPointsEarned, Data: event.TechPointsData{Amount: points}})
		for _, fn := range e.onGameOver {
			e.pending = append(e.pending, func() { fn(data) })
		}
		for _, fn := range e.onEarnTechPoints {
			e.pending = append(e.pending, func() { fn(points) })
		}
	}
}
