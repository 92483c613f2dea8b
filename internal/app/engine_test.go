package app

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/effect"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/persist"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/pkg/grid"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var corridorRows = []string{
	"S...G",
	".....",
}

func testCatalog(t *testing.T) *defs.Catalog {
	t.Helper()
	base := defs.Default()
	doc := defs.Catalog{
		Towers:   base.Towers,
		Enemies:  base.Enemies,
		PowerUps: base.PowerUps,
		Maps: []defs.MapDefinition{
			{ID: "corridor", Name: "Corridor", Rows: corridorRows, StartingMoney: 500, StartingLives: 20, MaxWaves: 20},
			{ID: "fragile", Name: "Fragile", Rows: corridorRows, StartingMoney: 500, StartingLives: 2, MaxWaves: 20},
			{ID: "finale", Name: "Finale", Rows: corridorRows, StartingMoney: 500, StartingLives: 20, MaxWaves: 1},
			{ID: "long", Name: "Long", Rows: []string{"S.....G", "......."}, StartingMoney: 500, StartingLives: 20, MaxWaves: 20},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	c, err := defs.ParseCatalog(data)
	if err != nil {
		t.Fatalf("test catalog: %v", err)
	}
	return c
}

type fakeSaver struct {
	sessions []persist.SessionSnapshot
	clears   int
	progress []persist.ProgressSnapshot
}

func (f *fakeSaver) SaveSession(s persist.SessionSnapshot)   { f.sessions = append(f.sessions, s) }
func (f *fakeSaver) ClearSession()                           { f.clears++ }
func (f *fakeSaver) SaveProgress(p persist.ProgressSnapshot) { f.progress = append(f.progress, p) }

type counter map[event.EventType]int

func (c counter) OnEvent(e event.Event) { c[e.Type]++ }

func newTestEngine(t *testing.T, saver Saver) *Engine {
	t.Helper()
	return NewEngine(Options{
		Catalog: testCatalog(t),
		Saver:   saver,
		Clock:   func() time.Time { return testEpoch },
	})
}

func startEngine(t *testing.T, mapID string, opts SessionOptions) *Engine {
	t.Helper()
	e := newTestEngine(t, nil)
	if err := e.StartSession(mapID, opts); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return e
}

func runFor(e *Engine, seconds float64) {
	for i := 0; i < int(math.Round(seconds/0.05)); i++ {
		e.Update(0.05)
	}
}

func insertEnemy(s *Session, cell grid.Pos, hp int) types.EntityID {
	id := s.ECS.NewEntity()
	pos := component.CellCenter(cell)
	s.ECS.Positions[id] = &pos
	s.ECS.Velocities[id] = &component.Velocity{}
	// A second cell keeps a motionless enemy from counting as arrived.
	s.ECS.Paths[id] = &component.Path{Cells: []grid.Pos{cell, {X: cell.X + 1, Y: cell.Y}}}
	s.ECS.Healths[id] = &component.Health{Value: hp, Max: hp}
	s.ECS.Enemies[id] = &component.Enemy{Type: defs.EnemyGrunt, Reward: 5}
	return id
}

func TestStartSessionSpendsEnergy(t *testing.T) {
	e := newTestEngine(t, nil)
	if err := e.StartSession("corridor", SessionOptions{Seed: 1}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := e.Energy().Energy; got != config.BaseMaxEnergy-config.SessionEnergyCost {
		t.Fatalf("energy = %v", got)
	}
	if err := e.StartSession("nowhere", SessionOptions{}); !errors.Is(err, ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}

	drained := economy.NewProgress(testEpoch)
	drained.Energy = 1
	poor := NewEngine(Options{Catalog: testCatalog(t), Progress: &drained, Clock: func() time.Time { return testEpoch }})
	if err := poor.StartSession("corridor", SessionOptions{}); !errors.Is(err, ErrInsufficientEnergy) {
		t.Fatalf("expected ErrInsufficientEnergy, got %v", err)
	}
	if v := poor.View(); v.Active {
		t.Fatalf("no session should be running")
	}
}

func TestPlacementThatDisconnectsIsRejected(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 1, Y: 0}); err != nil {
		t.Fatalf("first tower: %v", err)
	}
	before := e.View()
	_, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 1, Y: 1})
	if !errors.Is(err, ErrPathBlocked) {
		t.Fatalf("expected ErrPathBlocked, got %v", err)
	}
	after := e.View()
	if after.Stats.Money != before.Stats.Money || len(after.Entities.Towers) != len(before.Entities.Towers) {
		t.Fatalf("rejected placement changed state: money %d->%d towers %d->%d",
			before.Stats.Money, after.Stats.Money, len(before.Entities.Towers), len(after.Entities.Towers))
	}
}

func TestPlacementValidation(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	cases := []struct {
		name string
		cell grid.Pos
		want error
	}{
		{"start cell", grid.Pos{X: 0, Y: 0}, ErrInvalidCell},
		{"goal cell", grid.Pos{X: 4, Y: 0}, ErrInvalidCell},
		{"out of bounds", grid.Pos{X: 9, Y: 9}, ErrInvalidCell},
	}
	for _, tc := range cases {
		if _, err := e.PlaceTower(defs.TowerBasic, tc.cell); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if _, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if _, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 3, Y: 1}); err != nil {
		t.Fatalf("place: %v", err)
	}
	// 500 - 150 - 150 = 200 left
	if _, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 1, Y: 1}); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 2, Y: 0}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestEnemyCellsCountForPlacement(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	s := e.session
	insertEnemy(s, grid.Pos{X: 2, Y: 0}, 10)
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 0}); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 3, Y: 0}); err != nil {
		t.Fatalf("place: %v", err)
	}
	// The enemy at (2,0) now has (2,1) as its only way out.
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); !errors.Is(err, ErrPathBlocked) {
		t.Fatalf("sealing in an enemy should fail, got %v", err)
	}
}

func TestUpgradeAndDelete(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	id, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.UpgradeTower(id); err != nil {
		t.Fatalf("upgrade to 2: %v", err)
	}
	if err := e.UpgradeTower(id); err != nil {
		t.Fatalf("upgrade to 3: %v", err)
	}
	if err := e.UpgradeTower(id); !errors.Is(err, ErrMaxLevelReached) {
		t.Fatalf("expected ErrMaxLevelReached, got %v", err)
	}
	// 50 + 50 + 100 invested
	if money := e.View().Stats.Money; money != 300 {
		t.Fatalf("money = %d, want 300", money)
	}
	refund, err := e.DeleteTower(id)
	if err != nil {
		t.Fatal(err)
	}
	if refund != 100 || e.View().Stats.Money != 400 {
		t.Fatalf("refund %d money %d", refund, e.View().Stats.Money)
	}
	if _, err := e.DeleteTower(id); !errors.Is(err, ErrUnknownTower) {
		t.Fatalf("expected ErrUnknownTower, got %v", err)
	}
	if err := e.UpgradeTower(id); !errors.Is(err, ErrUnknownTower) {
		t.Fatalf("expected ErrUnknownTower, got %v", err)
	}
}

func TestUpgradeNeedsFunds(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	id, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.PlaceTower(defs.TowerSniper, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	// 200 left; level 2 costs 150, level 3 costs 300
	if err := e.UpgradeTower(id); err != nil {
		t.Fatal(err)
	}
	before := e.View().Stats.Money
	if err := e.UpgradeTower(id); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if e.View().Stats.Money != before {
		t.Fatalf("failed upgrade changed money")
	}
}

func TestWaveLifecycleWithOffer(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 7})
	var completed []int
	e.OnWaveComplete(func(wave int) { completed = append(completed, wave) })

	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	if err := e.StartWave(); !errors.Is(err, ErrWaveActive) {
		t.Fatalf("expected ErrWaveActive, got %v", err)
	}
	runFor(e, 10)

	v := e.View()
	if v.Stats.Wave != 1 || len(completed) != 1 || completed[0] != 1 {
		t.Fatalf("wave = %d, callbacks %v", v.Stats.Wave, completed)
	}
	if v.Stats.Lives != 15 || v.Stats.Combo != 0 {
		t.Fatalf("five leaks: lives %d combo %d", v.Stats.Lives, v.Stats.Combo)
	}
	if len(v.PowerUps.Offer) != config.PowerUpOfferSize {
		t.Fatalf("offer has %d candidates", len(v.PowerUps.Offer))
	}
	if err := e.StartWave(); !errors.Is(err, ErrSelectionPending) {
		t.Fatalf("expected ErrSelectionPending, got %v", err)
	}
	if err := e.SelectPowerUp("no_such_thing"); !errors.Is(err, ErrPowerUpNotOffered) {
		t.Fatalf("expected ErrPowerUpNotOffered, got %v", err)
	}
	if err := e.SelectPowerUp(v.PowerUps.Offer[0].ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := e.SelectPowerUp(v.PowerUps.Offer[1].ID); !errors.Is(err, ErrNoPendingOffer) {
		t.Fatalf("expected ErrNoPendingOffer, got %v", err)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("wave 2: %v", err)
	}
	if !e.View().Stats.WaveInProgress {
		t.Fatalf("wave 2 should be running")
	}
}

func TestStartingPowerUpTakesFirstOffer(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 7, StartingPowerUp: "war_chest"})
	if money := e.View().Stats.Money; money != 650 {
		t.Fatalf("money = %d, want 500 + 150 granted at once", money)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 10)
	v := e.View()
	if v.Stats.Wave != 1 || len(v.PowerUps.Offer) != 0 {
		t.Fatalf("wave 1 offer should be consumed: wave %d offer %v", v.Stats.Wave, v.PowerUps.Offer)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("wave 2 should start without a selection: %v", err)
	}
}

func TestResumeKeepsGrantedOfferSlot(t *testing.T) {
	saver := &fakeSaver{}
	e := newTestEngine(t, saver)
	if err := e.StartSession("corridor", SessionOptions{Seed: 7, StartingPowerUp: "war_chest"}); err != nil {
		t.Fatalf("start session: %v", err)
	}
	e.Quit()
	if len(saver.sessions) != 1 {
		t.Fatalf("quit should queue one save, got %d", len(saver.sessions))
	}
	snap := saver.sessions[0]
	if !snap.OfferSlotGranted {
		t.Fatalf("snapshot lost the granted wave 1 slot")
	}

	resumed := newTestEngine(t, nil)
	if err := resumed.ResumeSession(snap); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := resumed.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(resumed, 10)
	v := resumed.View()
	if v.Stats.Wave != 1 || len(v.PowerUps.Offer) != 0 {
		t.Fatalf("resumed wave 1 should not offer again: wave %d offer %v", v.Stats.Wave, v.PowerUps.Offer)
	}
	if got := resumed.session.Snapshot(testEpoch); got.OfferSlotGranted {
		t.Fatalf("slot should be consumed after wave 1")
	}
}

func TestLeakResetsCombo(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	insertEnemy(e.session, grid.Pos{X: 1, Y: 0}, 1)
	runFor(e, 1)
	v := e.View()
	if v.Stats.Combo != 1 || len(v.Entities.Enemies) != 0 {
		t.Fatalf("combo %d enemies %d, want one kill", v.Stats.Combo, len(v.Entities.Enemies))
	}

	leaker := insertEnemy(e.session, grid.Pos{X: 3, Y: 0}, 1_000_000)
	e.session.ECS.Paths[leaker].Index = len(e.session.ECS.Paths[leaker].Cells)
	e.Update(0.05)
	v = e.View()
	if v.Stats.Combo != 0 {
		t.Fatalf("combo after a leak = %d, want 0", v.Stats.Combo)
	}
	if v.Stats.Lives != 19 {
		t.Fatalf("lives = %d, want 19", v.Stats.Lives)
	}
}

func TestKillsPayRewardAndCombo(t *testing.T) {
	e := startEngine(t, "long", SessionOptions{Seed: 3})
	c := counter{}
	e.Subscribe(event.EnemyKilled, c)
	e.Subscribe(event.EnemyLeaked, c)
	for x := 2; x <= 4; x++ {
		if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: x, Y: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 15)

	v := e.View()
	kills, leaks := c[event.EnemyKilled], c[event.EnemyLeaked]
	if kills+leaks != 5 {
		t.Fatalf("kills %d + leaks %d != 5", kills, leaks)
	}
	if kills == 0 {
		t.Fatalf("three arrow towers should kill something")
	}
	if v.Stats.Money != 350+5*kills {
		t.Fatalf("money = %d, want %d", v.Stats.Money, 350+5*kills)
	}
	if v.Stats.Lives != 20-leaks || v.Stats.Score <= 0 {
		t.Fatalf("lives %d score %d", v.Stats.Lives, v.Stats.Score)
	}
	if leaks == 0 && v.Stats.Combo != kills {
		t.Fatalf("combo = %d, want %d", v.Stats.Combo, kills)
	}
}

func TestLosingEndsTheGame(t *testing.T) {
	saver := &fakeSaver{}
	e := newTestEngine(t, saver)
	var result *event.GameOverData
	var earned []int
	e.OnGameOver(func(r event.GameOverData) { result = &r })
	e.OnEarnTechPoints(func(n int) { earned = append(earned, n) })
	if err := e.StartSession("fragile", SessionOptions{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 10)

	v := e.View()
	if v.Stats.Status != "lost" || v.Stats.Lives != 0 {
		t.Fatalf("status %s lives %d", v.Stats.Status, v.Stats.Lives)
	}
	if len(v.Entities.Enemies) != 0 || v.Stats.WaveInProgress {
		t.Fatalf("a lost game must not keep enemies or a wave")
	}
	if result == nil || result.Won {
		t.Fatalf("game over callback = %+v", result)
	}
	if len(earned) != 1 || earned[0] != 0 {
		t.Fatalf("tech points = %v, want [0] for a loss before any wave", earned)
	}
	if saver.clears == 0 {
		t.Fatalf("a finished session must clear its save")
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if err := e.StartWave(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestWinningAwardsStarsAndTechPoints(t *testing.T) {
	e := newTestEngine(t, nil)
	var earned int
	e.OnEarnTechPoints(func(n int) { earned += n })
	if err := e.StartSession("finale", SessionOptions{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 10)

	v := e.View()
	if v.Stats.Status != "won" {
		t.Fatalf("status = %s", v.Stats.Status)
	}
	// 15 of 20 lives left
	if v.Stats.Stars != 2 {
		t.Fatalf("stars = %d, want 2", v.Stats.Stars)
	}
	if earned != config.TechPointsPerWave+config.TechPointsWinBonus {
		t.Fatalf("tech points = %d", earned)
	}
	p := e.Progress()
	if p.TechPoints != earned || p.MapRatings["finale"] != 2 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestShotsScaleWithGameSpeed(t *testing.T) {
	shots := func(speed float64, ticks int) int {
		e := startEngine(t, "corridor", SessionOptions{Seed: 1})
		c := counter{}
		e.Subscribe(event.TowerFired, c)
		e.SetGameSpeed(speed)
		if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 1, Y: 1}); err != nil {
			t.Fatal(err)
		}
		insertEnemy(e.session, grid.Pos{X: 1, Y: 0}, 1_000_000)
		for i := 0; i < ticks; i++ {
			e.Update(0.05)
		}
		return c[event.TowerFired]
	}
	normal, fast := shots(1, 40), shots(2, 40)
	if normal != 4 || fast != 8 {
		t.Fatalf("shots in two wall seconds: x1=%d x2=%d, want 4 and 8", normal, fast)
	}
	if perSim := shots(2, 20); perSim != normal {
		t.Fatalf("same simulated time should fire the same shots: %d vs %d", perSim, normal)
	}
}

func TestPauseFreezesSimulationButNotCommands(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 1)
	e.TogglePause()
	before := e.View()
	runFor(e, 5)
	after := e.View()
	if after.Stats.GameTime != before.Stats.GameTime || len(after.Entities.Enemies) != len(before.Entities.Enemies) {
		t.Fatalf("paused session advanced")
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 3, Y: 1}); err != nil {
		t.Fatalf("commands must work while paused: %v", err)
	}
	e.TogglePause()
	runFor(e, 1)
	if e.View().Stats.GameTime <= before.Stats.GameTime {
		t.Fatalf("unpaused session did not advance")
	}
}

func TestGameSpeedIsClamped(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{})
	e.SetGameSpeed(100)
	if got := e.View().Stats.GameSpeed; got != config.MaxGameSpeed {
		t.Fatalf("speed = %v", got)
	}
	e.SetGameSpeed(0)
	if got := e.View().Stats.GameSpeed; got != config.MinGameSpeed {
		t.Fatalf("speed = %v", got)
	}
}

func TestAutoAdvanceStartsNextWave(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1, StartingPowerUp: "sharpened_tips"})
	e.ToggleAutoAdvance()
	runFor(e, config.AutoAdvanceDelay+0.1)
	if !e.View().Stats.WaveInProgress {
		t.Fatalf("auto-advance should have started wave 1")
	}
	runFor(e, 10)
	// Wave 1 done, no offer because the starting power-up used the slot.
	runFor(e, config.AutoAdvanceDelay+0.1)
	v := e.View()
	if v.Stats.Wave != 1 || !v.Stats.WaveInProgress {
		t.Fatalf("wave %d in progress %t, want wave 2 running", v.Stats.Wave, v.Stats.WaveInProgress)
	}
}

func TestQuitInvalidatesTimers(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{Seed: 1})
	e.ToggleAutoAdvance()
	e.Quit()
	e.Quit()
	if err := e.StartWave(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if e.timers.Pending() != 0 {
		t.Fatalf("quit left %d timers", e.timers.Pending())
	}
	if err := e.StartSession("corridor", SessionOptions{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	runFor(e, config.AutoAdvanceDelay+1)
	if e.View().Stats.WaveInProgress {
		t.Fatalf("a timer from the old session started a wave")
	}
}

func TestRestartStartsFreshSession(t *testing.T) {
	saver := &fakeSaver{}
	e := newTestEngine(t, saver)
	if err := e.Restart(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := e.StartSession("corridor", SessionOptions{Seed: 1}); err != nil {
		t.Fatalf("start session: %v", err)
	}
	first := e.View().Stats.SessionID
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if err := e.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	v := e.View()
	if v.Stats.SessionID == first || len(v.Entities.Towers) != 0 || v.Stats.Money != 500 {
		t.Fatalf("restart did not reset: %+v", v.Stats)
	}
	if saver.clears != 1 || len(saver.sessions) != 0 {
		t.Fatalf("restart should discard the old save: clears %d saves %d", saver.clears, len(saver.sessions))
	}
	if got := e.Energy().Energy; got != config.BaseMaxEnergy-2*config.SessionEnergyCost {
		t.Fatalf("energy = %v", got)
	}
}

func TestPurchaseEnergy(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{})
	if err := e.PurchaseEnergy(); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if got := e.Energy().Energy; got != config.BaseMaxEnergy {
		t.Fatalf("energy = %v, want clamp to max", got)
	}
	if money := e.View().Stats.Money; money != 500-config.EnergyPurchaseCost {
		t.Fatalf("money = %d", money)
	}
	for i := 0; i < 2; i++ {
		if err := e.PurchaseEnergy(); err != nil {
			t.Fatalf("purchase %d: %v", i+2, err)
		}
	}
	// 50 left
	before := e.Energy()
	if err := e.PurchaseEnergy(); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("expected ErrInsufficientGold, got %v", err)
	}
	if e.Energy() != before {
		t.Fatalf("failed purchase changed energy")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	saver := &fakeSaver{}
	e := newTestEngine(t, saver)
	if err := e.StartSession("corridor", SessionOptions{Seed: 5}); err != nil {
		t.Fatalf("start session: %v", err)
	}
	tower, err := e.PlaceTower(defs.TowerFrost, grid.Pos{X: 2, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.UpgradeTower(tower); err != nil {
		t.Fatal(err)
	}
	if err := e.StartWave(); err != nil {
		t.Fatalf("start wave: %v", err)
	}
	runFor(e, 20)
	if len(saver.sessions) != 1 {
		t.Fatalf("wave completion should queue one save, got %d", len(saver.sessions))
	}
	offer := e.View().PowerUps.Offer
	if err := e.SelectPowerUp(offer[0].ID); err != nil {
		t.Fatal(err)
	}
	e.Quit()
	snap := saver.sessions[len(saver.sessions)-1]

	want := snap
	resumed := newTestEngine(t, nil)
	if err := resumed.ResumeSession(snap); err != nil {
		t.Fatalf("resume: %v", err)
	}
	got := resumed.session.Snapshot(testEpoch)
	if got.Money != want.Money || got.Lives != want.Lives || got.Score != want.Score ||
		got.Wave != want.Wave || got.MapID != want.MapID || got.SessionID != want.SessionID {
		t.Fatalf("scalars differ:\n got %+v\nwant %+v", got, want)
	}
	if len(got.Towers) != 1 || got.Towers[0] != want.Towers[0] {
		t.Fatalf("towers = %+v, want %+v", got.Towers, want.Towers)
	}
	if len(got.ActivePowerUps) != len(want.ActivePowerUps) {
		t.Fatalf("power-ups = %+v, want %+v", got.ActivePowerUps, want.ActivePowerUps)
	}
	for i := range want.ActivePowerUps {
		if got.ActivePowerUps[i] != want.ActivePowerUps[i] {
			t.Fatalf("power-up %d = %+v, want %+v", i, got.ActivePowerUps[i], want.ActivePowerUps[i])
		}
	}
	if resumed.Energy().Energy != config.BaseMaxEnergy {
		t.Fatalf("resuming must not cost energy")
	}
}

func TestFailedResumeKeepsLiveSession(t *testing.T) {
	saver := &fakeSaver{}
	e := newTestEngine(t, saver)
	if err := e.StartSession("corridor", SessionOptions{Seed: 1}); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	live := e.View().Stats.SessionID

	cases := []struct {
		snap persist.SessionSnapshot
		want error
	}{
		{persist.SessionSnapshot{Version: persist.SnapshotVersion, MapID: "atlantis", Lives: 3}, ErrUnknownMap},
		{persist.SessionSnapshot{Version: persist.SnapshotVersion, MapID: "corridor", Wave: 20, Lives: 3}, ErrGameOver},
		{persist.SessionSnapshot{Version: persist.SnapshotVersion, MapID: "corridor", Wave: 2, Lives: 0}, ErrGameOver},
	}
	for _, tc := range cases {
		if err := e.ResumeSession(tc.snap); !errors.Is(err, tc.want) {
			t.Fatalf("resume %+v: expected %v, got %v", tc.snap, tc.want, err)
		}
		v := e.View()
		if !v.Active || v.Stats.SessionID != live || len(v.Entities.Towers) != 1 {
			t.Fatalf("failed resume replaced the live session: %+v", v.Stats)
		}
	}
	if len(saver.sessions) != 0 || saver.clears != 0 {
		t.Fatalf("failed resume touched the save slot: saves %d clears %d", len(saver.sessions), saver.clears)
	}
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 3, Y: 1}); err != nil {
		t.Fatalf("live session should still take commands: %v", err)
	}
}

func TestViewIsACopy(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{})
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	v := e.View()
	v.Entities.Towers[0].Level = 99
	v.Economy.Upgrades["x"] = 1
	again := e.View()
	if again.Entities.Towers[0].Level != 1 {
		t.Fatalf("view aliases tower state")
	}
	if _, ok := e.Progress().Upgrades["x"]; ok {
		t.Fatalf("view aliases progress")
	}
}

func TestViewRangeMatchesCombat(t *testing.T) {
	e := startEngine(t, "corridor", SessionOptions{})
	if _, err := e.PlaceTower(defs.TowerBasic, grid.Pos{X: 2, Y: 1}); err != nil {
		t.Fatal(err)
	}
	e.session.PowerUps.Activate(effect.PowerUp{
		DefID:    "shortsight",
		Effect:   effect.Effect{Type: effect.RangeFlat, Value: -10},
		Duration: effect.Duration{Kind: effect.Permanent},
		Stacking: effect.Additive,
	})
	if got := e.View().Entities.Towers[0].Range; got != 0 {
		t.Fatalf("range = %v, want clamp to 0", got)
	}
}
