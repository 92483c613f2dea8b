// cmd/game/main.go
package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/debugfeed"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/internal/persist"
	"grid-tower-defense/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func defaultSaveDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "saves"
	}
	return filepath.Join(dir, "grid-tower-defense")
}

func main() {
	catalogPath := flag.String("catalog", "", "catalog JSON file (embedded catalog when empty)")
	saveDir := flag.String("save-dir", defaultSaveDir(), "directory for session and progress saves")
	codecName := flag.String("codec", "json", "save format: json or msgpack")
	debugAddr := flag.String("debug-addr", config.DebugServerAddr, "pprof and debug feed address (empty disables)")
	flag.Parse()

	catalog := defs.Default()
	if *catalogPath != "" {
		c, err := defs.LoadCatalog(*catalogPath)
		if err != nil {
			log.Fatal(err)
		}
		catalog = c
	}

	store, err := persist.NewFileStore(*saveDir, persist.CodecByName(*codecName))
	if err != nil {
		log.Fatal(err)
	}
	saver := persist.NewSaver(store)
	defer saver.Close()

	opts := app.Options{Catalog: catalog, Saver: saver}
	if snap, err := store.LoadProgress(); err == nil {
		progress := snap.Progress()
		opts.Progress = &progress
	} else if !errors.Is(err, persist.ErrNoSavedGame) {
		log.Printf("Failed to load progress, starting fresh: %v", err)
	}
	engine := app.NewEngine(opts)
	engine.OnGameOver(func(r event.GameOverData) {
		log.Printf("Game over: won=%t wave=%d score=%d stars=%d", r.Won, r.Wave, r.Score, r.Stars)
	})

	ctx := &state.Context{
		Engine:  engine,
		Catalog: catalog,
		Store:   store,
		Face:    basicfont.Face7x13,
	}
	if *debugAddr != "" {
		feed := debugfeed.NewHub(engine, debugfeed.Config{})
		for _, t := range []event.EventType{
			event.WaveStarted, event.WaveCompleted, event.EnemyKilled, event.EnemyLeaked,
			event.TowerPlaced, event.TowerUpgraded, event.TowerRemoved,
			event.PowerUpOffered, event.PowerUpSelected, event.GameOver, event.TechPointsEarned,
		} {
			engine.Subscribe(t, feed)
		}
		http.HandleFunc("/debug/feed", feed.Handle)
		ctx.Feed = feed
		go func() {
			log.Println(http.ListenAndServe(*debugAddr, nil))
		}()
	}

	sm := state.NewStateMachine()
	sm.SetState(state.NewMenuState(sm, ctx))
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Grid Tower Defense")
	if err := ebiten.RunGame(game); err != nil {
		engine.Quit()
		saver.Close()
		log.Fatal(err)
	}
	engine.Quit()
}
