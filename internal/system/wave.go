// internal/system/wave.go
package system

import (
	"log"
	"math"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/entity"
	"grid-tower-defense/internal/event"
	"grid-tower-defense/pkg/grid"
)

// WaveSystem builds wave schedules and spawns their enemies on simulated
// time.
type WaveSystem struct {
	ecs             *entity.ECS
	grid            *grid.Grid
	catalog         *defs.Catalog
	eventDispatcher *event.Dispatcher
}

func NewWaveSystem(ecs *entity.ECS, g *grid.Grid, catalog *defs.Catalog, eventDispatcher *event.Dispatcher) *WaveSystem {
	return &WaveSystem{
		ecs:             ecs,
		grid:            g,
		catalog:         catalog,
		eventDispatcher: eventDispatcher,
	}
}

// IsBossWave reports whether wave n carries a boss.
func IsBossWave(n int) bool {
	return n > 0 && n%config.BossWaveEvery == 0
}

// SpawnInterval is the gap between two spawns of wave n, in ms.
func SpawnInterval(n int) int {
	interval := config.InitialSpawnInterval - config.SpawnIntervalDecrement*(n-1)
	if interval < config.MinSpawnInterval {
		return config.MinSpawnInterval
	}
	return interval
}

// EnemyCount is the number of regular enemies of wave n.
func EnemyCount(n int) int {
	count := config.BaseEnemiesPerWave + config.EnemiesIncrementPerWave*(n-1)
	if count > config.MaxEnemiesPerWave {
		return config.MaxEnemiesPerWave
	}
	return count
}

// HealthScale is the health multiplier applied to every enemy of wave n.
func HealthScale(n int) float64 {
	return 1 + config.HealthGrowthPerWave*float64(n-1)
}

// Schedule returns the spawn list of wave n. Count, mix and health grow
// monotonically with n; boss waves end with a boss.
func Schedule(n int) []component.SpawnEntry {
	if n < 1 {
		n = 1
	}
	count := EnemyCount(n)
	interval := SpawnInterval(n)
	entries := make([]component.SpawnEntry, 0, count+1)
	for i := 0; i < count; i++ {
		enemyType := defs.EnemyGrunt
		switch {
		case n >= config.TankFromWave && i%5 == 4:
			enemyType = defs.EnemyTank
		case n >= config.RunnerFromWave && i%3 == 2:
			enemyType = defs.EnemyRunner
		}
		entries = append(entries, component.SpawnEntry{EnemyType: enemyType, OffsetMs: i * interval})
	}
	if IsBossWave(n) {
		entries = append(entries, component.SpawnEntry{EnemyType: defs.EnemyBoss, OffsetMs: count * interval})
	}
	return entries
}

// StartWave installs wave n as the active wave.
func (s *WaveSystem) StartWave(n int) *component.Wave {
	wave := &component.Wave{
		Number:      n,
		Boss:        IsBossWave(n),
		Schedule:    Schedule(n),
		HealthScale: HealthScale(n),
	}
	s.ecs.Wave = wave
	log.Printf("Wave %d started: %d enemies, boss=%t", n, len(wave.Schedule), wave.Boss)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Wave: n, Boss: wave.Boss}})
	return wave
}

// Update spawns every entry whose offset has been reached.
func (s *WaveSystem) Update(deltaTime float64) {
	wave := s.ecs.Wave
	if wave == nil || wave.FullySpawned() {
		return
	}
	wave.Elapsed += deltaTime
	elapsedMs := wave.Elapsed * 1000
	for !wave.FullySpawned() {
		entry := wave.Schedule[wave.Spawned]
		if float64(entry.OffsetMs) > elapsedMs+1e-6 {
			break
		}
		s.spawnEnemy(wave, entry)
		wave.Spawned++
	}
}

// IsWaveComplete reports whether the active wave is fully spawned and none of
// its enemies is alive.
func (s *WaveSystem) IsWaveComplete() bool {
	wave := s.ecs.Wave
	if wave == nil || !wave.FullySpawned() {
		return false
	}
	for _, enemy := range s.ecs.Enemies {
		if enemy.Wave == wave.Number {
			return false
		}
	}
	return true
}

func (s *WaveSystem) spawnEnemy(wave *component.Wave, entry component.SpawnEntry) {
	def, ok := s.catalog.Enemy(entry.EnemyType)
	if !ok {
		log.Printf("Error: enemy definition not found for type: %s", entry.EnemyType)
		return
	}
	starts := s.grid.Starts()
	start := starts[wave.NextStart%len(starts)]
	wave.NextStart++

	cells := grid.NearestGoalPath(s.grid, start, s.ecs.BlockedCells())
	if cells == nil {
		log.Printf("No route from %s to any goal; enemy leaks on arrival", start)
		cells = []grid.Pos{start}
	}

	hp := int(math.Round(float64(def.Health) * wave.HealthScale))
	if hp < 1 {
		hp = 1
	}
	id := s.ecs.NewEntity()
	pos := component.CellCenter(start)
	s.ecs.Positions[id] = &pos
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.Paths[id] = &component.Path{Cells: cells, Index: 0}
	s.ecs.Healths[id] = &component.Health{Value: hp, Max: hp}
	s.ecs.Enemies[id] = &component.Enemy{
		Type:   def.ID,
		Armor:  def.Armor,
		Reward: def.Reward,
		Wave:   wave.Number,
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{ID: id, Type: def.ID, Reward: def.Reward}})
}
