// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	CellSize     = 40.0 // pixels per grid cell in the front end
	BoardOffsetX = 40.0
	BoardOffsetY = 80.0

	MaxDeltaTime = 0.06 // wall-clock seconds a single frame may advance
	SimStep      = 0.05 // largest simulated slice handed to the systems

	MinGameSpeed     = 0.25
	MaxGameSpeed     = 4.0
	AutoAdvanceDelay = 3.0 // simulated seconds between a clear board and the next wave

	// Wave curve
	InitialSpawnInterval    = 800 // ms
	MinSpawnInterval        = 200 // ms
	SpawnIntervalDecrement  = 20  // ms per wave
	BaseEnemiesPerWave      = 5
	EnemiesIncrementPerWave = 2
	MaxEnemiesPerWave       = 40
	RunnerFromWave          = 3
	TankFromWave            = 5
	BossWaveEvery           = 10
	HealthGrowthPerWave     = 0.12
	PowerUpOfferSize        = 3

	// Combat
	ProjectileSpeed  = 8.0  // cells per simulated second
	HitEpsilon       = 0.1  // cells
	BlastRadius      = 1.25 // cells around an area hit
	MaxTowerLevel    = 3
	RefundRatio      = 0.5
	ComboScoreStep   = 0.1 // score bonus per combo point
	CooldownEpsilon  = 1e-9
	MaxParticles     = 4096
	DeathParticleTTL = 0.6 // seconds
	DamageNumberTTL  = 0.8 // seconds
	DamageNumberRise = 0.75

	// Energy economy
	BaseMaxEnergy           = 20.0
	MaxEnergyPerUpgrade     = 5.0
	EnergyRecoveryPerMinute = 0.2 // one unit every five minutes
	SessionEnergyCost       = 5.0
	EnergyPurchaseAmount    = 10.0
	EnergyPurchaseCost      = 150

	// Meta progression
	TechPointsPerWave     = 1
	TechPointsWinBonus    = 10
	ThreeStarLivesRatio   = 0.8
	TwoStarLivesRatio     = 0.4
	StartingMoneyPerLevel = 50
	StartingLivesPerLevel = 2

	DebugServerAddr = "localhost:6060"
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	BuildableColor    = color.RGBA{70, 100, 120, 220}
	BlockedColor      = color.RGBA{150, 70, 70, 220}
	StartColor        = color.RGBA{0, 255, 0, 255}
	GoalColor         = color.RGBA{255, 0, 0, 255}
	TextLightColor    = color.RGBA{240, 240, 240, 255}
	ProjectileColor   = color.RGBA{255, 255, 0, 255}
	DeathBurstColor   = color.RGBA{255, 140, 0, 255}
	PauseOverlayColor = color.RGBA{0, 0, 0, 128}
	HealthBarColor    = color.RGBA{50, 205, 50, 255}
	GameSpeeds        = []float64{1, 2, 4}
)
