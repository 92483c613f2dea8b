// internal/app/view.go
package app

import (
	"time"

	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/economy"
	"grid-tower-defense/internal/effect"
	"grid-tower-defense/internal/system"
	"grid-tower-defense/internal/types"
)

// View is an immutable copy of everything a front end reads. Nothing in it
// aliases engine state.
type View struct {
	Active   bool         `json:"active"`
	Stats    StatsView    `json:"stats"`
	Grid     GridView     `json:"grid"`
	Entities EntitiesView `json:"entities"`
	Economy  EconomyView  `json:"economy"`
	PowerUps PowerUpsView `json:"powerUps"`
}

type StatsView struct {
	SessionID      string  `json:"sessionId"`
	MapID          string  `json:"mapId"`
	Status         string  `json:"status"`
	Wave           int     `json:"wave"`
	MaxWaves       int     `json:"maxWaves"`
	WaveInProgress bool    `json:"waveInProgress"`
	NextWaveIsBoss bool    `json:"nextWaveIsBoss"`
	Money          int     `json:"money"`
	Lives          int     `json:"lives"`
	StartingLives  int     `json:"startingLives"`
	Score          int     `json:"score"`
	Combo          int     `json:"combo"`
	Stars          int     `json:"stars"`
	Paused         bool    `json:"paused"`
	GameSpeed      float64 `json:"gameSpeed"`
	AutoAdvance    bool    `json:"autoAdvance"`
	GameTime       float64 `json:"gameTime"`
}

type GridView struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

type TowerView struct {
	ID       types.EntityID `json:"id"`
	Type     defs.TowerType `json:"type"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Level    int            `json:"level"`
	Invested int            `json:"invested"`
	Cooldown float64        `json:"cooldown"`
	Range    float64        `json:"range"`
}

type EnemyView struct {
	ID     types.EntityID `json:"id"`
	Type   defs.EnemyType `json:"type"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Health int            `json:"health"`
	Max    int            `json:"maxHealth"`
	Slowed bool           `json:"slowed"`
}

type ProjectileView struct {
	ID types.EntityID `json:"id"`
	X  float64        `json:"x"`
	Y  float64        `json:"y"`
}

type EntitiesView struct {
	Towers      []TowerView          `json:"towers"`
	Enemies     []EnemyView          `json:"enemies"`
	Projectiles []ProjectileView     `json:"projectiles"`
	Particles   []component.Particle `json:"-"`
}

type EconomyView struct {
	Energy            float64        `json:"energy"`
	MaxEnergy         float64        `json:"maxEnergy"`
	TimeUntilNextUnit time.Duration  `json:"timeUntilNextUnit"`
	TechPoints        int            `json:"techPoints"`
	Upgrades          map[string]int `json:"upgrades"`
	MapRatings        map[string]int `json:"mapRatings"`
}

type OfferView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rarity      defs.Rarity `json:"rarity"`
}

type PowerUpsView struct {
	Active    []effect.PowerUp              `json:"active"`
	Offer     []OfferView                   `json:"offer"`
	Modifiers map[effect.EffectType]float64 `json:"modifiers"`
}

// view builds the session part of a View.
func (s *Session) view(v *View) {
	v.Active = true
	v.Stats = StatsView{
		SessionID:      s.ID.String(),
		MapID:          s.Map.ID,
		Status:         s.Status.String(),
		Wave:           s.Wave,
		MaxWaves:       s.MaxWaves,
		WaveInProgress: s.WaveInProgress(),
		NextWaveIsBoss: s.NextWaveIsBoss(),
		Money:          s.Money,
		Lives:          s.Lives,
		StartingLives:  s.StartingLives,
		Score:          s.Score(),
		Combo:          s.Combo,
		Stars:          s.Stars,
		Paused:         s.isPaused,
		GameSpeed:      s.gameSpeed,
		AutoAdvance:    s.autoAdvance,
		GameTime:       s.ECS.GameTime,
	}
	v.Grid = GridView{Width: s.Grid.Width, Height: s.Grid.Height, Rows: s.Grid.Rows()}

	rangeMult := s.PowerUps.Multiplier(effect.Range)
	rangeFlat := s.PowerUps.Aggregate(effect.RangeFlat)
	for _, id := range s.ECS.TowerIDs() {
		t := s.ECS.Towers[id]
		tv := TowerView{ID: id, Type: t.Type, X: t.Cell.X, Y: t.Cell.Y, Level: t.Level, Invested: t.Invested}
		if c, ok := s.ECS.Combats[id]; ok {
			tv.Cooldown = c.Cooldown
			tv.Range = system.EffectiveRange(c.Range, rangeMult, rangeFlat)
		}
		v.Entities.Towers = append(v.Entities.Towers, tv)
	}
	for _, id := range s.ECS.EnemyIDs() {
		e := s.ECS.Enemies[id]
		ev := EnemyView{ID: id, Type: e.Type}
		if pos, ok := s.ECS.Positions[id]; ok {
			ev.X, ev.Y = pos.X, pos.Y
		}
		if h, ok := s.ECS.Healths[id]; ok {
			ev.Health, ev.Max = h.Value, h.Max
		}
		_, ev.Slowed = s.ECS.SlowEffects[id]
		v.Entities.Enemies = append(v.Entities.Enemies, ev)
	}
	for _, id := range s.ECS.ProjectileIDs() {
		if pos, ok := s.ECS.Positions[id]; ok {
			v.Entities.Projectiles = append(v.Entities.Projectiles, ProjectileView{ID: id, X: pos.X, Y: pos.Y})
		}
	}
	s.ECS.Particles.Each(func(p component.Particle) {
		v.Entities.Particles = append(v.Entities.Particles, p)
	})

	v.PowerUps.Active = s.PowerUps.Active()
	v.PowerUps.Modifiers = make(map[effect.EffectType]float64, len(effect.EffectTypes))
	for _, t := range effect.EffectTypes {
		if t.IsGrant() {
			continue
		}
		if agg := s.PowerUps.Aggregate(t); agg != 0 {
			v.PowerUps.Modifiers[t] = agg
		}
	}
	for _, defID := range s.PendingOffer {
		def, ok := s.Catalog.PowerUp(defID)
		if !ok {
			continue
		}
		v.PowerUps.Offer = append(v.PowerUps.Offer, OfferView{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Rarity:      def.Rarity,
		})
	}
}

func economyView(p economy.Progress, now time.Time) EconomyView {
	e := economy.Materialize(p, now)
	p = p.Clone()
	return EconomyView{
		Energy:            e.Energy,
		MaxEnergy:         e.MaxEnergy,
		TimeUntilNextUnit: economy.TimeUntilNextUnit(p, now),
		TechPoints:        p.TechPoints,
		Upgrades:          p.Upgrades,
		MapRatings:        p.MapRatings,
	}
}
