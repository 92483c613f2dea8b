// internal/state/render.go
package state

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/component"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/types"
	"grid-tower-defense/pkg/render"
)

const defaultRadiusFactor = 0.35

// EntityRenderer draws towers, enemies, projectiles and particles from a View.
type EntityRenderer struct {
	board   *render.BoardRenderer
	catalog *defs.Catalog
	face    font.Face
}

func NewEntityRenderer(board *render.BoardRenderer, catalog *defs.Catalog, face font.Face) *EntityRenderer {
	return &EntityRenderer{board: board, catalog: catalog, face: face}
}

func (r *EntityRenderer) radius(v defs.Visuals) float32 {
	f := v.RadiusFactor
	if f <= 0 {
		f = defaultRadiusFactor
	}
	return float32(f * r.board.CellSize())
}

func (r *EntityRenderer) Draw(screen *ebiten.Image, v *app.View, selected types.EntityID) {
	for _, t := range v.Entities.Towers {
		def, ok := r.catalog.Tower(t.Type)
		if !ok {
			continue
		}
		x, y := r.board.ToScreen(float64(t.X), float64(t.Y))
		radius := r.radius(def.Visuals)
		if t.ID == selected {
			rc := def.Visuals.Color
			rangeColor := color.NRGBA{rc.R, rc.G, rc.B, 120}
			vector.StrokeCircle(screen, x, y, float32(t.Range*r.board.CellSize()), 1.5, rangeColor, true)
		}
		vector.DrawFilledCircle(screen, x, y, radius+2, render.DarkenColor(def.Visuals.Color), true)
		vector.DrawFilledCircle(screen, x, y, radius, def.Visuals.Color, true)
		for lvl := 0; lvl < t.Level; lvl++ {
			px := x - radius + float32(lvl)*5
			vector.DrawFilledRect(screen, px, y+radius+3, 3, 3, color.White, false)
		}
	}

	for _, e := range v.Entities.Enemies {
		def, ok := r.catalog.Enemy(e.Type)
		if !ok {
			continue
		}
		x, y := r.board.ToScreen(e.X, e.Y)
		radius := r.radius(def.Visuals)
		vector.DrawFilledCircle(screen, x, y, radius, def.Visuals.Color, true)
		if e.Slowed {
			vector.StrokeCircle(screen, x, y, radius+1, 2, color.RGBA{120, 180, 255, 255}, true)
		}
		if e.Max > 0 && e.Health < e.Max {
			w := radius * 2
			vector.DrawFilledRect(screen, x-radius, y-radius-6, w, 3, color.RGBA{60, 0, 0, 255}, false)
			vector.DrawFilledRect(screen, x-radius, y-radius-6, w*float32(e.Health)/float32(e.Max), 3, config.HealthBarColor, false)
		}
	}

	for _, p := range v.Entities.Projectiles {
		x, y := r.board.ToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, x, y, 3, config.ProjectileColor, true)
	}

	for _, p := range v.Entities.Particles {
		r.drawParticle(screen, p)
	}
}

func (r *EntityRenderer) drawParticle(screen *ebiten.Image, p component.Particle) {
	fade := 1.0
	if p.Lifetime > 0 {
		fade = p.Remaining / p.Lifetime
	}
	x, y := r.board.ToScreen(p.X, p.Y)
	switch p.Kind {
	case component.ParticleDeathBurst:
		b := config.DeathBurstColor
		c := color.NRGBA{b.R, b.G, b.B, uint8(255 * fade)}
		vector.DrawFilledCircle(screen, x, y, float32(2+3*fade), c, true)
	case component.ParticleDamageNumber:
		t := config.TextLightColor
		c := color.NRGBA{t.R, t.G, t.B, uint8(255 * fade)}
		text.Draw(screen, fmt.Sprint(p.Value), r.face, int(x), int(y), c)
	}
}
