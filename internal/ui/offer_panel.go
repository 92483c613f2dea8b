// internal/ui/offer_panel.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/defs"
)

const (
	cardWidth   = 220
	cardHeight  = 120
	cardSpacing = 20
)

var rarityColors = map[defs.Rarity]color.RGBA{
	defs.RarityCommon:    {160, 160, 160, 255},
	defs.RarityRare:      {70, 130, 220, 255},
	defs.RarityEpic:      {160, 80, 200, 255},
	defs.RarityLegendary: {230, 170, 30, 255},
}

// OfferPanel shows the power-up cards offered after a wave.
type OfferPanel struct {
	CenterX, Y float32
	fontFace   font.Face
}

func NewOfferPanel(centerX, y float32, fontFace font.Face) *OfferPanel {
	return &OfferPanel{CenterX: centerX, Y: y, fontFace: fontFace}
}

func (p *OfferPanel) cardRect(i, n int) image.Rectangle {
	total := n*cardWidth + (n-1)*cardSpacing
	x := int(p.CenterX) - total/2 + i*(cardWidth+cardSpacing)
	y := int(p.Y)
	return image.Rect(x, y, x+cardWidth, y+cardHeight)
}

// CardAt returns the power-up id under (x, y).
func (p *OfferPanel) CardAt(offer []app.OfferView, x, y int) (string, bool) {
	for i, o := range offer {
		if image.Pt(x, y).In(p.cardRect(i, len(offer))) {
			return o.ID, true
		}
	}
	return "", false
}

func (p *OfferPanel) Draw(screen *ebiten.Image, offer []app.OfferView) {
	if len(offer) == 0 {
		return
	}
	title := "Choose a power-up (1-3)"
	bounds := text.BoundString(p.fontFace, title)
	text.Draw(screen, title, p.fontFace, int(p.CenterX)-bounds.Dx()/2, int(p.Y)-12, color.White)

	lineHeight := p.fontFace.Metrics().Height.Ceil() + 4
	for i, o := range offer {
		r := p.cardRect(i, len(offer))
		x, y := float32(r.Min.X), float32(r.Min.Y)
		vector.DrawFilledRect(screen, x, y, cardWidth, cardHeight, color.RGBA{20, 20, 30, 230}, false)
		border, ok := rarityColors[o.Rarity]
		if !ok {
			border = color.RGBA{70, 100, 120, 255}
		}
		vector.StrokeRect(screen, x, y, cardWidth, cardHeight, 2, border, false)

		ty := r.Min.Y + lineHeight + 4
		text.Draw(screen, o.Name, p.fontFace, r.Min.X+10, ty, border)
		ty += lineHeight
		text.Draw(screen, string(o.Rarity), p.fontFace, r.Min.X+10, ty, color.RGBA{100, 100, 100, 255})
		for _, line := range wrap(o.Description, (cardWidth-20)/7) {
			ty += lineHeight
			text.Draw(screen, line, p.fontFace, r.Min.X+10, ty, color.White)
		}
	}
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var line []rune
	word := []rune{}
	flush := func() {
		if len(line) > 0 && len(line)+1+len(word) > width {
			lines = append(lines, string(line))
			line = line[:0]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, word...)
		word = word[:0]
	}
	for _, r := range s {
		if r == ' ' {
			flush()
			continue
		}
		word = append(word, r)
	}
	flush()
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
