// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/config"
	"grid-tower-defense/internal/defs"
	"grid-tower-defense/internal/types"
)

const (
	panelHeight    = 130
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 220
)

// PanelAction is what a click on the info panel asks for.
type PanelAction int

const (
	PanelNone PanelAction = iota
	PanelUpgrade
	PanelSell
)

// InfoPanel slides up from the bottom with details about the selected tower.
type InfoPanel struct {
	IsVisible     bool
	TargetEntity  types.EntityID
	fontFace      font.Face
	titleFontFace font.Face
	currentY      float64
	targetY       float64
	UpgradeButton *Button
	SellButton    *Button
}

func NewInfoPanel(font font.Face, titleFont font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace:      font,
		titleFontFace: titleFont,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
		UpgradeButton: NewButton(image.Rectangle{}, "Upgrade"),
		SellButton:    NewButton(image.Rectangle{}, "Sell"),
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether (x, y) falls on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Update animates the panel and drops the target if the tower is gone.
func (p *InfoPanel) Update(v *app.View) {
	if p.TargetEntity != 0 && findTower(v, p.TargetEntity) == nil {
		p.Hide()
	}
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		switch {
		case math.Abs(diff) < animationSpeed:
			p.currentY = p.targetY
		case diff > 0:
			p.currentY += animationSpeed
		default:
			p.currentY -= animationSpeed
		}
		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetEntity = 0
		}
	}
}

// Click maps a click inside the panel to an action.
func (p *InfoPanel) Click(x, y int) PanelAction {
	if !p.IsVisible || p.TargetEntity == 0 {
		return PanelNone
	}
	switch {
	case p.UpgradeButton.Clicked(x, y):
		return PanelUpgrade
	case p.SellButton.Clicked(x, y):
		return PanelSell
	}
	return PanelNone
}

func findTower(v *app.View, id types.EntityID) *app.TowerView {
	for i := range v.Entities.Towers {
		if v.Entities.Towers[i].ID == id {
			return &v.Entities.Towers[i]
		}
	}
	return nil
}

func (p *InfoPanel) Draw(screen *ebiten.Image, v *app.View, catalog *defs.Catalog) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}
	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	tower := findTower(v, p.TargetEntity)
	if tower == nil {
		return
	}
	def, ok := catalog.Tower(tower.Type)
	if !ok {
		return
	}
	startX, y := panelRect.Min.X+15, panelRect.Min.Y+15+lineHeight
	text.Draw(screen, fmt.Sprintf("%s (level %d)", def.Name, tower.Level), p.titleFontFace, startX, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Damage: %d", def.Damage*tower.Level), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Range: %.2f", tower.Range), p.fontFace, startX+columnSpacing, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Fire interval: %.2fs", def.FireInterval), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Effect: %s", def.HitEffect), p.fontFace, startX+columnSpacing, y, config.TextLightColor)

	btnWidth, btnHeight := 150, 36
	p.SellButton.Rect = image.Rect(panelRect.Max.X-btnWidth-20, panelRect.Max.Y-btnHeight-20, panelRect.Max.X-20, panelRect.Max.Y-20)
	p.SellButton.Text = fmt.Sprintf("Sell +%d", int(math.Round(float64(tower.Invested)*config.RefundRatio)))
	p.UpgradeButton.Rect = p.SellButton.Rect.Sub(image.Pt(btnWidth+20, 0))
	if tower.Level >= config.MaxTowerLevel {
		p.UpgradeButton.Text = "Max level"
		p.UpgradeButton.Disabled = true
	} else {
		cost := def.UpgradeCost(tower.Level)
		p.UpgradeButton.Text = fmt.Sprintf("Upgrade %d", cost)
		p.UpgradeButton.Disabled = v.Stats.Money < cost
	}
	p.UpgradeButton.Draw(screen, p.fontFace)
	p.SellButton.Draw(screen, p.fontFace)
}
