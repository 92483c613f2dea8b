// internal/ui/energy_indicator.go
package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	energyBarWidth  = 160
	energyBarHeight = 12
	borderWidth     = 1
	starRectSize    = 12
	starRectGap     = 6
)

var (
	energyFillColor = color.RGBA{70, 100, 120, 220}
	starFillColor   = color.RGBA{230, 200, 40, 255}
	borderColor     = color.White
)

// EnergyIndicator shows the energy bar and, below it, a star rating.
type EnergyIndicator struct {
	X, Y float32
}

func NewEnergyIndicator(x, y float32) *EnergyIndicator {
	return &EnergyIndicator{X: x, Y: y}
}

func (i *EnergyIndicator) Draw(screen *ebiten.Image, face font.Face, energy, maxEnergy float64, next time.Duration, stars int) {
	vector.StrokeRect(screen, i.X, i.Y, energyBarWidth, energyBarHeight, borderWidth, borderColor, true)
	ratio := 0.0
	if maxEnergy > 0 {
		ratio = min(1, energy/maxEnergy)
	}
	if w := float32(float64(energyBarWidth-borderWidth*2) * ratio); w > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, w, energyBarHeight-borderWidth*2, energyFillColor, true)
	}
	label := fmt.Sprintf("Energy %.0f/%.0f", energy, maxEnergy)
	if next > 0 {
		label += fmt.Sprintf(" (+1 in %s)", next.Round(time.Second))
	}
	text.Draw(screen, label, face, int(i.X)+energyBarWidth+8, int(i.Y)+energyBarHeight-2, color.White)

	rectY := i.Y + energyBarHeight + 8
	for j := 0; j < 3; j++ {
		x := i.X + float32(j)*(starRectSize+starRectGap)
		vector.StrokeRect(screen, x, rectY, starRectSize, starRectSize, borderWidth, borderColor, true)
		if j < stars {
			vector.DrawFilledRect(screen, x+borderWidth, rectY+borderWidth, starRectSize-borderWidth*2, starRectSize-borderWidth*2, starFillColor, true)
		}
	}
}
