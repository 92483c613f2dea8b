// internal/ui/lives_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	livesCols          = 10
	livesCircleRadius  = 6.0
	livesCircleSpacing = 3.0
)

// LivesIndicator draws remaining lives as a grid of circles.
type LivesIndicator struct {
	X, Y float32
}

func NewLivesIndicator(x, y float32) *LivesIndicator {
	return &LivesIndicator{X: x, Y: y}
}

// Draw fills one circle per life left. The lower half of the bar turns red.
func (i *LivesIndicator) Draw(screen *ebiten.Image, face font.Face, lives, startingLives int) {
	total := max(lives, startingLives)
	half := startingLives / 2
	step := float32(livesCircleRadius*2 + livesCircleSpacing)
	for j := 0; j < total; j++ {
		x := i.X + float32(j%livesCols)*step + livesCircleRadius
		y := i.Y + float32(j/livesCols)*step + livesCircleRadius

		var c color.Color = color.Black
		if j < lives {
			c = color.RGBA{60, 120, 230, 255}
			if lives <= half {
				c = color.RGBA{220, 40, 40, 255}
			}
		}
		vector.DrawFilledCircle(screen, x, y, livesCircleRadius, c, true)
		vector.StrokeCircle(screen, x, y, livesCircleRadius, 1, color.White, true)
	}
	text.Draw(screen, fmt.Sprintf("%d/%d", lives, startingLives), face, int(i.X), int(i.Y)-6, color.White)
}
