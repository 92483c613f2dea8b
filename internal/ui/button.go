// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button is a clickable rectangle with a centred label.
type Button struct {
	Rect       image.Rectangle
	Text       string
	TextColor  color.Color
	BgColor    color.RGBA
	HoverColor color.RGBA
	Disabled   bool
}

func NewButton(rect image.Rectangle, label string) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  color.White,
		BgColor:    color.RGBA{60, 80, 100, 255},
		HoverColor: color.RGBA{80, 110, 140, 255},
	}
}

// Contains reports whether a screen point lies on the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Clicked reports whether an enabled button was hit by a click at (x, y).
func (b *Button) Clicked(x, y int) bool {
	return !b.Disabled && b.Contains(x, y)
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face) {
	cx, cy := ebiten.CursorPosition()
	bg := b.BgColor
	if b.Disabled {
		bg = color.RGBA{50, 50, 50, 255}
	} else if b.Contains(cx, cy) {
		bg = b.HoverColor
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{120, 120, 120, 255}, true)

	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(screen, b.Text, face, textX, textY, b.TextColor)
}
