// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator shows the wave number in Roman numerals, red before a boss.
type WaveIndicator struct {
	X, Y         float32
	Color        color.Color
	BossColor    color.Color
	OutlineColor color.Color
}

func NewWaveIndicator(x, y float32) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        color.RGBA{70, 130, 220, 255},
		BossColor:    color.RGBA{220, 40, 40, 255},
		OutlineColor: color.White,
	}
}

// ToRoman converts a positive integer to Roman numerals.
func ToRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw renders the upcoming wave number.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, wave int, boss bool) {
	label := ToRoman(wave)
	if label == "" {
		return
	}
	c := i.Color
	if boss {
		c = i.BossColor
	}
	bounds := text.BoundString(face, label)
	x := int(i.X) - bounds.Dx()/2
	y := int(i.Y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				text.Draw(screen, label, face, x+dx, y+dy, i.OutlineColor)
			}
		}
	}
	text.Draw(screen, label, face, x, y, c)
}
