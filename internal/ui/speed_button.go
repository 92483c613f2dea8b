// internal/ui/speed_button.go
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// SpeedButton cycles through the allowed game speeds.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	Speeds        []float64
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32, speeds []float64, stateColors []color.RGBA) *SpeedButton {
	return &SpeedButton{X: x, Y: y, Size: size, Speeds: speeds, StateColors: stateColors}
}

// Sync points the button at the speed the engine reports.
func (b *SpeedButton) Sync(speed float64) {
	for i, s := range b.Speeds {
		if s == speed {
			b.CurrentState = i
			return
		}
	}
}

// Next advances to the following speed and returns it.
func (b *SpeedButton) Next() float64 {
	b.CurrentState = (b.CurrentState + 1) % len(b.Speeds)
	b.LastClickTime = time.Now()
	return b.Speeds[b.CurrentState]
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) Draw(screen *ebiten.Image, face font.Face) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)

	c := b.StateColors[b.CurrentState%len(b.StateColors)]
	height := size * 1.2
	offset := size * 0.8
	for _, shift := range []float32{0, offset} {
		var path vector.Path
		path.MoveTo(b.X-size+shift, b.Y-height/2)
		path.LineTo(b.X+shift, b.Y)
		path.LineTo(b.X-size+shift, b.Y+height/2)
		path.Close()
		fillPath(screen, &path, c)
	}
	label := fmt.Sprintf("x%g", b.Speeds[b.CurrentState])
	text.Draw(screen, label, face, int(b.X-size), int(b.Y+height), color.White)
}

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

func fillPath(screen *ebiten.Image, path *vector.Path, c color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
	screen.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
