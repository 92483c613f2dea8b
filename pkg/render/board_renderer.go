// pkg/render/board_renderer.go
package render

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BoardRenderer draws a square-cell board. The static background is
// pre-rendered and rebuilt only when the layout rows change.
type BoardRenderer struct {
	cellSize         float64
	offsetX, offsetY float64
	colors           MapColors
	rows             []string
	mapImage         *ebiten.Image
}

func NewBoardRenderer(cellSize, offsetX, offsetY float64, colors MapColors) *BoardRenderer {
	return &BoardRenderer{cellSize: cellSize, offsetX: offsetX, offsetY: offsetY, colors: colors}
}

// CellSize is the side of one cell in pixels.
func (r *BoardRenderer) CellSize() float64 { return r.cellSize }

// ToScreen converts a continuous cell position (cell centres at integers)
// to screen pixels.
func (r *BoardRenderer) ToScreen(x, y float64) (float32, float32) {
	return float32(r.offsetX + (x+0.5)*r.cellSize), float32(r.offsetY + (y+0.5)*r.cellSize)
}

// CellAt converts a screen pixel to the cell under it. ok is false outside
// the board.
func (r *BoardRenderer) CellAt(px, py int) (x, y int, ok bool) {
	if len(r.rows) == 0 {
		return 0, 0, false
	}
	x = int(math.Floor((float64(px) - r.offsetX) / r.cellSize))
	y = int(math.Floor((float64(py) - r.offsetY) / r.cellSize))
	if y < 0 || y >= len(r.rows) || x < 0 || x >= len(r.rows[y]) {
		return 0, 0, false
	}
	return x, y, true
}

// SetLayout rebuilds the background if rows differ from the cached layout.
func (r *BoardRenderer) SetLayout(rows []string) {
	if r.mapImage != nil && slices.Equal(rows, r.rows) {
		return
	}
	r.rows = slices.Clone(rows)
	if len(rows) == 0 {
		r.mapImage = nil
		return
	}
	w := int(math.Ceil(float64(len(rows[0])) * r.cellSize))
	h := int(math.Ceil(float64(len(rows)) * r.cellSize))
	if r.mapImage != nil {
		r.mapImage.Deallocate()
	}
	r.mapImage = ebiten.NewImage(w+1, h+1)
	r.renderMapImage()
}

func (r *BoardRenderer) renderMapImage() {
	r.mapImage.Clear()
	size := float32(r.cellSize)
	for y, row := range r.rows {
		for x, ch := range row {
			c := r.colors.BuildableColor
			switch ch {
			case '#':
				c = r.colors.BlockedColor
			case 'S':
				c = r.colors.StartColor
			case 'G':
				c = r.colors.GoalColor
			}
			px, py := float32(x)*size, float32(y)*size
			vector.DrawFilledRect(r.mapImage, px, py, size, size, c, false)
			vector.StrokeRect(r.mapImage, px, py, size, size, r.colors.StrokeWidth, r.colors.GridLineColor, false)
		}
	}
}

// Draw paints the background and the board.
func (r *BoardRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.colors.BackgroundColor)
	if r.mapImage == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.offsetX, r.offsetY)
	screen.DrawImage(r.mapImage, op)
}
