package streaming

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"snake-cast/internal/game"
)

// Palette for frame rendering.
var (
	colorBackground = color.RGBA{18, 18, 28, 255}
	colorGridLine   = color.RGBA{34, 34, 48, 255}
	colorSnakeBody  = color.RGBA{72, 199, 116, 255}
	colorSnakeHead  = color.RGBA{140, 235, 170, 255}
	colorFood       = color.RGBA{235, 87, 87, 255}
	colorWall       = color.RGBA{120, 120, 130, 255}
	colorHUDText    = color.RGBA{230, 230, 240, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
)

// Renderer draws board snapshots into an image frame. It is a pure
// function of the snapshot it is given and holds no game state, so it can
// run on any consumer goroutine at its own cadence.
type Renderer struct {
	cellSize int
	margin   int
	rows     int
	cols     int
	dc       *gg.Context
}

// NewRenderer sizes a drawing context for a rows x cols board.
func NewRenderer(rows, cols, cellSize, margin int) *Renderer {
	width := cols*cellSize + 2*margin
	height := rows*cellSize + 2*margin + hudHeight
	return &Renderer{
		cellSize: cellSize,
		margin:   margin,
		rows:     rows,
		cols:     cols,
		dc:       gg.NewContext(width, height),
	}
}

const hudHeight = 28

// Width returns the frame width in pixels.
func (r *Renderer) Width() int { return r.dc.Width() }

// Height returns the frame height in pixels.
func (r *Renderer) Height() int { return r.dc.Height() }

// Render draws snap into the frame and returns the backing image.
// Not safe for concurrent use; each consumer owns its renderer. The
// returned image is valid until the next Render call.
func (r *Renderer) Render(snap *game.GameState) image.Image {
	dc := r.dc

	dc.SetColor(colorBackground)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()

	r.drawGridLines()
	r.drawCells(snap)
	r.drawSnake(snap)
	r.drawHUD(snap)

	if snap.GameOver {
		r.drawGameOverOverlay(snap)
	}

	return dc.Image()
}

func (r *Renderer) cellOrigin(row, col int) (x, y float64) {
	return float64(r.margin + col*r.cellSize), float64(r.margin + row*r.cellSize)
}

func (r *Renderer) drawGridLines() {
	dc := r.dc
	dc.SetColor(colorGridLine)
	dc.SetLineWidth(1)

	left := float64(r.margin)
	top := float64(r.margin)
	right := left + float64(r.cols*r.cellSize)
	bottom := top + float64(r.rows*r.cellSize)

	for c := 0; c <= r.cols; c++ {
		x := left + float64(c*r.cellSize)
		dc.DrawLine(x, top, x, bottom)
		dc.Stroke()
	}
	for row := 0; row <= r.rows; row++ {
		y := top + float64(row*r.cellSize)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()
	}
}

// drawCells paints food and wall tags straight from the grid copy.
// Snake cells are drawn segment by segment in drawSnake so the head can
// get its own color.
func (r *Renderer) drawCells(snap *game.GameState) {
	dc := r.dc
	pad := 2.0

	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			switch snap.Cell(row, col) {
			case game.CellFood:
				x, y := r.cellOrigin(row, col)
				cx := x + float64(r.cellSize)/2
				cy := y + float64(r.cellSize)/2
				dc.SetColor(colorFood)
				dc.DrawCircle(cx, cy, float64(r.cellSize)/2-pad)
				dc.Fill()
			case game.CellWall:
				x, y := r.cellOrigin(row, col)
				dc.SetColor(colorWall)
				dc.DrawRectangle(x, y, float64(r.cellSize), float64(r.cellSize))
				dc.Fill()
			}
		}
	}
}

func (r *Renderer) drawSnake(snap *game.GameState) {
	dc := r.dc
	pad := 1.5

	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		x, y := r.cellOrigin(seg.Row, seg.Col)
		if i == 0 {
			dc.SetColor(colorSnakeHead)
		} else {
			dc.SetColor(colorSnakeBody)
		}
		dc.DrawRoundedRectangle(x+pad, y+pad, float64(r.cellSize)-2*pad, float64(r.cellSize)-2*pad, 4)
		dc.Fill()
	}
}

func (r *Renderer) drawHUD(snap *game.GameState) {
	dc := r.dc
	y := float64(r.margin+r.rows*r.cellSize) + hudHeight - 8

	dc.SetColor(colorHUDText)
	dc.DrawString(fmt.Sprintf("score %d", snap.Score), float64(r.margin), y)
	dc.DrawStringAnchored(fmt.Sprintf("tick %d", snap.Tick),
		float64(dc.Width()-r.margin), y, 1, 0)
}

func (r *Renderer) drawGameOverOverlay(snap *game.GameState) {
	dc := r.dc
	w := float64(dc.Width())
	h := float64(dc.Height())

	dc.SetColor(colorOverlay)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(colorHUDText)
	dc.DrawStringAnchored("GAME OVER", w/2, h/2-10, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("final score %d", snap.Score), w/2, h/2+10, 0.5, 0.5)
}
