package game

// Position is a cell coordinate on the board (row-major).
// It has no identity of its own and is copied by value everywhere.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellTag identifies what occupies a single board cell.
type CellTag int

const (
	CellEmpty CellTag = iota
	CellSnake
	CellFood
	CellWall
)

// RenderSymbol maps a cell tag to its display character.
// Consumed by external renderers; the core never prints.
func RenderSymbol(tag CellTag) byte {
	switch tag {
	case CellSnake:
		return 'O'
	case CellFood:
		return '*'
	case CellWall:
		return '#'
	default:
		return ' '
	}
}

// Board is the rows x cols grid of cell tags. It is owned and mutated
// exclusively by the simulation goroutine inside a single Update call,
// so it carries no synchronization of its own.
type Board struct {
	grid []CellTag // flat, row-major
	rows int
	cols int
}

// NewBoard creates an all-empty board with fixed dimensions.
func NewBoard(rows, cols int) *Board {
	return &Board{
		grid: make([]CellTag, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// Reset clears every cell back to CellEmpty.
func (b *Board) Reset() {
	for i := range b.grid {
		b.grid[i] = CellEmpty
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether pos lies on the grid.
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

// Cell returns the tag at pos, or CellWall for any out-of-bounds query.
// Callers cannot distinguish a placed wall from off-grid; that conflation
// is part of the board contract.
func (b *Board) Cell(pos Position) CellTag {
	if !b.InBounds(pos) {
		return CellWall
	}
	return b.grid[pos.Row*b.cols+pos.Col]
}

// SetCell writes a tag at pos. Out-of-bounds writes are dropped.
func (b *Board) SetCell(pos Position, tag CellTag) {
	if !b.InBounds(pos) {
		return
	}
	b.grid[pos.Row*b.cols+pos.Col] = tag
}

// EmptyCells appends every CellEmpty position to buf and returns it.
// Passing a reused buffer keeps food placement allocation-free.
func (b *Board) EmptyCells(buf []Position) []Position {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.grid[r*b.cols+c] == CellEmpty {
				buf = append(buf, Position{Row: r, Col: c})
			}
		}
	}
	return buf
}

// Grid exposes the backing slice for snapshot copying. Callers must treat
// it as read-only.
func (b *Board) Grid() []CellTag {
	return b.grid
}
