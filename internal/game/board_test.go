package game

import "testing"

func TestBoardBounds(t *testing.T) {
	b := NewBoard(5, 7)

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"origin", Position{0, 0}, true},
		{"far corner", Position{4, 6}, true},
		{"negative row", Position{-1, 3}, false},
		{"negative col", Position{3, -1}, false},
		{"row overflow", Position{5, 0}, false},
		{"col overflow", Position{0, 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.InBounds(tt.pos); got != tt.want {
				t.Errorf("InBounds(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestBoardWallSentinel(t *testing.T) {
	b := NewBoard(3, 3)

	// Off-grid queries degrade to CellWall instead of failing
	if got := b.Cell(Position{-1, 0}); got != CellWall {
		t.Errorf("Cell off-grid = %v, want CellWall", got)
	}
	if got := b.Cell(Position{3, 3}); got != CellWall {
		t.Errorf("Cell off-grid = %v, want CellWall", got)
	}
	if got := b.Cell(Position{1, 1}); got != CellEmpty {
		t.Errorf("Cell in bounds = %v, want CellEmpty", got)
	}
}

func TestBoardSetCell(t *testing.T) {
	b := NewBoard(4, 4)

	b.SetCell(Position{2, 3}, CellFood)
	if got := b.Cell(Position{2, 3}); got != CellFood {
		t.Errorf("Cell after SetCell = %v, want CellFood", got)
	}

	// Out-of-bounds writes are dropped, not applied elsewhere
	b.SetCell(Position{-1, -1}, CellSnake)
	b.SetCell(Position{4, 0}, CellSnake)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if r == 2 && c == 3 {
				continue
			}
			if got := b.Cell(Position{r, c}); got != CellEmpty {
				t.Errorf("Cell(%d,%d) = %v after OOB writes, want CellEmpty", r, c, got)
			}
		}
	}
}

func TestBoardEmptyCells(t *testing.T) {
	b := NewBoard(2, 2)

	empty := b.EmptyCells(nil)
	if len(empty) != 4 {
		t.Fatalf("expected 4 empty cells, got %d", len(empty))
	}

	b.SetCell(Position{0, 0}, CellSnake)
	b.SetCell(Position{1, 1}, CellFood)
	empty = b.EmptyCells(empty[:0])
	if len(empty) != 2 {
		t.Fatalf("expected 2 empty cells, got %d", len(empty))
	}
	for _, pos := range empty {
		if b.Cell(pos) != CellEmpty {
			t.Errorf("EmptyCells returned non-empty position %v", pos)
		}
	}
}

func TestBoardReset(t *testing.T) {
	b := NewBoard(3, 3)
	b.SetCell(Position{1, 1}, CellSnake)
	b.Reset()

	if got := b.Cell(Position{1, 1}); got != CellEmpty {
		t.Errorf("Cell after Reset = %v, want CellEmpty", got)
	}
}

func TestRenderSymbol(t *testing.T) {
	tests := []struct {
		tag  CellTag
		want byte
	}{
		{CellEmpty, ' '},
		{CellSnake, 'O'},
		{CellFood, '*'},
		{CellWall, '#'},
	}

	for _, tt := range tests {
		if got := RenderSymbol(tt.tag); got != tt.want {
			t.Errorf("RenderSymbol(%v) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
