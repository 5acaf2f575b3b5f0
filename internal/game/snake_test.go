package game

import "testing"

func TestSnakeInitLayout(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want []Position
	}{
		{"right extends left", DirRight, []Position{{5, 5}, {5, 4}, {5, 3}}},
		{"left extends right", DirLeft, []Position{{5, 5}, {5, 6}, {5, 7}}},
		{"up extends down", DirUp, []Position{{5, 5}, {6, 5}, {7, 5}}},
		{"down extends up", DirDown, []Position{{5, 5}, {4, 5}, {3, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 10)
			s := NewSnake()
			s.Init(Position{5, 5}, 3, tt.dir, b)

			if s.Len() != 3 {
				t.Fatalf("Len = %d, want 3", s.Len())
			}
			for i, want := range tt.want {
				if s.Body()[i] != want {
					t.Errorf("segment %d = %v, want %v", i, s.Body()[i], want)
				}
				if b.Cell(want) != CellSnake {
					t.Errorf("board cell %v not tagged CellSnake", want)
				}
			}
		})
	}
}

func TestSnakeMoveTranslates(t *testing.T) {
	b := NewBoard(10, 10)
	s := NewSnake()
	s.Init(Position{5, 5}, 3, DirRight, b)

	s.Move(Position{5, 6}, b)

	if s.Len() != 3 {
		t.Fatalf("Len after move = %d, want 3", s.Len())
	}
	if s.Head() != (Position{5, 6}) {
		t.Errorf("head = %v, want (5,6)", s.Head())
	}
	// Vacated tail cell is untagged, new head is tagged
	if b.Cell(Position{5, 3}) != CellEmpty {
		t.Errorf("old tail cell still tagged %v", b.Cell(Position{5, 3}))
	}
	if b.Cell(Position{5, 6}) != CellSnake {
		t.Errorf("new head cell tagged %v, want CellSnake", b.Cell(Position{5, 6}))
	}
}

func TestSnakeMoveWithGrowth(t *testing.T) {
	b := NewBoard(10, 10)
	s := NewSnake()
	s.Init(Position{5, 5}, 3, DirRight, b)

	s.Grow(1)
	if !s.HasPendingGrowth() {
		t.Fatal("expected pending growth after Grow")
	}

	s.Move(Position{5, 6}, b)

	if s.Len() != 4 {
		t.Fatalf("Len after growth move = %d, want 4", s.Len())
	}
	if s.HasPendingGrowth() {
		t.Error("growth should be consumed by the move")
	}
	// Tail stays in place on a growth move
	if b.Cell(Position{5, 3}) != CellSnake {
		t.Errorf("tail cell untagged on growth move")
	}
}

func TestSnakeHitsBody(t *testing.T) {
	b := NewBoard(10, 10)
	s := NewSnake()
	s.Init(Position{5, 5}, 3, DirRight, b)

	// The current head is excluded from the check
	if s.HitsBody(Position{5, 5}) {
		t.Error("head position should not count as self collision")
	}
	if !s.HitsBody(Position{5, 4}) {
		t.Error("body segment should count as self collision")
	}
	if !s.HitsBody(Position{5, 3}) {
		t.Error("tail segment should count as self collision")
	}
	if s.HitsBody(Position{5, 6}) {
		t.Error("free cell should not count as self collision")
	}
}

func TestSnakeSegmentsDistinct(t *testing.T) {
	b := NewBoard(10, 10)
	s := NewSnake()
	s.Init(Position{5, 5}, 4, DirRight, b)

	s.Grow(2)
	moves := []Position{{5, 6}, {6, 6}, {6, 5}, {7, 5}}
	for _, m := range moves {
		s.Move(m, b)
		seen := make(map[Position]bool, s.Len())
		for _, seg := range s.Body() {
			if seen[seg] {
				t.Fatalf("duplicate segment %v after move to %v", seg, m)
			}
			seen[seg] = true
		}
	}
}
