package game

// Snake tracks the ordered body segments, head at index 0, plus a counter
// of segments still owed from eaten food. Mutated only by the simulation
// goroutine.
type Snake struct {
	body          []Position
	growthPending int
}

// NewSnake returns an empty snake; Init lays out the body.
func NewSnake() *Snake {
	return &Snake{body: make([]Position, 0, 16)}
}

// Init lays out length segments extending opposite the initial heading
// from head, tagging each on the board. Callers are responsible for
// bounding length so the tail stays on the grid; off-grid segments would
// silently lose their board tag (SetCell drops them).
func (s *Snake) Init(head Position, length int, dir Direction, b *Board) {
	s.body = s.body[:0]
	s.growthPending = 0

	for i := 0; i < length; i++ {
		seg := head
		switch dir {
		case DirRight:
			seg.Col -= i
		case DirLeft:
			seg.Col += i
		case DirUp:
			seg.Row += i
		case DirDown:
			seg.Row -= i
		}
		s.body = append(s.body, seg)
		b.SetCell(seg, CellSnake)
	}
}

// Move pushes newHead to the front. With growth pending the tail stays put
// (net growth); otherwise the tail segment is popped and untagged (net
// translation). The body is transiently inconsistent inside this call,
// which is atomic from the point of view of every other component.
func (s *Snake) Move(newHead Position, b *Board) {
	s.body = append(s.body, Position{})
	copy(s.body[1:], s.body)
	s.body[0] = newHead
	b.SetCell(newHead, CellSnake)

	if s.growthPending > 0 {
		s.growthPending--
		return
	}
	tail := s.body[len(s.body)-1]
	s.body = s.body[:len(s.body)-1]
	b.SetCell(tail, CellEmpty)
}

// Grow schedules n segments of growth, consumed one per Move.
func (s *Snake) Grow(n int) {
	s.growthPending += n
}

// HitsBody reports whether pos collides with any segment other than the
// current head. The head is excluded because the caller is asking about
// a position the head has not reached yet.
func (s *Snake) HitsBody(pos Position) bool {
	for _, seg := range s.body[1:] {
		if seg == pos {
			return true
		}
	}
	return false
}

func (s *Snake) Head() Position         { return s.body[0] }
func (s *Snake) Body() []Position       { return s.body }
func (s *Snake) Len() int               { return len(s.body) }
func (s *Snake) HasPendingGrowth() bool { return s.growthPending > 0 }
