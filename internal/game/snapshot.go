package game

import (
	"sync/atomic"
	"time"
)

// GameState is a complete immutable snapshot of the simulation, created
// only by Publisher.Publish and never mutated after publication. Any
// number of goroutines may read it concurrently.
type GameState struct {
	Sequence  uint64    `json:"sequence"` // monotonic publish counter
	Timestamp time.Time `json:"timestamp"`
	Tick      uint64    `json:"tick"`

	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Grid       []CellTag  `json:"grid"`  // flat, row-major copy
	Snake      []Position `json:"snake"` // head first
	Food       Position   `json:"food"`
	FoodExists bool       `json:"foodExists"`
	Score      int        `json:"score"`
	GameOver   bool       `json:"gameOver"`
}

// Cell returns the tag at (r, c), or CellWall for off-grid queries,
// mirroring the board contract.
func (s *GameState) Cell(r, c int) CellTag {
	if r < 0 || r >= s.Rows || c < 0 || c >= s.Cols {
		return CellWall
	}
	return s.Grid[r*s.Cols+c]
}

// SnakeLen returns the number of body segments in the snapshot.
func (s *GameState) SnakeLen() int {
	return len(s.Snake)
}

// Publisher hands simulation state to reader goroutines without locks.
//
// It rotates two pre-allocated scratch buffers: Publish copies the current
// simulation facts into the write buffer, atomically stores it as the
// visible snapshot (the atomic store/load pair gives release/acquire
// ordering under the Go memory model), then swaps buffer roles. The buffer
// being overwritten on any publish is the one retired two publishes ago and
// is no longer reachable through the atomic pointer, so a reader that loads
// the current snapshot never observes a buffer mid-mutation. Readers are
// expected to consume a snapshot within a tick of loading it.
//
// Latest never blocks and never allocates; Publish runs only on the
// simulation goroutine and reuses the grid and segment slices every tick.
type Publisher struct {
	current  atomic.Pointer[GameState]
	write    *GameState
	spare    *GameState
	sequence uint64
}

// NewPublisher pre-allocates both scratch buffers for a rows x cols board.
// Until the first Publish, Latest returns a dedicated zero-value snapshot
// that never enters the write rotation.
func NewPublisher(rows, cols int) *Publisher {
	capacity := rows * cols
	newBuf := func() *GameState {
		return &GameState{
			Rows:  rows,
			Cols:  cols,
			Grid:  make([]CellTag, 0, capacity),
			Snake: make([]Position, 0, capacity),
		}
	}

	p := &Publisher{
		write: newBuf(),
		spare: newBuf(),
	}
	p.current.Store(&GameState{Rows: rows, Cols: cols})
	return p
}

// Publish copies the simulation facts into the write buffer and makes it
// the visible snapshot. Exactly one Publish happens per tick; it is the
// single externally observable commit point of the simulation.
func (p *Publisher) Publish(b *Board, s *Snake, f *FoodManager, tick uint64, score int, gameOver bool) *GameState {
	snap := p.write
	p.sequence++

	snap.Sequence = p.sequence
	snap.Timestamp = time.Now()
	snap.Tick = tick
	snap.Rows = b.Rows()
	snap.Cols = b.Cols()
	snap.Grid = append(snap.Grid[:0], b.Grid()...)
	snap.Snake = append(snap.Snake[:0], s.Body()...)
	snap.Food = f.Position()
	snap.FoodExists = f.Present()
	snap.Score = score
	snap.GameOver = gameOver

	p.current.Store(snap)
	p.write, p.spare = p.spare, snap
	return snap
}

// Latest returns the currently visible snapshot. Wait-free, single atomic
// load, callable from any goroutine.
func (p *Publisher) Latest() *GameState {
	return p.current.Load()
}
