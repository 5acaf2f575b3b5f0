package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"
)

// Config holds the parameters a round is played with.
type Config struct {
	Rows             int
	Cols             int
	StartLength      int
	PointsPerFood    int
	InitialDirection Direction
	TickRate         int // simulation ticks per second
}

// DefaultConfig returns the stock 20x20 board at 10 TPS.
func DefaultConfig() Config {
	return Config{
		Rows:             20,
		Cols:             20,
		StartLength:      3,
		PointsPerFood:    10,
		InitialDirection: DirRight,
		TickRate:         10,
	}
}

// Validate rejects degenerate parameters before they can corrupt board
// invariants. The starting body extends opposite the initial heading from
// the centered head, so its tail must land on the grid.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.StartLength < 1 {
		return fmt.Errorf("starting length must be at least 1, got %d", c.StartLength)
	}
	if c.PointsPerFood < 0 {
		return fmt.Errorf("points per food must not be negative, got %d", c.PointsPerFood)
	}
	if c.TickRate < 1 {
		return fmt.Errorf("tick rate must be at least 1, got %d", c.TickRate)
	}
	if c.InitialDirection == DirNone {
		return fmt.Errorf("initial direction must not be none")
	}

	head := Position{Row: c.Rows / 2, Col: c.Cols / 2}
	tail := head
	switch c.InitialDirection {
	case DirRight:
		tail.Col -= c.StartLength - 1
	case DirLeft:
		tail.Col += c.StartLength - 1
	case DirUp:
		tail.Row += c.StartLength - 1
	case DirDown:
		tail.Row -= c.StartLength - 1
	}
	if tail.Row < 0 || tail.Row >= c.Rows || tail.Col < 0 || tail.Col >= c.Cols {
		return fmt.Errorf("starting length %d does not fit behind the centered head on a %dx%d board",
			c.StartLength, c.Rows, c.Cols)
	}
	return nil
}

// Engine is the simulation orchestrator. It owns the board, snake, food,
// direction controller and publisher exclusively; every mutation happens on
// the simulation goroutine inside one Update call. Cross-goroutine traffic
// is limited to the direction mailbox, the published snapshot and the
// reset-request flag, all single-slot atomics. No mutex anywhere.
type Engine struct {
	cfg Config

	board     *Board
	snake     *Snake
	food      *FoodManager
	dirs      *DirectionController
	publisher *Publisher
	eventLog  *EventLog

	rng     *rand.Rand
	rngSeed int64

	score     int
	gameOver  bool
	tickCount uint64

	// Tick loop
	running      atomic.Bool
	resetPending atomic.Bool
	ticker       *time.Ticker
	stopChan     chan struct{}
}

// NewEngine builds an engine, lays out the first round and publishes its
// initial snapshot. Reproducibility is not a goal: the RNG is seeded once
// from the wall clock.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:       cfg,
		board:     NewBoard(cfg.Rows, cfg.Cols),
		snake:     NewSnake(),
		food:      NewFoodManager(rng),
		dirs:      NewDirectionController(),
		publisher: NewPublisher(cfg.Rows, cfg.Cols),
		eventLog:  NewEventLog(),
		rng:       rng,
		rngSeed:   seed,
	}
	e.resetRound()
	return e, nil
}

// resetRound re-initializes every component for a fresh round and publishes
// the first snapshot. Runs on the simulation goroutine (or before Start).
func (e *Engine) resetRound() {
	e.score = 0
	e.gameOver = false
	e.tickCount = 0

	e.board.Reset()
	e.dirs.Reset(e.cfg.InitialDirection)

	start := Position{Row: e.cfg.Rows / 2, Col: e.cfg.Cols / 2}
	e.snake.Init(start, e.cfg.StartLength, e.cfg.InitialDirection, e.board)

	e.food.PlaceRandom(e.board)
	e.publish()

	e.eventLog.EmitSimple(EventTypeRoundStart, e.tickCount, RoundStartPayload{
		Rows:        e.cfg.Rows,
		Cols:        e.cfg.Cols,
		StartLength: e.cfg.StartLength,
		Direction:   e.cfg.InitialDirection.String(),
		RNGSeed:     e.rngSeed,
	})
}

// SetDirection stores a requested heading in the input mailbox.
// Non-blocking, callable from any goroutine.
func (e *Engine) SetDirection(dir Direction) {
	e.dirs.SetInput(dir)
}

// RequestReset asks the tick loop to start a new round before its next
// update. Callable from any goroutine; the reset itself runs on the
// simulation goroutine to preserve single-writer discipline.
func (e *Engine) RequestReset() {
	e.resetPending.Store(true)
}

// Update advances the simulation by one discrete tick and reports whether
// the game continues. Exactly one snapshot is published per call; that
// publish is the tick's single externally observable commit point.
// On a terminal state Update is an idempotent no-op.
func (e *Engine) Update() bool {
	if e.gameOver {
		return false
	}

	e.tickCount++

	before := e.dirs.Heading()
	e.dirs.ProcessInput()
	if after := e.dirs.Heading(); after != before {
		e.eventLog.EmitSimple(EventTypeDirectionApplied, e.tickCount, DirectionPayload{
			From: before.String(),
			To:   after.String(),
		})
	}

	newHead := e.dirs.NextPosition(e.snake.Head())

	// Terminal checks, each ending the tick with a published terminal
	// snapshot. Order: off-grid, wall tag, self collision.
	if OutOfBounds(newHead, e.board) {
		return e.endRound(ReasonOutOfBounds)
	}
	if HitsWall(newHead, e.board) {
		return e.endRound(ReasonWall)
	}
	if e.snake.HitsBody(newHead) {
		return e.endRound(ReasonSelfCollision)
	}

	// Food pickup resolves before the move is applied.
	if HitsFood(newHead, e.food) {
		e.snake.Grow(1)
		e.score += e.cfg.PointsPerFood
		e.food.Remove(e.board)
		e.eventLog.EmitSimple(EventTypeFoodEaten, e.tickCount, FoodPayload{
			Row:      newHead.Row,
			Col:      newHead.Col,
			Score:    e.score,
			SnakeLen: e.snake.Len() + 1,
		})
	}

	e.snake.Move(newHead, e.board)

	if !e.food.Present() {
		e.food.PlaceRandom(e.board)
	}

	// Board saturated with no growth owed: nothing left to play for.
	if !e.food.Present() && !e.snake.HasPendingGrowth() {
		return e.endRound(ReasonBoardFull)
	}

	e.publish()
	e.eventLog.EmitSimple(EventTypeTick, e.tickCount, TickPayload{
		Score:    e.score,
		SnakeLen: e.snake.Len(),
	})
	return true
}

func (e *Engine) endRound(reason string) bool {
	e.gameOver = true
	e.publish()
	e.eventLog.EmitSimple(EventTypeGameOver, e.tickCount, GameOverPayload{
		Reason: reason,
		Score:  e.score,
		Ticks:  e.tickCount,
	})
	return false
}

func (e *Engine) publish() {
	e.publisher.Publish(e.board, e.snake, e.food, e.tickCount, e.score, e.gameOver)
}

// Start begins the tick loop. Idempotent.
func (e *Engine) Start() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))
	e.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case <-e.ticker.C:
				if e.resetPending.Swap(false) {
					e.resetRound()
					continue
				}
				e.Update()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🐍 Snake engine started at %d TPS on a %dx%d board", e.cfg.TickRate, e.cfg.Rows, e.cfg.Cols)
}

// Stop halts the tick loop. Safe to call twice.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.ticker.Stop()
	close(e.stopChan)
	log.Println("🛑 Snake engine stopped")
}

// Snapshot returns the latest published immutable snapshot. Wait-free,
// callable from any goroutine; this is the render-facing read path.
func (e *Engine) Snapshot() *GameState {
	return e.publisher.Latest()
}

// Convenience accessors, all implemented as snapshot reads.

func (e *Engine) Rows() int        { return e.Snapshot().Rows }
func (e *Engine) Cols() int        { return e.Snapshot().Cols }
func (e *Engine) Score() int       { return e.Snapshot().Score }
func (e *Engine) IsGameOver() bool { return e.Snapshot().GameOver }

// CellType returns the snapshot tag at (r, c), CellWall off grid.
func (e *Engine) CellType(r, c int) CellTag {
	return e.Snapshot().Cell(r, c)
}

// Config returns the engine's round configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}
