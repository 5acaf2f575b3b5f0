package game

import "sync/atomic"

// Direction is a movement heading. DirNone is a sentinel meaning
// "no pending change" in the input mailbox.
type Direction int32

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirNone
)

// String returns the lowercase name used on the wire and in events.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection decodes a wire direction name. The bool is false for
// anything unrecognized, including "none".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return DirNone, false
	}
}

// opposite reports whether a and b are a forbidden 180-degree reversal pair.
func opposite(a, b Direction) bool {
	switch {
	case a == DirUp && b == DirDown:
		return true
	case a == DirDown && b == DirUp:
		return true
	case a == DirLeft && b == DirRight:
		return true
	case a == DirRight && b == DirLeft:
		return true
	}
	return false
}

// DirectionController owns the current heading and a single-slot atomic
// mailbox for pending input. SetInput may be called from any goroutine;
// everything else belongs to the simulation goroutine.
//
// The mailbox is last-writer-wins on purpose: two key presses between
// consecutive ticks collapse to the most recent one. Do not turn it into
// a queue, that changes observable behavior.
type DirectionController struct {
	mailbox atomic.Int32
	heading Direction // simulation goroutine only
}

// NewDirectionController returns a controller with an empty mailbox and
// no heading.
func NewDirectionController() *DirectionController {
	c := &DirectionController{heading: DirNone}
	c.mailbox.Store(int32(DirNone))
	return c
}

// Reset sets the heading for a new round and clears any stale input.
func (c *DirectionController) Reset(initial Direction) {
	c.heading = initial
	c.mailbox.Store(int32(DirNone))
}

// SetInput stores a requested heading in the mailbox. Non-blocking,
// callable from any goroutine, overwrites any unconsumed request.
// Validity is adjudicated at consumption time, not here.
func (c *DirectionController) SetInput(dir Direction) {
	c.mailbox.Store(int32(dir))
}

// ProcessInput atomically takes and clears the mailbox, then applies the
// request to the heading unless it is empty or a 180-degree reversal of
// the current heading. Called once per tick by the simulation goroutine.
func (c *DirectionController) ProcessInput() {
	requested := Direction(c.mailbox.Swap(int32(DirNone)))
	if requested != DirNone && !opposite(c.heading, requested) {
		c.heading = requested
	}
}

// Heading returns the current heading.
func (c *DirectionController) Heading() Direction {
	return c.heading
}

// NextPosition applies the current heading's unit offset to pos.
// DirNone yields pos unchanged.
func (c *DirectionController) NextPosition(pos Position) Position {
	switch c.heading {
	case DirUp:
		pos.Row--
	case DirDown:
		pos.Row++
	case DirLeft:
		pos.Col--
	case DirRight:
		pos.Col++
	}
	return pos
}
