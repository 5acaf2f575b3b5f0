package game

// Stateless collision predicates over board, snake and food state.
// Pure functions, no side effects, no shared-state concerns.
//
// OutOfBounds and HitsWall are deliberately separate entry points even
// though the board conflates the two today (Cell returns CellWall off
// grid); an in-bounds obstacle type can split them later without touching
// call sites.

// OutOfBounds reports whether pos falls outside the grid.
func OutOfBounds(pos Position, b *Board) bool {
	return !b.InBounds(pos)
}

// HitsWall reports whether pos carries a wall tag.
func HitsWall(pos Position, b *Board) bool {
	return b.Cell(pos) == CellWall
}

// HitsFood reports whether pos is the current food position.
func HitsFood(pos Position, f *FoodManager) bool {
	return f.Present() && pos == f.Position()
}
