package game

import "math/rand"

// FoodManager tracks the single active food item. At most one food cell
// exists at a time; when the board is full no food is placed, which is how
// the win condition surfaces to the engine.
type FoodManager struct {
	pos     Position
	exists  bool
	rng     *rand.Rand
	scratch []Position // reused empty-cell buffer
}

// NewFoodManager creates a food manager drawing from the engine's RNG.
func NewFoodManager(rng *rand.Rand) *FoodManager {
	return &FoodManager{rng: rng}
}

// PlaceRandom puts food on a uniformly random empty cell and reports
// whether placement succeeded. With zero empty cells the existence flag is
// cleared and placement fails.
func (f *FoodManager) PlaceRandom(b *Board) bool {
	f.scratch = b.EmptyCells(f.scratch[:0])
	if len(f.scratch) == 0 {
		f.exists = false
		return false
	}

	f.pos = f.scratch[f.rng.Intn(len(f.scratch))]
	b.SetCell(f.pos, CellFood)
	f.exists = true
	return true
}

// Remove untags the current food cell and clears existence.
func (f *FoodManager) Remove(b *Board) {
	if !f.exists {
		return
	}
	b.SetCell(f.pos, CellEmpty)
	f.exists = false
}

func (f *FoodManager) Position() Position { return f.pos }
func (f *FoodManager) Present() bool      { return f.exists }
