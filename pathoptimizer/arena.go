package pathoptimizer

import (
	"math"
)

// Arena holds items in the input order and removes them by index.
// Removed slots stay in place, so indices never shift.
type Arena[T any] struct {
	items []T
	alive []bool
	left  int
}

func NewArena[T any](items []T) *Arena[T] {
	retVal := &Arena[T]{
		items: items,
		alive: make([]bool, len(items)),
		left:  len(items),
	}
	for i := range retVal.alive {
		retVal.alive[i] = true
	}
	return retVal
}

// Len returns the number of items not taken yet
func (a *Arena[T]) Len() int {
	return a.left
}

// Take removes the item at index i and returns it
func (a *Arena[T]) Take(i int) T {
	if !a.alive[i] {
		panic("pathoptimizer: item already taken")
	}
	a.alive[i] = false
	a.left--
	return a.items[i]
}

// Closest returns the index of the remaining item with the smallest cost
// and the cost itself. The first item wins on equal costs.
// The index is -1 when the arena is empty.
func (a *Arena[T]) Closest(cost func(T) float64) (int, float64) {
	best := -1
	minCost := math.Inf(1)
	for i := range a.items {
		if !a.alive[i] {
			continue
		}
		if c := cost(a.items[i]); c < minCost || best == -1 {
			minCost = c
			best = i
		}
	}
	return best, minCost
}
