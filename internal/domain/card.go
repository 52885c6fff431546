package domain

import (
	"fmt"
	"math/rand"
)

const (
	// CardSize is the number of cells on a bingo card (5x5, row-major).
	CardSize = 25
	// GridWidth is the number of cells per row or column.
	GridWidth = 5
	// NumberPoolSize is the upper bound of the callable number range [1,NumberPoolSize].
	NumberPoolSize = 100
)

// Card holds the 25 distinct cell values of one player's card, read row-major.
// Immutable once generated.
type Card []int

// NewCard draws CardSize distinct values from [1,NumberPoolSize] without
// replacement using the provided rng.
func NewCard(rng *rand.Rand) (Card, error) {
	if CardSize > NumberPoolSize {
		return nil, fmt.Errorf("card size %d exceeds number pool %d", CardSize, NumberPoolSize)
	}

	card := make(Card, 0, CardSize)
	used := make(map[int]bool, CardSize)
	for len(card) < CardSize {
		n := rng.Intn(NumberPoolSize) + 1
		if used[n] {
			continue
		}
		used[n] = true
		card = append(card, n)
	}
	return card, nil
}

// Contains reports whether the card holds the given value.
func (c Card) Contains(number int) bool {
	for _, v := range c {
		if v == number {
			return true
		}
	}
	return false
}
