package domain

import (
	"math/rand"
	"testing"
)

func TestNewCardShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	card, err := NewCard(rng)
	if err != nil {
		t.Fatalf("new card error: %v", err)
	}
	if len(card) != CardSize {
		t.Fatalf("card size = %d, want %d", len(card), CardSize)
	}

	seen := make(map[int]bool, CardSize)
	for _, v := range card {
		if v < 1 || v > NumberPoolSize {
			t.Fatalf("card value %d out of range [1,%d]", v, NumberPoolSize)
		}
		if seen[v] {
			t.Fatalf("duplicate card value %d", v)
		}
		seen[v] = true
	}
}

func TestNewCardVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	first, err := NewCard(rng)
	if err != nil {
		t.Fatalf("new card error: %v", err)
	}
	second, err := NewCard(rng)
	if err != nil {
		t.Fatalf("new card error: %v", err)
	}

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("consecutive cards were identical: %v", first)
	}
}

func TestCardContains(t *testing.T) {
	card := Card{10, 20, 30}
	if !card.Contains(20) {
		t.Fatalf("expected card to contain 20")
	}
	if card.Contains(40) {
		t.Fatalf("did not expect card to contain 40")
	}
}
