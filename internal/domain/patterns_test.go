package domain

import "testing"

// testCard lays values 1..25 over the grid row-major, so the value at grid
// index i is i+1.
func testCard() Card {
	card := make(Card, CardSize)
	for i := range card {
		card[i] = i + 1
	}
	return card
}

func cellValues(indices ...int) []int {
	values := make([]int, len(indices))
	for i, idx := range indices {
		values[i] = idx + 1
	}
	return values
}

func TestCheckNewCompletion(t *testing.T) {
	tests := []struct {
		name        string
		marked      []int
		completed   []int
		wantNew     bool
		wantPattern int
	}{
		{
			name:        "NothingMarked",
			marked:      nil,
			wantNew:     false,
			wantPattern: -1,
		},
		{
			name:        "FourOfFiveIncomplete",
			marked:      cellValues(0, 1, 2, 3),
			wantNew:     false,
			wantPattern: -1,
		},
		{
			name:        "RowZero",
			marked:      cellValues(0, 1, 2, 3, 4),
			wantNew:     true,
			wantPattern: 0,
		},
		{
			name:        "ColumnOne",
			marked:      cellValues(1, 6, 11, 16, 21),
			wantNew:     true,
			wantPattern: 6,
		},
		{
			name:        "ColumnOneAlreadyCredited",
			marked:      cellValues(1, 6, 11, 16, 21),
			completed:   []int{6},
			wantNew:     false,
			wantPattern: -1,
		},
		{
			name:        "MainDiagonal",
			marked:      cellValues(0, 6, 12, 18, 24),
			wantNew:     true,
			wantPattern: 10,
		},
		{
			name:        "AntiDiagonal",
			marked:      cellValues(4, 8, 12, 16, 20),
			wantNew:     true,
			wantPattern: 11,
		},
		{
			name:        "LowestIndexWinsTie",
			marked:      append(cellValues(0, 1, 2, 3, 4), cellValues(5, 10, 15, 20)...),
			wantNew:     true,
			wantPattern: 0,
		},
		{
			name:        "SkipsCompletedToNextNew",
			marked:      append(cellValues(0, 1, 2, 3, 4), cellValues(5, 10, 15, 20)...),
			completed:   []int{0},
			wantNew:     true,
			wantPattern: 5,
		},
	}

	card := testCard()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNew, gotPattern := CheckNewCompletion(card, tt.marked, tt.completed)
			if gotNew != tt.wantNew || gotPattern != tt.wantPattern {
				t.Fatalf("CheckNewCompletion() = (%t, %d), want (%t, %d)", gotNew, gotPattern, tt.wantNew, tt.wantPattern)
			}
		})
	}
}

func TestPatternCount(t *testing.T) {
	if PatternCount != 12 {
		t.Fatalf("pattern count = %d, want 12", PatternCount)
	}
}
