package domain

// patterns are the 12 winning lines over the 5x5 grid, in credit order:
// rows 0-4, columns 5-9, diagonals 10-11.
var patterns = [12][5]int{
	{0, 1, 2, 3, 4}, {5, 6, 7, 8, 9}, {10, 11, 12, 13, 14}, {15, 16, 17, 18, 19}, {20, 21, 22, 23, 24},
	{0, 5, 10, 15, 20}, {1, 6, 11, 16, 21}, {2, 7, 12, 17, 22}, {3, 8, 13, 18, 23}, {4, 9, 14, 19, 24},
	{0, 6, 12, 18, 24}, {4, 8, 12, 16, 20},
}

// PatternCount is the number of winning lines on a card.
const PatternCount = len(patterns)

// MaxCompletedLines caps how many lines earn a BINGO letter.
const MaxCompletedLines = 5

// CheckNewCompletion scans the pattern table in index order and returns the
// first fully marked pattern that is not already in completed. Only one new
// pattern is reported per call; callers that want every simultaneous
// completion credited must call again with the updated completed set.
func CheckNewCompletion(card Card, marked []int, completed []int) (bool, int) {
	for i, pattern := range patterns {
		if containsInt(completed, i) {
			continue
		}
		satisfied := true
		for _, cell := range pattern {
			if !containsInt(marked, card[cell]) {
				satisfied = false
				break
			}
		}
		if satisfied {
			return true, i
		}
	}
	return false, -1
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
