package similarity

const (
	swMatch    = 2
	swMismatch = -1
	swGap      = -1
)

// SmithWaterman returns the best local-alignment score of a and b
// (match +2, mismatch -1, gap -1, floored at 0) divided by max(len(a), len(b)).
// Identical strings therefore score 2.0; two empty strings score 0.
func SmithWaterman(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	maxLen := max(len(runesA), len(runesB))
	if maxLen == 0 {
		return 0
	}

	prevRow := make([]int, len(runesB)+1)
	currRow := make([]int, len(runesB)+1)
	best := 0

	for i := 1; i <= len(runesA); i++ {
		currRow[0] = 0
		for j := 1; j <= len(runesB); j++ {
			diag := prevRow[j-1] + swMismatch
			if runesA[i-1] == runesB[j-1] {
				diag = prevRow[j-1] + swMatch
			}
			score := max(0, diag, prevRow[j]+swGap, currRow[j-1]+swGap)
			currRow[j] = score
			if score > best {
				best = score
			}
		}
		prevRow, currRow = currRow, prevRow
	}

	return float64(best) / float64(maxLen)
}
