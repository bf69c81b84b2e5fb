package similarity

const (
	winklerScale     = 0.1
	winklerMaxPrefix = 4
)

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0,1].
//
// Characters match when equal and within floor(max(len)/2)-1 positions of each other.
// Transpositions are counted by walking both sets of matched characters in order,
// so the score is the textbook Jaro value. The Winkler boost adds
// prefix*0.1*(1-jaro) for up to 4 identical leading characters.
func JaroWinkler(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	j := jaro(runesA, runesB)

	prefix := 0
	for prefix < len(runesA) && prefix < len(runesB) && prefix < winklerMaxPrefix &&
		runesA[prefix] == runesB[prefix] {
		prefix++
	}

	return j + float64(prefix)*winklerScale*(1-j)
}

func jaro(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	window := max(len(a), len(b))/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, len(a))
	matchedB := make([]bool, len(b))
	matches := 0

	for i := range a {
		lo := max(0, i-window)
		hi := min(len(b), i+window+1)
		for j := lo; j < hi; j++ {
			if matchedB[j] || a[i] != b[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Half-transpositions: matched characters that appear in a different order.
	half := 0
	k := 0
	for i := range a {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if a[i] != b[k] {
			half++
		}
		k++
	}

	m := float64(matches)
	t := float64(half) / 2
	return (m/float64(len(a)) + m/float64(len(b)) + (m-t)/m) / 3
}
