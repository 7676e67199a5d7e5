package match

import "strings"

// Similarity scores how close two strings are as 1 - d/max(len a, len b), where d is
// the Levenshtein distance over the lowercased inputs. The score is symmetric and lands
// in [0,1]: identical strings score 1, and a single empty side scores 0 (two empty
// strings are identical).
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes edit distance with a rolling single-row DP.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range a {
		prev := row[0]
		row[0] = i + 1
		for j, cb := range b {
			cost := prev
			if ca != cb {
				cost = min3(prev, row[j+1], row[j]) + 1
			}
			prev = row[j+1]
			row[j+1] = cost
		}
	}
	return row[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
