package recommend

import (
	"errors"
	"strings"

	"wastenot/internal/catalog"
)

// MatchThreshold is the minimum name-similarity ratio a catalog entry must
// reach before a query is considered resolved.
const MatchThreshold = 0.6

var (
	// ErrEmptyQuery rejects empty or whitespace-only food names
	ErrEmptyQuery = errors.New("food name must not be empty")
	// ErrNotFound means no catalog name cleared the match threshold
	ErrNotFound = errors.New("food not found")
)

// Match is the outcome of resolving a free-text food name: the catalog row
// index and the original-cased catalog name.
type Match struct {
	Index int
	Name  string
}

// Resolve maps a free-text query onto the closest-named catalog entry using a
// case-insensitive block-matching ratio. The first entry in catalog order wins
// on a tied ratio. Returns ErrNotFound when nothing reaches the threshold.
//
// The empty-query check belongs to the HTTP boundary, but is repeated here so
// the matcher is safe on its own.
func Resolve(query string, c *catalog.Catalog) (Match, error) {
	if strings.TrimSpace(query) == "" {
		return Match{}, ErrEmptyQuery
	}

	q := []rune(strings.ToLower(query))

	best := Match{Index: -1}
	bestRatio := 0.0
	for i, entry := range c.Entries {
		r := matchRatio(q, []rune(strings.ToLower(entry.FoodName)))
		if r > bestRatio {
			bestRatio = r
			best = Match{Index: i, Name: entry.FoodName}
		}
	}

	if best.Index < 0 || bestRatio < MatchThreshold {
		return Match{}, ErrNotFound
	}
	return best, nil
}

// matchRatio relates the total length of all common contiguous blocks of a
// and b to their combined length: 2*M / (len(a)+len(b)), in [0,1]. Unlike an
// edit-distance similarity it rewards long shared substrings, which changes
// which entry wins on near-ties; keep it block-based.
func matchRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2 * float64(matchedLen(a, b)) / float64(total)
}

// matchedLen sums the longest common block of a and b with the matches found
// by recursing on the unmatched left and right remainders.
func matchedLen(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedLen(a[:ai], b[:bi]) +
		matchedLen(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest contiguous run of runes shared by a
// and b, returning its start in each string and its length. Earlier starts
// win on equal length.
func longestCommonBlock(a, b []rune) (bestA, bestB, bestSize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] is the length of the common run ending at a[i-1], b[j-1]
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0 // lengths[j-1] from the previous row
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > bestSize {
					bestSize = lengths[j]
					bestA = i - bestSize
					bestB = j - bestSize
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return bestA, bestB, bestSize
}
