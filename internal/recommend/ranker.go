package recommend

import (
	"fmt"
	"math"
	"sort"

	"wastenot/internal/catalog"
)

// DefaultTopN is the number of alternatives returned when the caller does not
// ask for a specific count.
const DefaultTopN = 5

// Alternative pairs a catalog food with its similarity to the query entry,
// formatted as a percentage string ("87.43%").
type Alternative struct {
	FoodName   string `json:"food_name"`
	Similarity string `json:"similarity"`
}

// Rank orders every catalog row by cosine similarity to the entry at
// entryIndex and returns the top topN rows as alternatives. The query's own
// row is excluded by index, so duplicate foods elsewhere in the catalog remain
// eligible even when they match perfectly. Ties sort by catalog order.
//
// The matrix is sanitized at load time, so ranking never fails; a catalog
// with a single entry yields no alternatives.
func Rank(entryIndex int, c *catalog.Catalog, topN int) []Alternative {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if c.Size() <= 1 {
		return []Alternative{}
	}

	query := c.Normalized[entryIndex]

	type scored struct {
		index int
		sim   float64
	}
	ranked := make([]scored, 0, c.Size()-1)
	for i, row := range c.Normalized {
		if i == entryIndex {
			continue
		}
		ranked = append(ranked, scored{index: i, sim: cosine(query, row)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	alternatives := make([]Alternative, len(ranked))
	for i, s := range ranked {
		alternatives[i] = Alternative{
			FoodName:   c.Entries[s.index].FoodName,
			Similarity: fmt.Sprintf("%.2f%%", s.sim*100),
		}
	}
	return alternatives
}

// cosine computes the cosine similarity of two equal-length vectors. With
// non-negative inputs the result lies in [0,1]; a zero-norm vector is treated
// as similar to nothing.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
