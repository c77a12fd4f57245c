package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"wastenot/internal/catalog"
)

const majorNutrientCount = 5

// NutrientReport names an entry's normalized nutrient profile on a 0-100
// scale and summarizes its strongest nutrients.
type NutrientReport struct {
	Nutrients map[string]float64
	Message   string
}

// Report scales the entry's normalized vector to percentages (two decimals)
// keyed by nutrient name, and builds the "major nutrients" sentence from the
// five highest values. Positions past the end of the name list fall back to a
// positional key so the report never truncates the vector.
func Report(entryIndex int, c *catalog.Catalog) NutrientReport {
	vec := c.Normalized[entryIndex]

	type nutrient struct {
		name  string
		value float64
	}

	nutrients := make([]nutrient, len(vec))
	named := make(map[string]float64, len(vec))
	for i, v := range vec {
		name := fmt.Sprintf("column_%d", i)
		if i < len(c.NutrientNames) {
			name = c.NutrientNames[i]
		}
		pct := math.Round(v*100*100) / 100
		nutrients[i] = nutrient{name: name, value: pct}
		named[name] = pct
	}

	sort.SliceStable(nutrients, func(i, j int) bool {
		return nutrients[i].value > nutrients[j].value
	})

	count := majorNutrientCount
	if count > len(nutrients) {
		count = len(nutrients)
	}
	major := make([]string, count)
	for i := 0; i < count; i++ {
		major[i] = nutrients[i].name
	}

	return NutrientReport{
		Nutrients: named,
		Message:   "Major nutrients considered: " + strings.Join(major, ", "),
	}
}
