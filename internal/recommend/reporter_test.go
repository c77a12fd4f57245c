package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/internal/catalog"
)

func TestReport_NamedPercentages(t *testing.T) {
	c := testCatalog(t)

	report := Report(2, c) // Chicken Breast: max energy and protein

	require.Len(t, report.Nutrients, 4)
	assert.Equal(t, 100.0, report.Nutrients["Energy"])
	assert.Equal(t, 100.0, report.Nutrients["Protein"])
	assert.Equal(t, 0.0, report.Nutrients["Carbs"])

	for name, value := range report.Nutrients {
		assert.GreaterOrEqual(t, value, 0.0, name)
		assert.LessOrEqual(t, value, 100.0, name)
	}
}

func TestReport_MajorNutrientsMessage(t *testing.T) {
	src := strings.Join([]string{
		"food_code,desc,A,B,C,D,E,F",
		"F001,Low,0,0,0,0,0,0",
		"F002,Probe,10,60,20,50,40,30",
		"F003,High,100,100,100,100,100,100",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	report := Report(1, c)

	// Top five by normalized value, descending; the weakest column drops off
	assert.Equal(t, "Major nutrients considered: B, D, E, F, C", report.Message)
}

func TestReport_Rounding(t *testing.T) {
	src := strings.Join([]string{
		"food_code,desc,Energy",
		"F001,Low,0",
		"F002,Probe,1",
		"F003,High,3",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	// 1/3 of range scaled to 100 rounds to 33.33
	report := Report(1, c)
	assert.Equal(t, 33.33, report.Nutrients["Energy"])
}

func TestReport_NameOverflowFallsBackToPositionalKey(t *testing.T) {
	c := &catalog.Catalog{
		Entries:       []catalog.Entry{{FoodCode: "F001", FoodName: "Probe"}},
		NutrientNames: []string{"Energy"},
		Raw:           [][]float64{{10, 20}},
		Normalized:    [][]float64{{0.1, 0.2}},
	}

	report := Report(0, c)

	require.Len(t, report.Nutrients, 2)
	assert.Equal(t, 10.0, report.Nutrients["Energy"])
	assert.Equal(t, 20.0, report.Nutrients["column_1"])
}
