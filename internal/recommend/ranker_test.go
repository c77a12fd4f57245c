package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/internal/catalog"
)

var similarityPattern = regexp.MustCompile(`^\d{1,3}\.\d{2}%$`)

func TestRank_ExcludesQueryRow(t *testing.T) {
	c := testCatalog(t)

	alternatives := Rank(2, c, DefaultTopN)
	require.NotEmpty(t, alternatives)

	for _, alt := range alternatives {
		assert.NotEqual(t, "Chicken Breast", alt.FoodName)
	}
	assert.Len(t, alternatives, c.Size()-1)
}

func TestRank_SimilarityFormat(t *testing.T) {
	c := testCatalog(t)

	for _, alt := range Rank(0, c, DefaultTopN) {
		require.Regexp(t, similarityPattern, alt.Similarity)

		value, err := strconv.ParseFloat(strings.TrimSuffix(alt.Similarity, "%"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 100.0)
	}
}

func TestRank_DuplicateRowIsEligible(t *testing.T) {
	src := strings.Join([]string{
		"food_code,desc,Energy,Protein",
		"F001,Apple,52,0.3",
		"F002,Apple Copy,52,0.3",
		"F003,Banana,89,1.1",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	alternatives := Rank(0, c, DefaultTopN)
	require.Len(t, alternatives, 2)

	// The duplicate of the query row is a legal alternative and ranks first
	assert.Equal(t, "Apple Copy", alternatives[0].FoodName)
	assert.Equal(t, "100.00%", alternatives[0].Similarity)
}

func TestRank_TopNTruncates(t *testing.T) {
	c := testCatalog(t)

	alternatives := Rank(0, c, 2)
	assert.Len(t, alternatives, 2)
}

func TestRank_SingleEntryCatalog(t *testing.T) {
	src := "food_code,desc,Energy\nF001,Apple,52\n"
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Empty(t, Rank(0, c, DefaultTopN))
}

func TestRank_ZeroNormVector(t *testing.T) {
	// The first row is the column minimum everywhere, so it normalizes to the
	// zero vector and is similar to nothing.
	src := strings.Join([]string{
		"food_code,desc,Energy,Protein",
		"F001,Water,0,0",
		"F002,Banana,89,1.1",
		"F003,Chicken,165,31",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	for _, alt := range Rank(0, c, DefaultTopN) {
		assert.Equal(t, "0.00%", alt.Similarity)
	}
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.Equal(t, 0.0, cosine([]float64{0, 0}, []float64{1, 1}))
}
