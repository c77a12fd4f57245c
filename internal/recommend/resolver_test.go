package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	src := strings.Join([]string{
		"food_code,desc,Energy,Protein,Fat,Carbs",
		"F001,Apple,52,0.3,0.2,14",
		"F002,Banana,89,1.1,0.3,23",
		"F003,Chicken Breast,165,31,3.6,0",
		"F004,Chicken Thigh,209,26,10.9,0",
		"F005,White Rice,130,2.7,0.3,28",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)
	return c
}

func TestResolve_ExactNameAnyCase(t *testing.T) {
	c := testCatalog(t)

	for _, query := range []string{"Apple", "apple", "APPLE", "aPpLe"} {
		match, err := Resolve(query, c)
		require.NoError(t, err, "query %q", query)
		assert.Equal(t, 0, match.Index)
		assert.Equal(t, "Apple", match.Name, "original casing must be returned")
	}
}

func TestResolve_CloseName(t *testing.T) {
	c := testCatalog(t)

	match, err := Resolve("chicken brest", c)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Breast", match.Name)
}

func TestResolve_NotFound(t *testing.T) {
	c := testCatalog(t)

	_, err := Resolve("ZzzNotAFood123", c)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_EmptyQuery(t *testing.T) {
	c := testCatalog(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := Resolve(query, c)
		assert.ErrorIs(t, err, ErrEmptyQuery, "query %q", query)
	}
}

func TestResolve_TieKeepsCatalogOrder(t *testing.T) {
	src := strings.Join([]string{
		"food_code,desc,Energy",
		"F001,abcx,10",
		"F002,abcy,20",
	}, "\n")
	c, err := catalog.LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	// "abc" scores 6/7 against both names; the first entry must win
	match, err := Resolve("abc", c)
	require.NoError(t, err)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, "abcx", match.Name)
}

func TestMatchRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"abcd", "abcd", 1.0},
		{"abcd", "bcde", 0.75}, // block "bcd"
		{"abcd", "wxyz", 0.0},
		{"", "", 0.0},
		{"ab", "", 0.0},
		// blocks "ab" and "cd" across a gap: 2*4/9
		{"abxcd", "abcd", 2 * 4.0 / 9.0},
	}

	for _, tc := range cases {
		got := matchRatio([]rune(tc.a), []rune(tc.b))
		assert.InDelta(t, tc.want, got, 1e-12, "matchRatio(%q, %q)", tc.a, tc.b)
	}
}

func TestLongestCommonBlock(t *testing.T) {
	ai, bi, size := longestCommonBlock([]rune("foo bar baz"), []rune("qux bar quux"))
	assert.Equal(t, 3, ai)
	assert.Equal(t, 3, bi)
	assert.Equal(t, 5, size) // " bar "
}
