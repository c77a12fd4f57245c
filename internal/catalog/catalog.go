package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"wastenot/internal/monitoring"
)

// Entry is one reference food in the nutrition catalog. The food code is an
// opaque identifier and takes no part in similarity ranking.
type Entry struct {
	FoodCode string
	FoodName string
}

// Catalog is the immutable in-memory nutrition table. It is built once from a
// tabular source and never mutated afterwards, so any number of requests may
// read it concurrently without synchronization.
//
// Raw and Normalized are row-aligned with Entries, column-aligned with
// NutrientNames. Every value is finite after construction.
type Catalog struct {
	Entries       []Entry
	NutrientNames []string
	Raw           [][]float64
	Normalized    [][]float64
}

// Size returns the number of catalog entries
func (c *Catalog) Size() int {
	return len(c.Entries)
}

// MalformedDataError reports a nutrition source that cannot be parsed into a
// usable catalog. It is fatal at startup: the service must not run without a
// valid catalog.
type MalformedDataError struct {
	Reason string
}

func (e *MalformedDataError) Error() string {
	return "malformed nutrition data: " + e.Reason
}

// Load reads a nutrition CSV from disk and builds the catalog. The source is
// decoded as Latin-1 so extended characters in food names survive.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open nutrition data: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader builds the catalog from a Latin-1 encoded CSV stream. Column 0 is
// the food code and column 1 the food name; the source's header for column 1
// is known to be unreliable and is always treated as "food_name". The
// remaining headers become the nutrient names.
func LoadReader(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1 // short rows become missing values

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedDataError{Reason: err.Error()}
	}
	if len(records) < 2 {
		return nil, &MalformedDataError{Reason: "no data rows"}
	}

	header := records[0]
	if len(header) < 3 {
		return nil, &MalformedDataError{Reason: "need a food code, a food name and at least one nutrient column"}
	}
	nutrientNames := make([]string, len(header)-2)
	copy(nutrientNames, header[2:])

	cols := len(nutrientNames)
	rows := records[1:]

	entries := make([]Entry, len(rows))
	raw := make([][]float64, len(rows))
	for i, rec := range rows {
		if len(rec) > 0 {
			entries[i].FoodCode = rec[0]
		}
		if len(rec) > 1 {
			entries[i].FoodName = rec[1]
		}

		vec := make([]float64, cols)
		for j := range vec {
			vec[j] = math.NaN() // missing until coerced
			if j+2 < len(rec) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(rec[j+2]), 64); err == nil {
					vec[j] = v
				}
			}
		}
		raw[i] = vec
	}

	imputeColumnMeans(raw)
	if n := sanitize(raw); n > 0 {
		log.Printf("catalog: %d NaN/Inf values remained after imputation, replaced with 0", n)
		monitoring.RecordNumericAnomaly("imputation", n)
	}

	normalized := normalize(raw)
	if n := sanitize(normalized); n > 0 {
		log.Printf("catalog: %d NaN/Inf values remained after normalization, replaced with 0", n)
		monitoring.RecordNumericAnomaly("normalization", n)
	}

	return &Catalog{
		Entries:       entries,
		NutrientNames: nutrientNames,
		Raw:           raw,
		Normalized:    normalized,
	}, nil
}

// imputeColumnMeans replaces missing (NaN) cells with the mean of the present
// values in their column. A column with no present values is imputed with 0.
func imputeColumnMeans(m [][]float64) {
	if len(m) == 0 {
		return
	}
	cols := len(m[0])
	for j := 0; j < cols; j++ {
		var sum float64
		var count int
		for i := range m {
			if !math.IsNaN(m[i][j]) {
				sum += m[i][j]
				count++
			}
		}
		fill := 0.0
		if count > 0 {
			fill = sum / float64(count)
		}
		for i := range m {
			if math.IsNaN(m[i][j]) {
				m[i][j] = fill
			}
		}
	}
}

// normalize min-max scales each column to [0,1]. A zero-variance column keeps
// a denominator of 1, so constant columns stay finite instead of dividing by
// zero.
func normalize(raw [][]float64) [][]float64 {
	out := make([][]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	cols := len(raw[0])

	mins := make([]float64, cols)
	maxs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		mins[j] = math.Inf(1)
		maxs[j] = math.Inf(-1)
	}
	for i := range raw {
		for j, v := range raw[i] {
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}

	denoms := make([]float64, cols)
	for j := 0; j < cols; j++ {
		denoms[j] = maxs[j] - mins[j]
		if denoms[j] == 0 {
			denoms[j] = 1
		}
	}

	for i := range raw {
		vec := make([]float64, cols)
		for j, v := range raw[i] {
			vec[j] = (v - mins[j]) / denoms[j]
		}
		out[i] = vec
	}
	return out
}

// sanitize replaces any remaining NaN/Inf with 0 and returns how many values
// were replaced. The ranking code must never see a non-finite value.
func sanitize(m [][]float64) int {
	var count int
	for i := range m {
		for j, v := range m[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				m[i][j] = 0
				count++
			}
		}
	}
	return count
}
