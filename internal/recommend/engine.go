package recommend

import (
	"wastenot/internal/catalog"
)

// Engine composes name resolution, similarity ranking and nutrient reporting
// into the single- and batch-query operations the API serves. All state lives
// in the catalog store; an Engine is safe for concurrent use.
type Engine struct {
	store *catalog.Store
	topN  int
}

// NewEngine creates an engine serving the given catalog store
func NewEngine(store *catalog.Store) *Engine {
	return &Engine{store: store, topN: DefaultTopN}
}

// Result is the full answer for one resolved food query
type Result struct {
	InputFood        string             `json:"input_food"`
	Nutrients        map[string]float64 `json:"input_food_nutrients"`
	NutrientsMessage string             `json:"nutrients_message"`
	Alternatives     []Alternative      `json:"alternatives"`
}

// MenuItemResult is one element of a batch answer: either a full result or an
// explicit not-found marker carrying the original input.
type MenuItemResult struct {
	InputFood        string             `json:"input_food"`
	Nutrients        map[string]float64 `json:"input_food_nutrients,omitempty"`
	NutrientsMessage string             `json:"nutrients_message,omitempty"`
	Alternatives     []Alternative      `json:"alternatives,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// Find resolves a single food name and returns its nutrient report and
// alternatives. Returns ErrEmptyQuery for blank input and ErrNotFound when no
// catalog name is close enough. The whole call runs against one catalog
// snapshot, so a concurrent reload cannot produce a torn result.
func (e *Engine) Find(query string) (*Result, error) {
	c := e.store.Current()

	match, err := Resolve(query, c)
	if err != nil {
		return nil, err
	}

	report := Report(match.Index, c)

	return &Result{
		InputFood:        match.Name,
		Nutrients:        report.Nutrients,
		NutrientsMessage: report.Message,
		Alternatives:     Rank(match.Index, c, e.topN),
	}, nil
}

// FindMenu processes every menu item independently and in order. A query that
// fails to resolve yields a not-found marker instead of aborting the batch.
func (e *Engine) FindMenu(queries []string) []MenuItemResult {
	results := make([]MenuItemResult, len(queries))
	for i, query := range queries {
		result, err := e.Find(query)
		if err != nil {
			results[i] = MenuItemResult{
				InputFood: query,
				Error:     "Food not found",
			}
			continue
		}
		results[i] = MenuItemResult{
			InputFood:        result.InputFood,
			Nutrients:        result.Nutrients,
			NutrientsMessage: result.NutrientsMessage,
			Alternatives:     result.Alternatives,
		}
	}
	return results
}
