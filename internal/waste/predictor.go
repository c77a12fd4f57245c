package waste

import (
	"errors"
	"math"
	"time"

	"github.com/jinzhu/gorm"
)

// ErrInvalidDayOfWeek rejects day_of_week values outside 0..6
var ErrInvalidDayOfWeek = errors.New("day_of_week must be an integer between 0 and 6 inclusive")

const historicalWindowDays = 30

// Observation is one recent waste data point supplied by the caller
type Observation struct {
	FoodItem string  `json:"food_item,omitempty"`
	Quantity float64 `json:"quantity"`
}

// Prediction is the model output with a coarse confidence indicator
type Prediction struct {
	PredictedWasteKg float64 `json:"predicted_waste_kg"`
	ConfidenceLevel  string  `json:"confidence_level"`
}

// Analysis summarizes the inputs and historical context behind a prediction
type Analysis struct {
	RecentWasteTotalKg   float64        `json:"recent_waste_total_kg"`
	RecentWasteAverageKg float64        `json:"recent_waste_average_kg"`
	MenuItemCount        int            `json:"menu_item_count"`
	DayOfWeek            int            `json:"day_of_week"`
	Trend                string         `json:"trend"`
	Historical           *TrendAnalysis `json:"historical"`
}

// Result is the full waste-prediction response
type Result struct {
	Prediction Prediction `json:"prediction"`
	Analysis   Analysis   `json:"analysis"`
}

// Predictor turns API inputs into model features and pairs the prediction
// with a trend analysis over the user's stored wastage records.
type Predictor struct {
	model *Model
	db    *gorm.DB
}

// NewPredictor creates a predictor using the given fitted model and database
func NewPredictor(model *Model, db *gorm.DB) *Predictor {
	return &Predictor{model: model, db: db}
}

// PredictAndAnalyze predicts the waste quantity for the given inputs. The
// prediction is clamped to be non-negative and rounded to two decimals.
func (p *Predictor) PredictAndAnalyze(userID string, recentWaste []Observation, menuItems []string, dayOfWeek int) (*Result, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	numeric, categorical := prepareFeatures(recentWaste, menuItems, dayOfWeek)

	predicted := p.model.Predict(numeric, categorical)
	if predicted < 0 {
		predicted = 0
	}
	predicted = round2(predicted)

	var total float64
	for _, obs := range recentWaste {
		total += obs.Quantity
	}
	average := 0.0
	if len(recentWaste) > 0 {
		average = total / float64(len(recentWaste))
	}

	trend := "decreasing"
	if predicted > average {
		trend = "increasing"
	}

	historical, err := AnalyzeTrends(p.db, userID, time.Now().AddDate(0, 0, -historicalWindowDays))
	if err != nil {
		return nil, err
	}

	return &Result{
		Prediction: Prediction{
			PredictedWasteKg: predicted,
			ConfidenceLevel:  "medium",
		},
		Analysis: Analysis{
			RecentWasteTotalKg:   round2(total),
			RecentWasteAverageKg: round2(average),
			MenuItemCount:        len(menuItems),
			DayOfWeek:            dayOfWeek,
			Trend:                trend,
			Historical:           historical,
		},
	}, nil
}

// prepareFeatures maps the API inputs onto the feature set the model was
// trained with. Inputs the API does not carry keep the training defaults.
func prepareFeatures(recentWaste []Observation, menuItems []string, dayOfWeek int) (map[string]float64, map[string]string) {
	mealsServed := 100.0
	if len(menuItems) > 0 {
		mealsServed = float64(len(menuItems) * 100)
	}

	var pastWaste float64
	for _, obs := range recentWaste {
		pastWaste += obs.Quantity
	}

	numeric := map[string]float64{
		"ID":               0,
		"meals_served":     mealsServed,
		"kitchen_staff":    10,
		"temperature_C":    25.0,
		"humidity_percent": 60.0,
		"day_of_week":      float64(dayOfWeek),
		"special_event":    0,
		"past_waste_kg":    pastWaste,
	}
	categorical := map[string]string{
		"staff_experience": "intermediate",
		"waste_category":   "mixed",
	}
	return numeric, categorical
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
