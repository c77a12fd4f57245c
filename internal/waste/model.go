package waste

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model is a fitted lasso regression consumed as an opaque features-to-scalar
// function. The coefficients file is produced offline by the training
// pipeline; this code never fits or updates anything.
type Model struct {
	Intercept   float64              `json:"intercept"`
	Numeric     []NumericFeature     `json:"numeric"`
	Categorical []CategoricalFeature `json:"categorical"`
}

// NumericFeature is a standard-scaled numeric input with its fitted weight
type NumericFeature struct {
	Name        string  `json:"name"`
	Mean        float64 `json:"mean"`
	Scale       float64 `json:"scale"`
	Coefficient float64 `json:"coefficient"`
}

// CategoricalFeature is a one-hot encoded input: each category carries its
// own fitted weight, unknown categories contribute nothing.
type CategoricalFeature struct {
	Name         string             `json:"name"`
	Coefficients map[string]float64 `json:"coefficients"`
}

// LoadModel reads the fitted coefficients file
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read waste model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse waste model: %w", err)
	}

	for i := range m.Numeric {
		if m.Numeric[i].Scale == 0 {
			m.Numeric[i].Scale = 1
		}
	}
	return &m, nil
}

// Predict evaluates the linear model on the given feature values. Missing
// numeric features are taken as 0 before scaling; missing or unknown
// categorical values contribute nothing.
func (m *Model) Predict(numeric map[string]float64, categorical map[string]string) float64 {
	y := m.Intercept
	for _, f := range m.Numeric {
		v := numeric[f.Name]
		y += (v - f.Mean) / f.Scale * f.Coefficient
	}
	for _, f := range m.Categorical {
		if coef, ok := f.Coefficients[categorical[f.Name]]; ok {
			y += coef
		}
	}
	return y
}
