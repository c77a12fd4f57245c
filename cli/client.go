package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the WasteNot API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("WASTENOT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// Alternative is one recommended substitute with its similarity score
type Alternative struct {
	FoodName   string `json:"food_name"`
	Similarity string `json:"similarity"`
}

// FoodResult is the answer for a single food query
type FoodResult struct {
	InputFood        string             `json:"input_food"`
	Nutrients        map[string]float64 `json:"input_food_nutrients"`
	NutrientsMessage string             `json:"nutrients_message"`
	Alternatives     []Alternative      `json:"alternatives"`
}

// MenuItemResult is one element of a batch answer
type MenuItemResult struct {
	InputFood        string             `json:"input_food"`
	Nutrients        map[string]float64 `json:"input_food_nutrients,omitempty"`
	NutrientsMessage string             `json:"nutrients_message,omitempty"`
	Alternatives     []Alternative      `json:"alternatives,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// FindAlternatives queries the API for substitutes of a single food
func (c *ApiClient) FindAlternatives(foodName string) (*FoodResult, error) {
	if c.UseMock {
		return c.getMockResult(foodName), nil
	}

	data, err := json.Marshal(map[string]string{"food_name": foodName})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/food-alternatives", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s", apiErr.Error)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result FoodResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// MenuAlternatives queries the API for substitutes of every item on a menu
func (c *ApiClient) MenuAlternatives(menu []string) ([]MenuItemResult, error) {
	if c.UseMock {
		return c.getMockMenuResults(menu), nil
	}

	data, err := json.Marshal(map[string][]string{"menu": menu})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/menu-alternatives", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to query menu alternatives: %s", string(body))
	}

	var response struct {
		MenuAlternatives []MenuItemResult `json:"menu_alternatives"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return response.MenuAlternatives, nil
}

// Mock data generators
// getMockResult generates a mock recommendation result
func (c *ApiClient) getMockResult(foodName string) *FoodResult {
	return &FoodResult{
		InputFood: foodName,
		Nutrients: map[string]float64{
			"Energy (kcal)":    100,
			"Protein (g)":      82.5,
			"Carbohydrate (g)": 14.2,
			"Total Fat (g)":    6.1,
			"Fiber (g)":        3.4,
		},
		NutrientsMessage: "Major nutrients considered: Energy (kcal), Protein (g), Carbohydrate (g), Total Fat (g), Fiber (g)",
		Alternatives: []Alternative{
			{FoodName: "Chicken breast grilled without sauce", Similarity: "97.42%"},
			{FoodName: "Fish NS as to type baked or broiled", Similarity: "94.18%"},
			{FoodName: "Egg whole boiled or poached", Similarity: "91.65%"},
			{FoodName: "Yogurt Greek plain nonfat", Similarity: "88.03%"},
			{FoodName: "White beans dry cooked", Similarity: "85.77%"},
		},
	}
}

// getMockMenuResults generates mock batch results, marking every other item
// as not found so the UI's error path is visible too
func (c *ApiClient) getMockMenuResults(menu []string) []MenuItemResult {
	results := make([]MenuItemResult, 0, len(menu))
	for i, item := range menu {
		if i%2 == 1 {
			results = append(results, MenuItemResult{
				InputFood: item,
				Error:     "Food not found",
			})
			continue
		}
		mock := c.getMockResult(item)
		results = append(results, MenuItemResult{
			InputFood:        mock.InputFood,
			Nutrients:        mock.Nutrients,
			NutrientsMessage: mock.NutrientsMessage,
			Alternatives:     mock.Alternatives,
		})
	}
	return results
}
