package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wastenot/internal/monitoring"
	"wastenot/internal/recommend"
	"wastenot/internal/waste"
)

// FoodRequest is a single-food alternatives query
type FoodRequest struct {
	FoodName string `json:"food_name"`
}

// MenuRequest is a batch alternatives query
type MenuRequest struct {
	Menu []string `json:"menu"`
}

// WastePredictionRequest carries the inputs of a waste quantity prediction
type WastePredictionRequest struct {
	UserID      string              `json:"user_id"`
	RecentWaste []waste.Observation `json:"recent_waste"`
	MenuItems   []string            `json:"menu_items"`
	DayOfWeek   *int                `json:"day_of_week"`
}

// GetFoodAlternatives returns nutritionally similar foods for one query
func (s *Server) GetFoodAlternatives(c *gin.Context) {
	start := time.Now()

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.finishQuery(c, "food_alternatives", "invalid", start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.Find(req.FoodName)
	switch {
	case errors.Is(err, recommend.ErrEmptyQuery):
		s.finishQuery(c, "food_alternatives", "invalid", start)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Food name must not be empty"})
	case errors.Is(err, recommend.ErrNotFound):
		s.finishQuery(c, "food_alternatives", "not_found", start)
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
	case err != nil:
		log.Printf("food alternatives error for %q: %v", req.FoodName, err)
		s.finishQuery(c, "food_alternatives", "error", start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		s.finishQuery(c, "food_alternatives", "ok", start)
		c.JSON(http.StatusOK, result)
	}
}

// GetMenuAlternatives returns alternatives for every item of a menu. A food
// that cannot be resolved yields an explicit not-found entry instead of
// failing the batch.
func (s *Server) GetMenuAlternatives(c *gin.Context) {
	start := time.Now()

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.finishQuery(c, "menu_alternatives", "invalid", start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := s.engine.FindMenu(req.Menu)

	s.finishQuery(c, "menu_alternatives", "ok", start)
	c.JSON(http.StatusOK, gin.H{"menu_alternatives": results})
}

// PredictWaste predicts a waste quantity from recent waste, menu items and
// day of week
func (s *Server) PredictWaste(c *gin.Context) {
	start := time.Now()

	var req WastePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.finishQuery(c, "waste_prediction", "invalid", start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DayOfWeek == nil {
		s.finishQuery(c, "waste_prediction", "invalid", start)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "day_of_week is required"})
		return
	}

	result, err := s.predictor.PredictAndAnalyze(req.UserID, req.RecentWaste, req.MenuItems, *req.DayOfWeek)
	switch {
	case errors.Is(err, waste.ErrInvalidDayOfWeek):
		s.finishQuery(c, "waste_prediction", "invalid", start)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case err != nil:
		log.Printf("waste prediction error for user %q: %v", req.UserID, err)
		s.finishQuery(c, "waste_prediction", "error", start)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		monitoring.RecordWastePrediction()
		s.finishQuery(c, "waste_prediction", "ok", start)
		c.JSON(http.StatusOK, result)
	}
}

// finishQuery records latency and outcome counters for an endpoint
func (s *Server) finishQuery(c *gin.Context, endpoint, outcome string, start time.Time) {
	monitoring.RecordRequest(endpoint, outcome, time.Since(start).Seconds())
	s.monitor.RecordQuery(endpoint, outcome)
}
