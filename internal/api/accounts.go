package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wastenot/internal/auth"
	"wastenot/internal/models"
)

// SignupRequest registers a new account
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest exchanges credentials for a bearer token
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// WastageRequest is a user-submitted waste observation. Date defaults to now
// when omitted; both RFC 3339 and plain dates are accepted.
type WastageRequest struct {
	Date     string  `json:"date"`
	FoodItem string  `json:"food_item" binding:"required"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
}

// Signup registers a new user
func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.auth.Signup(req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User signed up successfully",
		"user":    user,
	})
}

// Login returns a bearer token for valid credentials
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// AddWastageRecord stores a waste observation for the authenticated user
func (s *Server) AddWastageRecord(c *gin.Context) {
	var req WastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be ISO formatted"})
			return
		}
		date = parsed
	}

	record := models.WastageRecord{
		RecordID: uuid.New().String(),
		UserID:   c.GetString(auth.UserIDKey), // always the authenticated user
		Date:     date,
		FoodItem: req.FoodItem,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("failed to store wastage record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Wastage record added successfully", "record": record})
}

// GetWastageRecords lists the authenticated user's waste observations
func (s *Server) GetWastageRecords(c *gin.Context) {
	var records []models.WastageRecord
	err := s.db.Where("user_id = ?", c.GetString(auth.UserIDKey)).
		Order("date desc").
		Find(&records).Error
	if err != nil {
		log.Printf("failed to fetch wastage records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wastage_records": records})
}

// GetWastageAnalysis returns the total quantity wasted per food item for the
// authenticated user
func (s *Server) GetWastageAnalysis(c *gin.Context) {
	var records []models.WastageRecord
	err := s.db.Where("user_id = ?", c.GetString(auth.UserIDKey)).Find(&records).Error
	if err != nil {
		log.Printf("failed to fetch wastage records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	analysis := make(map[string]float64)
	for _, record := range records {
		analysis[record.FoodItem] += record.Quantity
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
