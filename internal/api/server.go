package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"wastenot/internal/auth"
	"wastenot/internal/monitoring"
	"wastenot/internal/recommend"
	"wastenot/internal/waste"
)

// Server is the HTTP boundary over the recommendation engine, the waste
// predictor and the wastage record store.
type Server struct {
	Router    *gin.Engine
	engine    *recommend.Engine
	predictor *waste.Predictor
	auth      *auth.Service
	monitor   *monitoring.Monitor
	db        *gorm.DB
}

// NewServer creates the API server and wires up all routes
func NewServer(engine *recommend.Engine, predictor *waste.Predictor, authService *auth.Service, db *gorm.DB) *Server {
	s := &Server{
		Router:    gin.Default(),
		engine:    engine,
		predictor: predictor,
		auth:      authService,
		monitor:   monitoring.NewMonitor(),
		db:        db,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "WasteNot API is running"})
	})

	// Authentication
	s.Router.POST("/signup", s.Signup)
	s.Router.POST("/login", s.Login)

	// Live recommendation queries
	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Recommendation engine
		v1.POST("/food-alternatives", s.GetFoodAlternatives)
		v1.POST("/menu-alternatives", s.GetMenuAlternatives)

		// Waste prediction
		v1.POST("/waste-prediction", s.PredictWaste)

		// Service stats
		v1.GET("/stats", s.GetStats)

		// Wastage records require authentication
		protected := v1.Group("", auth.Middleware(s.auth))
		{
			protected.POST("/wastage", s.AddWastageRecord)
			protected.GET("/wastage", s.GetWastageRecords)
			protected.GET("/wastage/analysis", s.GetWastageAnalysis)
		}
	}
}

// GetStats returns the in-process service counters
func (s *Server) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
