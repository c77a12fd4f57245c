package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wastenot/internal/api"
	"wastenot/internal/auth"
	"wastenot/internal/catalog"
	"wastenot/internal/config"
	"wastenot/internal/database"
	"wastenot/internal/recommend"
	"wastenot/internal/waste"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	// Load the nutrition catalog. A malformed table is fatal: the service
	// cannot answer anything without it.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load nutrition catalog: %v", err)
	}
	store := catalog.NewStore(cat)
	log.Printf("Loaded nutrition catalog: %d entries, %d nutrients", cat.Size(), len(cat.NutrientNames))

	// Initialize database
	if err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()
	defer database.CloseDB()

	// Load the waste prediction model
	model, err := waste.LoadModel(cfg.WasteModel.Path)
	if err != nil {
		log.Fatalf("Failed to load waste model: %v", err)
	}

	authService := auth.NewService(db, cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	server := api.NewServer(recommend.NewEngine(store), waste.NewPredictor(model, db), authService, db)

	// Reload the catalog in place on SIGHUP
	go watchReload(store, cfg.Catalog.Path)

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// watchReload swaps in a fresh catalog snapshot whenever the process receives
// SIGHUP. In-flight queries keep the snapshot they started with.
func watchReload(store *catalog.Store, path string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	for range hup {
		log.Printf("Reloading nutrition catalog from %s", path)
		if err := store.Reload(path); err != nil {
			log.Printf("Catalog reload failed, keeping current snapshot: %v", err)
			continue
		}
		log.Printf("Catalog reloaded: %d entries", store.Current().Size())
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
