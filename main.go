package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"voterroll_site/config"
	"voterroll_site/handlers"
	"voterroll_site/middleware"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Mongo    string `json:"mongo"`
	Postgres string `json:"postgres"`
	Error    string `json:"error,omitempty"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Status: "ok", Mongo: "connected", Postgres: "connected"}

	if err := config.CheckMongoHealth(); err != nil {
		response.Status = "error"
		response.Mongo = "connection_error"
		response.Error = err.Error()
	}
	if err := config.CheckPostgresHealth(); err != nil {
		// Audit store is optional; report but do not flip overall status.
		response.Postgres = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
	}
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	// Load environment variables first
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("No PORT environment variable found, using default: %s", port)
	}

	// The document store is mandatory.
	log.Println("Connecting to MongoDB...")
	if err := config.ConnectWithRetry(5); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer config.CloseDB()

	// The PostgreSQL audit trail is optional.
	if os.Getenv("DB_HOST") != "" {
		log.Println("Connecting to PostgreSQL for the ingestion audit trail...")
		if err := config.InitDBWithRetry(3); err != nil {
			log.Printf("Warning: ingestion audit disabled: %v", err)
		}
	} else {
		log.Println("DB_HOST not set, ingestion audit disabled")
	}

	config.InitCache()

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins(),
		AllowedMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	// Apply middlewares in correct order
	r.Use(middleware.CORSDebugMiddleware)
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(ghandlers.CompressHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	log.Println("Routes registered successfully")

	api.HandleFunc("/health/detailed", healthCheck).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      120 * time.Second, // bulk ingestion can run long
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Upload endpoint: http://localhost:%s/api/v1/voters/upload", port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router) {
	// Voter registry routes
	api.HandleFunc("/voters/upload", handlers.UploadVoterSheet).Methods("POST")
	api.HandleFunc("/voters/search", handlers.SearchVoterRecords).Methods("GET")
	api.HandleFunc("/voters/stats", handlers.GetVoterStats).Methods("GET")
	api.HandleFunc("/voters/{id}", handlers.GetVoterRecord).Methods("GET")
	api.HandleFunc("/voters", handlers.GetVoterRecords).Methods("GET")
	api.HandleFunc("/voters", handlers.ClearVoterRecords).Methods("DELETE")

	// Ingestion audit trail
	api.HandleFunc("/ingestions", handlers.GetIngestionHistory).Methods("GET")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
