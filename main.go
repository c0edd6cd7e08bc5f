package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"matchup_server/config"
	"matchup_server/metrics"
	"matchup_server/routes"
	"matchup_server/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to MySQL and make sure the schema is in place
	logrus.Info("Connecting to MySQL...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := services.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MySQL")
	}
	defer db.Close()
	if err := services.ApplySchema(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to apply schema")
	}
	logrus.Info("MySQL connection established")

	// Initialize Services
	matchService := services.NewMatchService(db)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Initialize the router
	r := mux.NewRouter()

	// Liveness route; kept deliberately opaque
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "default get")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")

	// Register routes; the {label} route comes last so the fixed paths above win
	routes.RegisterMatchRoutes(r, matchService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(routes.RequestLogger(httpMetrics, r))

	logrus.WithField("port", cfg.Port).Info("Starting server")
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
