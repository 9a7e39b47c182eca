package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"washbook/internal/api"
	"washbook/internal/auth"
	"washbook/internal/config"
	"washbook/internal/repository"
	"washbook/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	cfg := loadConfig(database)

	drafts := draftStore()
	bookingRepo := repository.NewBookingRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo, sender, cfg)
	wizardSvc := service.NewWizardService(cfg, drafts, bookingSvc)
	jobSvc := service.NewJobService(jobRepo)

	wizardHandler := api.NewWizardHandler(wizardSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc, cfg)
	adminHandler := api.NewAdminHandler(bookingSvc)

	startJobs(jobSvc)

	r := mux.NewRouter()
	r.Use(auth.ActorMiddleware)

	// Public endpoints
	r.HandleFunc("/api/config", bookingHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/prices", bookingHandler.GetPrices).Methods("GET")
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/wizard", wizardHandler.StartSession).Methods("POST")
	r.HandleFunc("/api/wizard/{id}", wizardHandler.GetSession).Methods("GET")
	r.HandleFunc("/api/wizard/{id}", wizardHandler.ApplyUpdate).Methods("PATCH")
	r.HandleFunc("/api/wizard/{id}/next", wizardHandler.Next).Methods("POST")
	r.HandleFunc("/api/wizard/{id}/back", wizardHandler.Back).Methods("POST")
	r.HandleFunc("/api/wizard/{id}/submit", wizardHandler.Submit).Methods("POST")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.CancelBooking).Methods("DELETE")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminMiddleware)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/capacity/{branch}", adminHandler.UpdateBranchCapacity).Methods("PUT")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{getEnv("CORS_ORIGIN", "*")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := getEnv("PORT", "8080")
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}

// loadConfig fetches the booking configuration snapshot. A load failure
// is degraded mode, not fatal: the server runs on the zeroed
// configuration until the tables are reachable again.
func loadConfig(database *sql.DB) config.BookingConfig {
	if os.Getenv("CONFIG_SOURCE") == "static" {
		log.Println("Using built-in default booking configuration")
		return config.Default()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cfg, err := repository.NewConfigRepository(database).Load(ctx)
	if err != nil {
		log.Printf("WARNING: failed to load booking configuration, running degraded with empty config: %v", err)
		return config.Empty()
	}
	return cfg
}

func draftStore() repository.DraftRepository {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Println("REDIS_ADDR not set, keeping wizard sessions in memory")
		return repository.NewMemoryDraftRepository()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return repository.NewRedisDraftRepository(client, sessionTTL())
}

func sessionTTL() time.Duration {
	ttl, err := time.ParseDuration(getEnv("WIZARD_SESSION_TTL", "30m"))
	if err != nil {
		return 30 * time.Minute
	}
	return ttl
}

func startJobs(jobSvc *service.JobService) {
	c := cron.New()
	c.AddFunc("@every 15m", func() {
		if err := jobSvc.CompletePastBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		deleted, err := jobSvc.PurgeStalePendingBookings(24 * time.Hour)
		if err != nil {
			log.Printf("Cron Job error purging stale pending bookings: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("Cron Job: purged %d stale pending bookings", deleted)
		}
	})
	c.Start()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
